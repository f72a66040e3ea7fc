package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Quantity es el stock inicial y se registra como entrada en el libro de inventario.
type CreateProductRequest struct {
	SKU           string               `json:"sku" validate:"required,min=1,max=100"`
	Barcode       string               `json:"barcode"`
	Name          string               `json:"name" validate:"required,min=1,max=200"`
	Description   string               `json:"description"`
	PurchasePrice decimal.Decimal      `json:"purchase_price"`
	SalePrice     decimal.Decimal      `json:"sale_price"`
	CurrentPrice  *decimal.Decimal     `json:"current_price"` // por defecto sale_price
	Quantity      int                  `json:"quantity" validate:"min=0"`
	MinQuantity   int                  `json:"min_quantity" validate:"min=0"`
	MaxQuantity   int                  `json:"max_quantity" validate:"min=0"`
	Location      string               `json:"location"`
	Status        string               `json:"status"` // por defecto ACTIVE
	CategoryID    string               `json:"category_id"`
	BrandID       string               `json:"brand_id"`
	SupplierID    string               `json:"supplier_id"`
	TagIDs        []string             `json:"tag_ids"`
	Images        []CreateImageRequest `json:"images"`
}

// UpdateProductRequest entrada para actualizar un producto (sin cantidad ni calificación).
type UpdateProductRequest struct {
	SKU           *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Barcode       *string          `json:"barcode"`
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	CurrentPrice  *decimal.Decimal `json:"current_price"`
	MinQuantity   *int             `json:"min_quantity"`
	MaxQuantity   *int             `json:"max_quantity"`
	Location      *string          `json:"location"`
	Status        *string          `json:"status"`
	CategoryID    *string          `json:"category_id"`
	BrandID       *string          `json:"brand_id"`
	SupplierID    *string          `json:"supplier_id"`
	TagIDs        []string         `json:"tag_ids"` // nil = sin cambios
}

// ProductFilterRequest filtros de GET /api/products.
type ProductFilterRequest struct {
	CategoryID string `query:"category_id"`
	BrandID    string `query:"brand_id"`
	SupplierID string `query:"supplier_id"`
	TagID      string `query:"tag_id"`
	Status     string `query:"status"`
	Search     string `query:"search"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Barcode       string          `json:"barcode"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	Quantity      int             `json:"quantity"`
	MinQuantity   int             `json:"min_quantity"`
	MaxQuantity   int             `json:"max_quantity"`
	Location      string          `json:"location"`
	Status        string          `json:"status"`
	AverageRating float64         `json:"average_rating"`
	CategoryID    string          `json:"category_id,omitempty"`
	BrandID       string          `json:"brand_id,omitempty"`
	SupplierID    string          `json:"supplier_id,omitempty"`
	Tags          []TagResponse   `json:"tags"`
	Images        []ImageResponse `json:"images"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateImageRequest entrada para crear una imagen de producto.
type CreateImageRequest struct {
	ProductID string `json:"product_id"`
	URL       string `json:"url" validate:"required,url"`
	Alt       string `json:"alt"`
	IsMain    bool   `json:"is_main"`
}

// ImageResponse salida de una imagen de producto.
type ImageResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	URL       string    `json:"url"`
	Alt       string    `json:"alt"`
	IsMain    bool      `json:"is_main"`
	CreatedAt time.Time `json:"created_at"`
}
