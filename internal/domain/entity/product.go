package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de Product.
const (
	ProductStatusActive       = "ACTIVE"
	ProductStatusInactive     = "INACTIVE"
	ProductStatusOnSale       = "ON_SALE"
	ProductStatusOutOfStock   = "OUT_OF_STOCK"
	ProductStatusDiscontinued = "DISCONTINUED"
)

// ValidProductStatus indica si s es un estado de producto conocido.
func ValidProductStatus(s string) bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusOnSale,
		ProductStatusOutOfStock, ProductStatusDiscontinued:
		return true
	}
	return false
}

// Product representa un producto cosmético del inventario.
// Quantity solo cambia a través de transacciones del libro de inventario; AverageRating se recalcula con cada reseña.
type Product struct {
	ID            string
	SKU           string // único
	Barcode       string
	Name          string
	Description   string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	CurrentPrice  decimal.Decimal
	Quantity      int
	MinQuantity   int
	MaxQuantity   int
	Location      string
	Status        string
	AverageRating float64
	CategoryID    string // vacío si no tiene
	BrandID       string
	SupplierID    string
	Tags          []*Tag
	Images        []*ProductImage
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si la cantidad disponible está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinQuantity
}
