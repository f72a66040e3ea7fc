package repository

import (
	"context"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
)

// ProductFilter filtros de listado de productos. Los campos vacíos no filtran.
type ProductFilter struct {
	CategoryID string
	BrandID    string
	SupplierID string
	TagID      string
	Status     string
	Search     string // nombre, descripción, código de barras o SKU (sin distinguir mayúsculas)
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve el producto con etiquetas e imágenes; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Update no modifica Quantity ni AverageRating.
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	// List devuelve la página pedida y el total de coincidencias.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	// AdjustQuantity suma delta a la cantidad y devuelve el nuevo valor.
	// ErrNotFound si no existe; ErrInsufficientStock si el resultado sería negativo.
	AdjustQuantity(ctx context.Context, id string, delta int) (int, error)
	// LockForUpdate bloquea la fila del producto hasta el fin de la transacción. ErrNotFound si no existe.
	LockForUpdate(ctx context.Context, id string) error
	SetAverageRating(ctx context.Context, id string, avg float64) error
	// SetTags reemplaza las etiquetas del producto.
	SetTags(ctx context.Context, productID string, tagIDs []string) error
}
