package repository

import (
	"context"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
)

// SupplierWithCount proveedor con el número de productos que suministra.
type SupplierWithCount struct {
	entity.Supplier
	ProductCount int
}

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	// List busca en nombre, descripción y contacto; ordena por nombre.
	List(ctx context.Context, search string) ([]SupplierWithCount, error)
	Delete(ctx context.Context, id string) error
}
