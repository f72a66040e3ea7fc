package repository

import (
	"context"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
)

// ProductImageRepository define el puerto de persistencia para ProductImage.
type ProductImageRepository interface {
	Create(ctx context.Context, image *entity.ProductImage) error
	// ListByProduct ordena con la imagen principal primero.
	ListByProduct(ctx context.Context, productID string) ([]*entity.ProductImage, error)
	// UnsetMain desmarca la imagen principal actual del producto.
	UnsetMain(ctx context.Context, productID string) error
}
