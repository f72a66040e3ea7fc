package repository

import (
	"context"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
)

// ReviewView reseña con el nombre del producto.
type ReviewView struct {
	entity.Review
	ProductName string
}

// ReviewRepository define el puerto de persistencia para Review.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	// ListByProduct ordena por fecha descendente; productID vacío lista todas.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Review, error)
	Ratings(ctx context.Context, productID string) ([]int, error)
	Recent(ctx context.Context, limit int) ([]ReviewView, error)
}
