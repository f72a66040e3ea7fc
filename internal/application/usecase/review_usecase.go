package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/application/inventory"
	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	domaininv "github.com/jhoicas/cosmetitrack-api/internal/domain/inventory"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

// ReviewUseCase reseñas de producto. Cada alta recalcula la calificación media del producto.
type ReviewUseCase struct {
	repo     repository.ReviewRepository
	txRunner inventory.TxRunner
}

// NewReviewUseCase construye el caso de uso.
func NewReviewUseCase(repo repository.ReviewRepository, txRunner inventory.TxRunner) *ReviewUseCase {
	return &ReviewUseCase{repo: repo, txRunner: txRunner}
}

// Create inserta la reseña y actualiza average_rating en una sola transacción.
func (uc *ReviewUseCase) Create(ctx context.Context, in dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating debe estar entre 1 y 5", domain.ErrInvalidInput)
	}
	review := &entity.Review{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		Rating:       in.Rating,
		Comment:      in.Comment,
		CustomerName: strings.TrimSpace(in.CustomerName),
		CreatedAt:    time.Now().UTC(),
	}
	var productName string
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		// Bloquear antes de insertar: el promedio se recalcula con todas las reseñas confirmadas.
		if err := repos.Products.LockForUpdate(ctx, in.ProductID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
			}
			return err
		}
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
		}
		productName = product.Name
		if err := repos.Reviews.Create(ctx, review); err != nil {
			return err
		}
		ratings, err := repos.Reviews.Ratings(ctx, in.ProductID)
		if err != nil {
			return err
		}
		return repos.Products.SetAverageRating(ctx, in.ProductID, domaininv.AverageRating(ratings))
	})
	if err != nil {
		return nil, err
	}
	resp := toReviewResponse(review)
	resp.ProductName = productName
	return resp, nil
}

// ListByProduct lista las reseñas del producto, más recientes primero.
func (uc *ReviewUseCase) ListByProduct(ctx context.Context, productID string) ([]dto.ReviewResponse, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	if err := dto.ValidateID("product_id", productID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReviewResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toReviewResponse(r))
	}
	return out, nil
}

func toReviewResponse(r *entity.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:           r.ID,
		ProductID:    r.ProductID,
		Rating:       r.Rating,
		Comment:      r.Comment,
		CustomerName: r.CustomerName,
		CreatedAt:    r.CreatedAt,
	}
}
