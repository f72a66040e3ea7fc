package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/application/inventory"
	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

// ImageUseCase imágenes de producto. Como máximo una imagen principal por producto.
type ImageUseCase struct {
	repo     repository.ProductImageRepository
	txRunner inventory.TxRunner
}

// NewImageUseCase construye el caso de uso.
func NewImageUseCase(repo repository.ProductImageRepository, txRunner inventory.TxRunner) *ImageUseCase {
	return &ImageUseCase{repo: repo, txRunner: txRunner}
}

// Create agrega una imagen. Si es principal, la principal anterior se desmarca en la misma transacción.
func (uc *ImageUseCase) Create(ctx context.Context, in dto.CreateImageRequest) (*dto.ImageResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" || strings.TrimSpace(in.URL) == "" {
		return nil, fmt.Errorf("%w: product_id y url son obligatorios", domain.ErrInvalidInput)
	}
	img := &entity.ProductImage{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		URL:       strings.TrimSpace(in.URL),
		Alt:       in.Alt,
		IsMain:    in.IsMain,
		CreatedAt: time.Now().UTC(),
	}
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
		}
		if img.IsMain {
			if err := repos.Images.UnsetMain(ctx, in.ProductID); err != nil {
				return err
			}
		}
		return repos.Images.Create(ctx, img)
	})
	if err != nil {
		return nil, err
	}
	return toImageResponse(img), nil
}

// ListByProduct lista las imágenes del producto con la principal primero.
func (uc *ImageUseCase) ListByProduct(ctx context.Context, productID string) ([]dto.ImageResponse, error) {
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
	out := make([]dto.ImageResponse, 0, len(list))
	for _, img := range list {
		out = append(out, *toImageResponse(img))
	}
	return out, nil
}

func toImageResponse(img *entity.ProductImage) *dto.ImageResponse {
	return &dto.ImageResponse{
		ID:        img.ID,
		ProductID: img.ProductID,
		URL:       img.URL,
		Alt:       img.Alt,
		IsMain:    img.IsMain,
		CreatedAt: img.CreatedAt,
	}
}
