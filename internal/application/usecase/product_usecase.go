package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/application/inventory"
	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Quantity se maneja vía el libro de inventario.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner inventory.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un producto con sus etiquetas e imágenes. La cantidad inicial se registra como
// entrada (IN) en el libro dentro de la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, actor Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: sku y name son obligatorios", domain.ErrInvalidInput)
	}
	if in.Status == "" {
		in.Status = entity.ProductStatusActive
	}
	currentPrice := in.SalePrice
	if in.CurrentPrice != nil {
		currentPrice = *in.CurrentPrice
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Barcode:       strings.TrimSpace(in.Barcode),
		Name:          in.Name,
		Description:   in.Description,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		CurrentPrice:  currentPrice,
		MinQuantity:   in.MinQuantity,
		MaxQuantity:   in.MaxQuantity,
		Location:      in.Location,
		Status:        in.Status,
		CategoryID:    in.CategoryID,
		BrandID:       in.BrandID,
		SupplierID:    in.SupplierID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	for _, img := range in.Images {
		if strings.TrimSpace(img.URL) == "" {
			return nil, fmt.Errorf("%w: url de imagen obligatoria", domain.ErrInvalidInput)
		}
	}

	var created *entity.Product
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		if len(in.TagIDs) > 0 {
			if err := repos.Products.SetTags(ctx, product.ID, dedupe(in.TagIDs)); err != nil {
				return err
			}
		}
		hasMain := false
		for _, img := range in.Images {
			isMain := img.IsMain && !hasMain
			hasMain = hasMain || isMain
			if err := repos.Images.Create(ctx, &entity.ProductImage{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				URL:       strings.TrimSpace(img.URL),
				Alt:       img.Alt,
				IsMain:    isMain,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		if in.Quantity > 0 {
			if _, err := inventory.RecordInTx(ctx, repos, inventory.RecordInput{
				ProductID:     product.ID,
				Type:          entity.TransactionTypeIN,
				Quantity:      in.Quantity,
				Notes:         "Stock inicial",
				PerformedBy:   actor.displayName(),
				PerformedByID: actor.ID,
			}, now); err != nil {
				return err
			}
		}
		p, err := repos.Products.GetByID(ctx, product.ID)
		created = p
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("product_id", created.ID).Str("sku", created.SKU).Int("quantity", created.Quantity).Msg("producto creado")
	return toProductResponse(created), nil
}

// GetByID obtiene un producto con etiquetas e imágenes.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Quantity (libro) ni AverageRating (reseñas).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		product, err := repos.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		applyProductUpdate(product, in)
		product.UpdatedAt = time.Now().UTC()
		if err := validateProduct(product); err != nil {
			return err
		}
		if err := repos.Products.Update(ctx, product); err != nil {
			return err
		}
		if in.TagIDs != nil {
			if err := repos.Products.SetTags(ctx, product.ID, dedupe(in.TagIDs)); err != nil {
				return err
			}
		}
		updated, err = repos.Products.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// List lista productos con filtros y paginación, ordenados por fecha de creación descendente.
func (uc *ProductUseCase) List(ctx context.Context, req dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	req.DefaultPage()
	if req.Limit > 100 {
		req.Limit = 100
	}
	if req.Status != "" && !entity.ValidProductStatus(req.Status) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, req.Status)
	}
	for _, f := range [][2]string{
		{"category_id", req.CategoryID},
		{"brand_id", req.BrandID},
		{"supplier_id", req.SupplierID},
		{"tag_id", req.TagID},
	} {
		if err := dto.ValidateID(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		CategoryID: req.CategoryID,
		BrandID:    req.BrandID,
		SupplierID: req.SupplierID,
		TagID:      req.TagID,
		Status:     req.Status,
		Search:     strings.TrimSpace(req.Search),
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: req.Limit, Offset: req.Offset, Total: total},
	}, nil
}

// Delete elimina un producto por ID. ErrConflict si tiene lotes o movimientos.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func applyProductUpdate(p *entity.Product, in dto.UpdateProductRequest) {
	if in.SKU != nil {
		p.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Barcode != nil {
		p.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.PurchasePrice != nil {
		p.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		p.SalePrice = *in.SalePrice
	}
	if in.CurrentPrice != nil {
		p.CurrentPrice = *in.CurrentPrice
	}
	if in.MinQuantity != nil {
		p.MinQuantity = *in.MinQuantity
	}
	if in.MaxQuantity != nil {
		p.MaxQuantity = *in.MaxQuantity
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.BrandID != nil {
		p.BrandID = *in.BrandID
	}
	if in.SupplierID != nil {
		p.SupplierID = *in.SupplierID
	}
}

func validateProduct(p *entity.Product) error {
	if p.SKU == "" || p.Name == "" {
		return fmt.Errorf("%w: sku y name son obligatorios", domain.ErrInvalidInput)
	}
	if !entity.ValidProductStatus(p.Status) {
		return fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, p.Status)
	}
	if p.PurchasePrice.IsNegative() || p.SalePrice.IsNegative() || p.CurrentPrice.IsNegative() {
		return fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	if p.MinQuantity < 0 || p.MaxQuantity < 0 {
		return fmt.Errorf("%w: min_quantity y max_quantity no pueden ser negativos", domain.ErrInvalidInput)
	}
	if p.MaxQuantity > 0 && p.MinQuantity > p.MaxQuantity {
		return fmt.Errorf("%w: min_quantity mayor que max_quantity", domain.ErrInvalidInput)
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	tags := make([]dto.TagResponse, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, *toTagResponse(t))
	}
	images := make([]dto.ImageResponse, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, *toImageResponse(img))
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Barcode:       p.Barcode,
		Name:          p.Name,
		Description:   p.Description,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		CurrentPrice:  p.CurrentPrice,
		Quantity:      p.Quantity,
		MinQuantity:   p.MinQuantity,
		MaxQuantity:   p.MaxQuantity,
		Location:      p.Location,
		Status:        p.Status,
		AverageRating: p.AverageRating,
		CategoryID:    p.CategoryID,
		BrandID:       p.BrandID,
		SupplierID:    p.SupplierID,
		Tags:          tags,
		Images:        images,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
