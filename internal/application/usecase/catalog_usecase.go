package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

// ── Categorías ───────────────────────────────────────────────────────────────

// CategoryUseCase CRUD de categorías. Nombres únicos (ErrDuplicate).
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name, err := requiredName(in.Name)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &entity.Category{ID: uuid.New().String(), Name: name, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// GetByID obtiene una categoría.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	return toCategoryResponse(c), nil
}

// Update reemplaza nombre y descripción.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name, err := requiredName(in.Name)
	if err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	c.Name = name
	c.Description = in.Description
	c.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// List lista las categorías por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Delete elimina la categoría; los productos quedan sin categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

// ── Marcas ───────────────────────────────────────────────────────────────────

// BrandUseCase CRUD de marcas.
type BrandUseCase struct {
	repo repository.BrandRepository
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(repo repository.BrandRepository) *BrandUseCase {
	return &BrandUseCase{repo: repo}
}

// Create crea una marca.
func (uc *BrandUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.BrandResponse, error) {
	name, err := requiredName(in.Name)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	b := &entity.Brand{ID: uuid.New().String(), Name: name, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

// GetByID obtiene una marca.
func (uc *BrandUseCase) GetByID(ctx context.Context, id string) (*dto.BrandResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: marca %s", domain.ErrNotFound, id)
	}
	return toBrandResponse(b), nil
}

// Update reemplaza nombre y descripción.
func (uc *BrandUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.BrandResponse, error) {
	name, err := requiredName(in.Name)
	if err != nil {
		return nil, err
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: marca %s", domain.ErrNotFound, id)
	}
	b.Name = name
	b.Description = in.Description
	b.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

// List lista las marcas por nombre.
func (uc *BrandUseCase) List(ctx context.Context) ([]dto.BrandResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBrandResponse(b))
	}
	return out, nil
}

// Delete elimina la marca.
func (uc *BrandUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{ID: b.ID, Name: b.Name, Description: b.Description, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}

// ── Etiquetas ────────────────────────────────────────────────────────────────

// TagUseCase CRUD de etiquetas.
type TagUseCase struct {
	repo repository.TagRepository
}

// NewTagUseCase construye el caso de uso.
func NewTagUseCase(repo repository.TagRepository) *TagUseCase {
	return &TagUseCase{repo: repo}
}

// Create crea una etiqueta.
func (uc *TagUseCase) Create(ctx context.Context, in dto.TagRequest) (*dto.TagResponse, error) {
	name, err := requiredName(in.Name)
	if err != nil {
		return nil, err
	}
	t := &entity.Tag{ID: uuid.New().String(), Name: name, CreatedAt: time.Now().UTC()}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTagResponse(t), nil
}

// GetByID obtiene una etiqueta.
func (uc *TagUseCase) GetByID(ctx context.Context, id string) (*dto.TagResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: etiqueta %s", domain.ErrNotFound, id)
	}
	return toTagResponse(t), nil
}

// Update renombra la etiqueta.
func (uc *TagUseCase) Update(ctx context.Context, id string, in dto.TagRequest) (*dto.TagResponse, error) {
	name, err := requiredName(in.Name)
	if err != nil {
		return nil, err
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: etiqueta %s", domain.ErrNotFound, id)
	}
	t.Name = name
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTagResponse(t), nil
}

// List lista las etiquetas por nombre.
func (uc *TagUseCase) List(ctx context.Context) ([]dto.TagResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TagResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTagResponse(t))
	}
	return out, nil
}

// Delete elimina la etiqueta y sus asociaciones con productos.
func (uc *TagUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toTagResponse(t *entity.Tag) *dto.TagResponse {
	return &dto.TagResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

// ── Proveedores ──────────────────────────────────────────────────────────────

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	name, err := requiredName(in.Name)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	s := &entity.Supplier{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	applySupplier(s, name, in)
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s, 0), nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, id)
	}
	return toSupplierResponse(s, 0), nil
}

// Update reemplaza los datos del proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	name, err := requiredName(in.Name)
	if err != nil {
		return nil, err
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, id)
	}
	applySupplier(s, name, in)
	s.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s, 0), nil
}

// List busca proveedores por nombre, descripción o contacto; incluye el número de productos.
func (uc *SupplierUseCase) List(ctx context.Context, search string) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for i := range list {
		out = append(out, *toSupplierResponse(&list[i].Supplier, list[i].ProductCount))
	}
	return out, nil
}

// Delete elimina el proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func applySupplier(s *entity.Supplier, name string, in dto.SupplierRequest) {
	s.Name = name
	s.Description = in.Description
	s.Contact = in.Contact
	s.Email = strings.TrimSpace(in.Email)
	s.Phone = in.Phone
	s.Address = in.Address
}

func toSupplierResponse(s *entity.Supplier, productCount int) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		Description:  s.Description,
		Contact:      s.Contact,
		Email:        s.Email,
		Phone:        s.Phone,
		Address:      s.Address,
		ProductCount: productCount,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func requiredName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	return name, nil
}
