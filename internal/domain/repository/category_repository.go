package repository

import (
	"context"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
}

// BrandRepository define el puerto de persistencia para Brand.
type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id string) (*entity.Brand, error)
	Update(ctx context.Context, brand *entity.Brand) error
	List(ctx context.Context) ([]*entity.Brand, error)
	Delete(ctx context.Context, id string) error
}

// TagRepository define el puerto de persistencia para Tag.
type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	GetByID(ctx context.Context, id string) (*entity.Tag, error)
	Update(ctx context.Context, tag *entity.Tag) error
	List(ctx context.Context) ([]*entity.Tag, error)
	Delete(ctx context.Context, id string) error
}
