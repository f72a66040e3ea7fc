package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

var (
	_ repository.ReviewRepository       = (*ReviewRepo)(nil)
	_ repository.ProductImageRepository = (*ProductImageRepo)(nil)
)

// ReviewRepo implementación en memoria de ReviewRepository.
type ReviewRepo struct {
	c conn
}

func (r *ReviewRepo) Create(_ context.Context, review *entity.Review) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.products[review.ProductID]; !ok {
			return domain.ErrNotFound
		}
		d.reviews = append(d.reviews, *review)
		return nil
	})
}

func (r *ReviewRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Review, error) {
	var out []*entity.Review
	err := r.c.read(func(d *dataset) error {
		for i := len(d.reviews) - 1; i >= 0; i-- {
			rv := d.reviews[i]
			if productID != "" && rv.ProductID != productID {
				continue
			}
			out = append(out, &rv)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

func (r *ReviewRepo) Ratings(_ context.Context, productID string) ([]int, error) {
	var out []int
	err := r.c.read(func(d *dataset) error {
		for _, rv := range d.reviews {
			if rv.ProductID == productID {
				out = append(out, rv.Rating)
			}
		}
		return nil
	})
	return out, err
}

func (r *ReviewRepo) Recent(_ context.Context, limit int) ([]repository.ReviewView, error) {
	var out []repository.ReviewView
	err := r.c.read(func(d *dataset) error {
		for i := len(d.reviews) - 1; i >= 0; i-- {
			rv := d.reviews[i]
			out = append(out, repository.ReviewView{Review: rv, ProductName: d.products[rv.ProductID].Name})
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}

// ProductImageRepo implementación en memoria de ProductImageRepository.
type ProductImageRepo struct {
	c conn
}

func (r *ProductImageRepo) Create(_ context.Context, image *entity.ProductImage) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.products[image.ProductID]; !ok {
			return domain.ErrNotFound
		}
		d.images = append(d.images, *image)
		return nil
	})
}

func (r *ProductImageRepo) ListByProduct(_ context.Context, productID string) ([]*entity.ProductImage, error) {
	var out []*entity.ProductImage
	err := r.c.read(func(d *dataset) error {
		out = d.imagesOf(productID)
		return nil
	})
	return out, err
}

func (r *ProductImageRepo) UnsetMain(_ context.Context, productID string) error {
	return r.c.write(func(d *dataset) error {
		for i := range d.images {
			if d.images[i].ProductID == productID {
				d.images[i].IsMain = false
			}
		}
		return nil
	})
}

// imagesOf imágenes del producto: principal primero, luego por fecha de creación.
func (d *dataset) imagesOf(productID string) []*entity.ProductImage {
	var out []*entity.ProductImage
	for _, img := range d.images {
		if img.ProductID == productID {
			img := img
			out = append(out, &img)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsMain != out[j].IsMain {
			return out[i].IsMain
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
