package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

var (
	_ repository.ReviewRepository       = (*ReviewRepo)(nil)
	_ repository.ProductImageRepository = (*ProductImageRepo)(nil)
)

// ReviewRepo implementación del puerto ReviewRepository sobre PostgreSQL.
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository construye el adaptador de persistencia para reseñas.
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

func (r *ReviewRepo) Create(ctx context.Context, rv *entity.Review) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO reviews (id, product_id, rating, comment, customer_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rv.ID, rv.ProductID, rv.Rating, rv.Comment, rv.CustomerName, rv.CreatedAt)
	if err != nil {
		return writeError("insert review", err)
	}
	return nil
}

func (r *ReviewRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Review, error) {
	query := `SELECT id, product_id, rating, comment, customer_name, created_at FROM reviews`
	var args []any
	if productID != "" {
		query += ` WHERE product_id = $1`
		args = append(args, productID)
	}
	query += ` ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, readError("list reviews", err)
	}
	defer rows.Close()
	var list []*entity.Review
	for rows.Next() {
		var rv entity.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.Rating, &rv.Comment, &rv.CustomerName, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, &rv)
	}
	if err := readError("list reviews", rows.Err()); err != nil {
		return nil, err
	}
	return list, nil
}

// Ratings devuelve todas las calificaciones del producto (para recalcular el promedio).
func (r *ReviewRepo) Ratings(ctx context.Context, productID string) ([]int, error) {
	rows, err := r.q.Query(ctx, `SELECT rating FROM reviews WHERE product_id = $1`, productID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()
	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

func (r *ReviewRepo) Recent(ctx context.Context, limit int) ([]repository.ReviewView, error) {
	rows, err := r.q.Query(ctx, `
		SELECT rv.id, rv.product_id, rv.rating, rv.comment, rv.customer_name, rv.created_at, p.name
		FROM reviews rv JOIN products p ON p.id = rv.product_id
		ORDER BY rv.created_at DESC, rv.id
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent reviews: %w", err)
	}
	defer rows.Close()
	var list []repository.ReviewView
	for rows.Next() {
		var v repository.ReviewView
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Rating, &v.Comment, &v.CustomerName, &v.CreatedAt, &v.ProductName); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// ProductImageRepo implementación del puerto ProductImageRepository sobre PostgreSQL.
type ProductImageRepo struct {
	q Querier
}

// NewProductImageRepository construye el adaptador de persistencia para imágenes.
func NewProductImageRepository(q Querier) *ProductImageRepo {
	return &ProductImageRepo{q: q}
}

func (r *ProductImageRepo) Create(ctx context.Context, img *entity.ProductImage) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_images (id, product_id, url, alt, is_main, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		img.ID, img.ProductID, img.URL, img.Alt, img.IsMain, img.CreatedAt)
	if err != nil {
		return writeError("insert product image", err)
	}
	return nil
}

func (r *ProductImageRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ProductImage, error) {
	images, err := listImages(ctx, r.q, `WHERE product_id = $1`, productID)
	if err != nil && isInvalidText(err) {
		return nil, nil
	}
	return images, err
}

// UnsetMain desmarca la imagen principal del producto (índice único parcial sobre is_main).
func (r *ProductImageRepo) UnsetMain(ctx context.Context, productID string) error {
	_, err := r.q.Exec(ctx, `UPDATE product_images SET is_main = false WHERE product_id = $1 AND is_main`, productID)
	if err != nil {
		return writeError("unset main image", err)
	}
	return nil
}

// listImages imágenes ordenadas con la principal primero.
func listImages(ctx context.Context, q Querier, where string, args ...any) ([]*entity.ProductImage, error) {
	rows, err := q.Query(ctx, `
		SELECT id, product_id, url, alt, is_main, created_at
		FROM product_images `+where+`
		ORDER BY is_main DESC, created_at, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductImage
	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.Alt, &img.IsMain, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		list = append(list, &img)
	}
	return list, rows.Err()
}
