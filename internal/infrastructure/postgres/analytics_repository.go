package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura del tablero.
type AnalyticsRepo struct {
	q        Querier
	products *ProductRepo
}

// NewAnalyticsRepository construye el repositorio de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q, products: NewProductRepository(q)}
}

// Counts cuenta las entidades de catálogo en una sola consulta.
func (r *AnalyticsRepo) Counts(ctx context.Context) (repository.CatalogCounts, error) {
	var c repository.CatalogCounts
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM suppliers),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM brands),
			(SELECT COUNT(*) FROM tags)`,
	).Scan(&c.Products, &c.Suppliers, &c.Categories, &c.Brands, &c.Tags)
	if err != nil {
		return c, fmt.Errorf("catalog counts: %w", err)
	}
	return c, nil
}

// LowStockProducts productos con quantity <= min_quantity, menor cantidad primero.
func (r *AnalyticsRepo) LowStockProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	return r.products.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products p
		WHERE p.quantity <= p.min_quantity
		ORDER BY p.quantity ASC, p.sku
		LIMIT $1`, limit)
}

// TopProductsByQuantity productos con mayor cantidad disponible.
func (r *AnalyticsRepo) TopProductsByQuantity(ctx context.Context, limit int) ([]*entity.Product, error) {
	return r.products.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products p
		ORDER BY p.quantity DESC, p.sku
		LIMIT $1`, limit)
}

// InventoryTotals sum(quantity), sum(current_price) y sum(quantity × current_price).
func (r *AnalyticsRepo) InventoryTotals(ctx context.Context) (repository.InventoryTotals, error) {
	var t repository.InventoryTotals
	err := r.q.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(quantity), 0)::bigint,
			COALESCE(SUM(current_price), 0),
			COALESCE(SUM(quantity * current_price), 0)
		FROM products`,
	).Scan(&t.TotalQuantity, &t.SumCurrentPrice, &t.StockValue)
	if err != nil {
		return t, fmt.Errorf("inventory totals: %w", err)
	}
	return t, nil
}
