package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de lectura del tablero en memoria.
type AnalyticsRepo struct {
	c conn
}

func (r *AnalyticsRepo) Counts(_ context.Context) (repository.CatalogCounts, error) {
	var out repository.CatalogCounts
	err := r.c.read(func(d *dataset) error {
		out = repository.CatalogCounts{
			Products:   len(d.products),
			Suppliers:  len(d.suppliers),
			Categories: len(d.categories),
			Brands:     len(d.brands),
			Tags:       len(d.tags),
		}
		return nil
	})
	return out, err
}

func (r *AnalyticsRepo) LowStockProducts(_ context.Context, limit int) ([]*entity.Product, error) {
	return r.sortedProducts(limit, func(p entity.Product) bool { return p.IsLowStock() }, func(a, b entity.Product) bool {
		return a.Quantity < b.Quantity
	})
}

func (r *AnalyticsRepo) TopProductsByQuantity(_ context.Context, limit int) ([]*entity.Product, error) {
	return r.sortedProducts(limit, nil, func(a, b entity.Product) bool { return a.Quantity > b.Quantity })
}

func (r *AnalyticsRepo) InventoryTotals(_ context.Context) (repository.InventoryTotals, error) {
	out := repository.InventoryTotals{SumCurrentPrice: decimal.Zero, StockValue: decimal.Zero}
	err := r.c.read(func(d *dataset) error {
		for _, p := range d.products {
			out.TotalQuantity += p.Quantity
			out.SumCurrentPrice = out.SumCurrentPrice.Add(p.CurrentPrice)
			out.StockValue = out.StockValue.Add(p.CurrentPrice.Mul(decimal.NewFromInt(int64(p.Quantity))))
		}
		return nil
	})
	return out, err
}

func (r *AnalyticsRepo) sortedProducts(limit int, keep func(entity.Product) bool, less func(a, b entity.Product) bool) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.c.read(func(d *dataset) error {
		var list []entity.Product
		for _, p := range d.products {
			if keep == nil || keep(p) {
				list = append(list, p)
			}
		}
		sort.Slice(list, func(i, j int) bool {
			if less(list[i], list[j]) {
				return true
			}
			if less(list[j], list[i]) {
				return false
			}
			return list[i].SKU < list[j].SKU
		})
		for _, p := range paginate(list, limit, 0) {
			out = append(out, d.hydrate(p))
		}
		return nil
	})
	return out, err
}
