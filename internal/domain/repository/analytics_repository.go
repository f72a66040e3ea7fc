package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
)

// CatalogCounts conteos de entidades de catálogo.
type CatalogCounts struct {
	Products   int
	Suppliers  int
	Categories int
	Brands     int
	Tags       int
}

// InventoryTotals agregados de valorización del inventario.
type InventoryTotals struct {
	TotalQuantity   int             // sum(quantity)
	SumCurrentPrice decimal.Decimal // sum(current_price)
	StockValue      decimal.Decimal // sum(quantity × current_price)
}

// AnalyticsRepository define las consultas de lectura del tablero.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	Counts(ctx context.Context) (CatalogCounts, error)

	// LowStockProducts productos con quantity <= min_quantity, por cantidad ascendente.
	LowStockProducts(ctx context.Context, limit int) ([]*entity.Product, error)

	// TopProductsByQuantity productos con mayor cantidad disponible.
	TopProductsByQuantity(ctx context.Context, limit int) ([]*entity.Product, error)

	// InventoryTotals usa COALESCE para devolver cero con el catálogo vacío.
	InventoryTotals(ctx context.Context) (InventoryTotals, error)
}
