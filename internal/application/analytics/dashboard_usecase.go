// Package analytics contiene los casos de uso de lectura del tablero, el pronóstico
// de demanda y la analítica por producto.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	appinventory "github.com/jhoicas/cosmetitrack-api/internal/application/inventory"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

// Tamaños de los widgets del tablero.
const (
	dashboardLowStock     = 5
	dashboardRecentTx     = 10
	dashboardTopProducts  = 5
	dashboardRecentReview = 5
)

// DashboardUseCase genera el resumen del tablero.
//
// Fuente de datos: AnalyticsRepository, TransactionRepository y ReviewRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	txRepo        repository.TransactionRepository
	reviewRepo    repository.ReviewRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	txRepo repository.TransactionRepository,
	reviewRepo repository.ReviewRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		txRepo:        txRepo,
		reviewRepo:    reviewRepo,
	}
}

// Stats construye el DashboardStatsDTO.
//
// Seis consultas independientes en paralelo:
//  1. Counts                 → totales de catálogo
//  2. LowStockProducts(5)    → quantity <= min_quantity
//  3. Transactions(10)       → últimos movimientos
//  4. TopProductsByQuantity  → mayor stock
//  5. Recent reviews(5)
//  6. InventoryTotals        → valorización
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	var (
		counts   repository.CatalogCounts
		lowStock []*entity.Product
		recentTx []repository.TransactionView
		top      []*entity.Product
		reviews  []repository.ReviewView
		totals   repository.InventoryTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = uc.analyticsRepo.Counts(gctx)
		return wrap("conteos", err)
	})
	g.Go(func() (err error) {
		lowStock, err = uc.analyticsRepo.LowStockProducts(gctx, dashboardLowStock)
		return wrap("stock bajo", err)
	})
	g.Go(func() (err error) {
		recentTx, err = uc.txRepo.List(gctx, repository.TransactionFilter{Limit: dashboardRecentTx})
		return wrap("transacciones", err)
	})
	g.Go(func() (err error) {
		top, err = uc.analyticsRepo.TopProductsByQuantity(gctx, dashboardTopProducts)
		return wrap("top productos", err)
	})
	g.Go(func() (err error) {
		reviews, err = uc.reviewRepo.Recent(gctx, dashboardRecentReview)
		return wrap("reseñas", err)
	})
	g.Go(func() (err error) {
		totals, err = uc.analyticsRepo.InventoryTotals(gctx)
		return wrap("valorización", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recentReviews := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		recentReviews = append(recentReviews, dto.ReviewResponse{
			ID:           r.ID,
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Rating:       r.Rating,
			Comment:      r.Comment,
			CustomerName: r.CustomerName,
			CreatedAt:    r.CreatedAt,
		})
	}

	return &dto.DashboardStatsDTO{
		TotalProducts:      counts.Products,
		TotalSuppliers:     counts.Suppliers,
		TotalCategories:    counts.Categories,
		TotalBrands:        counts.Brands,
		TotalTags:          counts.Tags,
		LowStockProducts:   toSummaries(lowStock),
		RecentTransactions: appinventory.ToTransactionResponses(recentTx),
		TopProducts:        toSummaries(top),
		RecentReviews:      recentReviews,
		// agregado ingenuo: no es el valor real del stock, ver StockValue
		TotalInventoryValue: decimal.NewFromInt(int64(totals.TotalQuantity)).Mul(totals.SumCurrentPrice).Round(2),
		StockValue:          totals.StockValue.Round(2),
	}, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard: %s: %w", what, err)
	}
	return nil
}

func toSummaries(products []*entity.Product) []dto.ProductSummaryDTO {
	out := make([]dto.ProductSummaryDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductSummaryDTO{
			ID:           p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			Quantity:     p.Quantity,
			MinQuantity:  p.MinQuantity,
			CurrentPrice: p.CurrentPrice,
			Status:       p.Status,
		})
	}
	return out
}
