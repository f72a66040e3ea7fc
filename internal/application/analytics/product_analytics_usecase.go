package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/inventory"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ProductAnalyticsUseCase pronóstico de demanda y métricas por producto.
type ProductAnalyticsUseCase struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	reviewRepo  repository.ReviewRepository
	now         func() time.Time
}

// NewProductAnalyticsUseCase construye el caso de uso.
func NewProductAnalyticsUseCase(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	reviewRepo repository.ReviewRepository,
) *ProductAnalyticsUseCase {
	return &ProductAnalyticsUseCase{
		productRepo: productRepo,
		txRepo:      txRepo,
		reviewRepo:  reviewRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Forecast proyecta el stock del producto para los próximos 30 días a partir del consumo
// de los últimos windowDays días (inventory.DefaultWindowDays si el caller no indica otra).
func (uc *ProductAnalyticsUseCase) Forecast(ctx context.Context, productID string, windowDays int) (*dto.ForecastDTO, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("%w: days debe ser positivo", domain.ErrInvalidInput)
	}
	product, err := uc.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	txs, err := uc.transactions(ctx, productID, now.AddDate(0, 0, -windowDays))
	if err != nil {
		return nil, err
	}

	f := inventory.BuildForecast(product.Quantity, txs, now)
	points := make([]dto.ForecastPointDTO, 0, len(f.Projections))
	for _, p := range f.Projections {
		points = append(points, dto.ForecastPointDTO{
			Date:           p.Date.Format(dateLayout),
			ProjectedStock: p.ProjectedStock,
			NeedsReorder:   p.NeedsReorder,
		})
	}
	return &dto.ForecastDTO{
		ProductID:               product.ID,
		ProductName:             product.Name,
		WindowDays:              windowDays,
		CurrentQuantity:         f.CurrentQuantity,
		AverageDailyConsumption: inventory.Round2(f.AverageDailyConsumption),
		DaysUntilStockout:       f.DaysUntilStockout,
		ReorderPoint:            f.ReorderPoint,
		SafetyStockDays:         f.SafetyStockDays,
		Forecast:                points,
	}, nil
}

// Analytics métricas de inventario, reseñas y finanzas del producto en [start, end].
// Sin end_date se usa ahora; sin start_date, 30 días antes de end. Acepta YYYY-MM-DD o RFC3339.
func (uc *ProductAnalyticsUseCase) Analytics(ctx context.Context, productID, startDate, endDate string) (*dto.ProductAnalyticsDTO, error) {
	end := uc.now()
	start := end.AddDate(0, 0, -inventory.DefaultWindowDays)
	if endDate != "" {
		t, err := ParseDate(endDate, true)
		if err != nil {
			return nil, err
		}
		end = t
		// Sin start_date la ventana se cuenta hacia atrás desde end_date, a día completo.
		start = end.AddDate(0, 0, -inventory.DefaultWindowDays).Truncate(24 * time.Hour)
	}
	if startDate != "" {
		t, err := ParseDate(startDate, false)
		if err != nil {
			return nil, err
		}
		start = t
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: start_date posterior a end_date", domain.ErrInvalidInput)
	}

	product, err := uc.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	// Los niveles diarios se reconstruyen desde la cantidad actual, por eso se leen
	// también los movimientos posteriores a end.
	all, err := uc.transactions(ctx, productID, start)
	if err != nil {
		return nil, err
	}
	limit := end.Add(time.Nanosecond)
	inRange := make([]*entity.InventoryTransaction, 0, len(all))
	for _, tx := range all {
		if tx.CreatedAt.Before(limit) {
			inRange = append(inRange, tx)
		}
	}

	ratings, err := uc.reviewRepo.Ratings(ctx, productID)
	if err != nil {
		return nil, err
	}

	movements := inventory.SummarizeMovements(inRange)
	reviews := inventory.SummarizeReviews(ratings)
	fin := inventory.ComputeFinancials(product, movements.TotalOut)

	distribution := make(map[int]int, 5)
	for i, n := range reviews.Distribution {
		distribution[i+1] = n
	}

	daily := make([]dto.DailyInventoryDTO, 0)
	for _, lvl := range inventory.DailyLevels(product.Quantity, all) {
		if !lvl.Date.Before(limit) {
			continue
		}
		daily = append(daily, dto.DailyInventoryDTO{
			Date:       lvl.Date.Format(dateLayout),
			In:         lvl.In,
			Out:        lvl.Out,
			Adjustment: lvl.Adjustment,
			Quantity:   lvl.Quantity,
		})
	}

	return &dto.ProductAnalyticsDTO{
		ProductID:   product.ID,
		ProductName: product.Name,
		StartDate:   start,
		EndDate:     end,
		Inventory: dto.InventoryMetricsDTO{
			TotalIn:           movements.TotalIn,
			TotalOut:          movements.TotalOut,
			TotalAdjustment:   movements.TotalAdjustment,
			AverageDailyUsage: movements.AverageDailyUsage,
			CurrentQuantity:   product.Quantity,
		},
		Reviews: dto.ReviewMetricsDTO{
			TotalReviews:  reviews.Count,
			AverageRating: reviews.AverageRating,
			Distribution:  distribution,
		},
		Financial: dto.FinancialMetricsDTO{
			TotalValue:   fin.TotalValue.Round(2),
			AverageCost:  fin.AverageCost,
			ProfitMargin: fin.ProfitMargin,
			TurnoverRate: fin.TurnoverRate,
		},
		DailyInventory: daily,
	}, nil
}

func (uc *ProductAnalyticsUseCase) getProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return product, nil
}

// transactions movimientos del producto desde from (inclusive) hasta hoy.
func (uc *ProductAnalyticsUseCase) transactions(ctx context.Context, productID string, from time.Time) ([]*entity.InventoryTransaction, error) {
	views, err := uc.txRepo.List(ctx, repository.TransactionFilter{ProductID: productID, From: &from})
	if err != nil {
		return nil, err
	}
	txs := make([]*entity.InventoryTransaction, 0, len(views))
	for i := range views {
		txs = append(txs, &views[i].InventoryTransaction)
	}
	return txs, nil
}

// ParseDate interpreta YYYY-MM-DD (UTC) o RFC3339. Con endOfDay una fecha sin hora
// se extiende hasta el último instante del día.
func ParseDate(s string, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		if endOfDay {
			return t.Add(24*time.Hour - time.Nanosecond), nil
		}
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha inválida %q (use YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return t.UTC(), nil
}
