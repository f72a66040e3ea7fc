package inventory

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/inventory"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

// maxReplenishmentItems tope de productos considerados en una lista de reposición.
const maxReplenishmentItems = 500

// ReplenishmentUseCase genera la lista de reposición de los productos bajo mínimo.
// Combina el stock actual con el consumo de los últimos 30 días para priorizar los críticos.
type ReplenishmentUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	txRepo        repository.TransactionRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	analyticsRepo repository.AnalyticsRepository,
	txRepo repository.TransactionRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		analyticsRepo: analyticsRepo,
		txRepo:        txRepo,
	}
}

// GenerateReplenishmentList devuelve los productos con quantity <= min_quantity con la cantidad
// sugerida de pedido y un ranking de prioridad (1 = se agota antes).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	// 1. Productos bajo mínimo
	products, err := uc.analyticsRepo.LowStockProducts(ctx, maxReplenishmentItems)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Consumo de la ventana por producto
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -inventory.DefaultWindowDays)
	views, err := uc.txRepo.List(ctx, repository.TransactionFilter{From: &from})
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string][]*entity.InventoryTransaction, len(products))
	for i := range views {
		tx := views[i].InventoryTransaction
		byProduct[tx.ProductID] = append(byProduct[tx.ProductID], &tx)
	}

	// 3. Cantidad sugerida hasta el stock ideal
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(products))
	for _, p := range products {
		f := inventory.BuildForecast(p.Quantity, byProduct[p.ID], now)

		ideal := idealStock(p, f.ReorderPoint)
		suggested := ideal - p.Quantity
		if suggested < 0 {
			suggested = 0
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:               p.ID,
			SKU:                     p.SKU,
			ProductName:             p.Name,
			SupplierID:              p.SupplierID,
			CurrentQuantity:         p.Quantity,
			MinQuantity:             p.MinQuantity,
			MaxQuantity:             p.MaxQuantity,
			AverageDailyConsumption: inventory.Round2(f.AverageDailyConsumption),
			DaysUntilStockout:       f.DaysUntilStockout,
			SuggestedQuantity:       suggested,
			EstimatedCost:           p.PurchasePrice.Mul(decimal.NewFromInt(int64(suggested))),
		})
	}

	// 4. Ordenar: primero los que se agotan antes (sin consumo al final),
	//    luego mayor déficit bajo el mínimo.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		switch {
		case a.DaysUntilStockout != nil && b.DaysUntilStockout == nil:
			return true
		case a.DaysUntilStockout == nil && b.DaysUntilStockout != nil:
			return false
		case a.DaysUntilStockout != nil && *a.DaysUntilStockout != *b.DaysUntilStockout:
			return *a.DaysUntilStockout < *b.DaysUntilStockout
		}
		return a.MinQuantity-a.CurrentQuantity > b.MinQuantity-b.CurrentQuantity
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}

	return suggestions, nil
}

// idealStock nivel objetivo tras reponer: max_quantity si está definido por encima del mínimo,
// si no 1.5 × min_quantity; nunca por debajo del punto de reorden pronosticado.
func idealStock(p *entity.Product, reorderPoint int) int {
	ideal := p.MaxQuantity
	if ideal <= p.MinQuantity {
		ideal = int(math.Ceil(float64(p.MinQuantity) * 1.5))
	}
	if ideal < reorderPoint {
		ideal = reorderPoint
	}
	return ideal
}
