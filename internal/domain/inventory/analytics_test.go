package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/inventory"
)

func TestSummarizeMovements(t *testing.T) {
	txs := []*entity.InventoryTransaction{
		tx(entity.TransactionTypeIN, 50, refNow.AddDate(0, 0, -5)),
		tx(entity.TransactionTypeOUT, 10, refNow.AddDate(0, 0, -4)),
		tx(entity.TransactionTypeOUT, 5, refNow.AddDate(0, 0, -3)),
		tx(entity.TransactionTypeADJUSTMENT, 2, refNow.AddDate(0, 0, -2)),
	}

	s := inventory.SummarizeMovements(txs)

	assert.Equal(t, 50, s.TotalIn)
	assert.Equal(t, 15, s.TotalOut)
	assert.Equal(t, 2, s.TotalAdjustment)
	assert.Equal(t, 2, s.OutCount)
	assert.Equal(t, 7.5, s.AverageDailyUsage)
}

func TestSummarizeMovements_SinSalidas(t *testing.T) {
	s := inventory.SummarizeMovements([]*entity.InventoryTransaction{tx(entity.TransactionTypeIN, 3, refNow)})
	assert.Zero(t, s.AverageDailyUsage)
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 4.5, inventory.AverageRating([]int{4, 5}))
	assert.Zero(t, inventory.AverageRating(nil))
}

func TestSummarizeReviews(t *testing.T) {
	s := inventory.SummarizeReviews([]int{5, 5, 4, 1})

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 3.75, s.AverageRating)
	assert.Equal(t, [5]int{1, 0, 0, 1, 2}, s.Distribution)
}

func TestComputeFinancials(t *testing.T) {
	p := &entity.Product{
		Quantity:      10,
		PurchasePrice: decimal.RequireFromString("20"),
		SalePrice:     decimal.RequireFromString("29.99"),
		CurrentPrice:  decimal.RequireFromString("29.99"),
	}

	f := inventory.ComputeFinancials(p, 25)

	assert.True(t, decimal.RequireFromString("299.9").Equal(f.TotalValue), "valor = 10 × 29.99")
	assert.True(t, p.PurchasePrice.Equal(f.AverageCost))
	assert.True(t, decimal.RequireFromString("49.95").Equal(f.ProfitMargin), "margen: %s", f.ProfitMargin)
	assert.Equal(t, 2.5, f.TurnoverRate)
}

func TestComputeFinancials_SinCostoNiStock(t *testing.T) {
	p := &entity.Product{SalePrice: decimal.NewFromInt(10), CurrentPrice: decimal.NewFromInt(10)}

	f := inventory.ComputeFinancials(p, 4)

	assert.True(t, f.ProfitMargin.IsZero())
	assert.Zero(t, f.TurnoverRate)
	assert.True(t, f.TotalValue.IsZero())
}

func TestDailyLevels_ReconstruyeHaciaAtras(t *testing.T) {
	d1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	txs := []*entity.InventoryTransaction{
		tx(entity.TransactionTypeOUT, 5, d3),
		tx(entity.TransactionTypeIN, 50, d1),
		tx(entity.TransactionTypeOUT, 10, d2),
		tx(entity.TransactionTypeADJUSTMENT, 2, d2.Add(time.Hour)),
	}

	levels := inventory.DailyLevels(33, txs)

	require.Len(t, levels, 3)
	assert.Equal(t, inventory.DayUTC(d1), levels[0].Date)
	assert.Equal(t, 50, levels[0].Quantity)
	assert.Equal(t, 50, levels[0].In)
	assert.Equal(t, 38, levels[1].Quantity)
	assert.Equal(t, 10, levels[1].Out)
	assert.Equal(t, 2, levels[1].Adjustment)
	assert.Equal(t, 33, levels[2].Quantity, "el último día cierra en la cantidad actual")
}

func TestDailyLevels_SinTransacciones(t *testing.T) {
	assert.Empty(t, inventory.DailyLevels(10, nil))
}
