package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/inventory"
)

var refNow = time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

func tx(txType string, qty int, at time.Time) *entity.InventoryTransaction {
	return &entity.InventoryTransaction{Type: txType, Quantity: qty, CreatedAt: at}
}

func TestBuildForecast_ConsumoConstante(t *testing.T) {
	txs := []*entity.InventoryTransaction{
		tx(entity.TransactionTypeOUT, 10, refNow.AddDate(0, 0, -3)),
		tx(entity.TransactionTypeOUT, 10, refNow.AddDate(0, 0, -2)),
		tx(entity.TransactionTypeOUT, 10, refNow.AddDate(0, 0, -1)),
	}

	f := inventory.BuildForecast(100, txs, refNow)

	assert.InDelta(t, 10.0, f.AverageDailyConsumption, 1e-9)
	assert.Equal(t, 70, f.ReorderPoint, "7 días de stock de seguridad")
	require.NotNil(t, f.DaysUntilStockout)
	assert.Equal(t, 10, *f.DaysUntilStockout)
	require.Len(t, f.Projections, inventory.HorizonDays)

	first := f.Projections[0]
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, 90.0, first.ProjectedStock)
	assert.False(t, first.NeedsReorder)

	// día índice 2: 100 - 30 = 70 -> alcanza el punto de reorden
	assert.Equal(t, 70.0, f.Projections[2].ProjectedStock)
	assert.True(t, f.Projections[2].NeedsReorder)

	last := f.Projections[inventory.HorizonDays-1]
	assert.Equal(t, 0.0, last.ProjectedStock, "el stock proyectado nunca es negativo")
}

func TestBuildForecast_MismoDiaCuentaUnaVez(t *testing.T) {
	day := refNow.AddDate(0, 0, -1)
	txs := []*entity.InventoryTransaction{
		tx(entity.TransactionTypeOUT, 5, day),
		tx(entity.TransactionTypeOUT, 7, day.Add(time.Hour)),
		tx(entity.TransactionTypeIN, 20, refNow.AddDate(0, 0, -2)),
	}

	f := inventory.BuildForecast(30, txs, refNow)

	// 12 unidades de salida / 2 días con movimientos
	assert.InDelta(t, 6.0, f.AverageDailyConsumption, 1e-9)
	assert.Equal(t, 42, f.ReorderPoint)
	require.NotNil(t, f.DaysUntilStockout)
	assert.Equal(t, 5, *f.DaysUntilStockout)
}

func TestBuildForecast_SinConsumo(t *testing.T) {
	t.Run("sin transacciones", func(t *testing.T) {
		f := inventory.BuildForecast(40, nil, refNow)
		assert.Zero(t, f.AverageDailyConsumption)
		assert.Nil(t, f.DaysUntilStockout)
		assert.Zero(t, f.ReorderPoint)
		require.Len(t, f.Projections, inventory.HorizonDays)
		for _, p := range f.Projections {
			assert.Equal(t, 40.0, p.ProjectedStock)
			assert.False(t, p.NeedsReorder)
		}
	})

	t.Run("solo entradas", func(t *testing.T) {
		txs := []*entity.InventoryTransaction{tx(entity.TransactionTypeIN, 15, refNow.AddDate(0, 0, -1))}
		f := inventory.BuildForecast(15, txs, refNow)
		assert.Zero(t, f.AverageDailyConsumption)
		assert.Nil(t, f.DaysUntilStockout)
	})
}

func TestBuildForecast_AgrupaPorDiaUTC(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	// 22:00 en Bogotá del día 8 = 03:00 UTC del día 9; 10:00 UTC del 9 es el mismo día UTC
	txs := []*entity.InventoryTransaction{
		tx(entity.TransactionTypeOUT, 4, time.Date(2024, 3, 8, 22, 0, 0, 0, bogota)),
		tx(entity.TransactionTypeOUT, 4, time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)),
	}

	f := inventory.BuildForecast(80, txs, refNow)

	assert.InDelta(t, 8.0, f.AverageDailyConsumption, 1e-9)
}

func TestBuildForecast_PuntoDeReordenRedondeaHaciaArriba(t *testing.T) {
	txs := []*entity.InventoryTransaction{
		tx(entity.TransactionTypeOUT, 10, refNow.AddDate(0, 0, -3)),
		tx(entity.TransactionTypeIN, 1, refNow.AddDate(0, 0, -2)),
		tx(entity.TransactionTypeIN, 1, refNow.AddDate(0, 0, -1)),
	}

	f := inventory.BuildForecast(10, txs, refNow)

	// 10/3 = 3.33 por día -> 23.33 -> 24
	assert.Equal(t, 24, f.ReorderPoint)
	require.NotNil(t, f.DaysUntilStockout)
	assert.Equal(t, 3, *f.DaysUntilStockout)
}

func TestDelta(t *testing.T) {
	assert.Equal(t, 5, inventory.Delta(entity.TransactionTypeIN, 5))
	assert.Equal(t, -5, inventory.Delta(entity.TransactionTypeOUT, 5))
	assert.Equal(t, -5, inventory.Delta(entity.TransactionTypeADJUSTMENT, 5))
}

func TestValidateMovement(t *testing.T) {
	assert.NoError(t, inventory.ValidateMovement(entity.TransactionTypeOUT, 1))
	assert.Error(t, inventory.ValidateMovement("STOCK_IN", 1))
	assert.Error(t, inventory.ValidateMovement(entity.TransactionTypeIN, 0))
	assert.Error(t, inventory.ValidateMovement(entity.TransactionTypeIN, -3))
}
