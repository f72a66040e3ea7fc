package inventory

import (
	"math"
	"time"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
)

const (
	// DefaultWindowDays ventana histórica por defecto para el pronóstico.
	DefaultWindowDays = 30
	// SafetyStockDays días de consumo que cubre el punto de reorden.
	SafetyStockDays = 7
	// HorizonDays número de días proyectados.
	HorizonDays = 30
)

// ForecastPoint stock proyectado para un día.
type ForecastPoint struct {
	Date           time.Time
	ProjectedStock float64
	NeedsReorder   bool
}

// Forecast resultado del pronóstico de demanda de un producto.
type Forecast struct {
	CurrentQuantity         int
	AverageDailyConsumption float64
	DaysUntilStockout       *int // nil si no hay consumo
	ReorderPoint            int
	SafetyStockDays         int
	Projections             []ForecastPoint
}

// BuildForecast calcula el consumo medio diario a partir de las transacciones de la ventana
// y proyecta el stock para los próximos HorizonDays días desde now (UTC).
//
// El consumo medio divide la suma de salidas entre el número de días distintos con movimientos.
// Sin días o sin salidas el consumo es 0 y no se proyecta agotamiento.
func BuildForecast(current int, txs []*entity.InventoryTransaction, now time.Time) Forecast {
	days := make(map[time.Time]struct{})
	totalOut := 0
	for _, tx := range txs {
		days[DayUTC(tx.CreatedAt)] = struct{}{}
		if tx.Type == entity.TransactionTypeOUT {
			totalOut += tx.Quantity
		}
	}

	var avg float64
	if len(days) > 0 && totalOut > 0 {
		avg = float64(totalOut) / float64(len(days))
	}

	f := Forecast{
		CurrentQuantity:         current,
		AverageDailyConsumption: avg,
		SafetyStockDays:         SafetyStockDays,
		ReorderPoint:            ceilClean(avg * SafetyStockDays),
		Projections:             make([]ForecastPoint, 0, HorizonDays),
	}
	if avg > 0 {
		d := int(math.Floor(clean(float64(current) / avg)))
		f.DaysUntilStockout = &d
	}

	today := DayUTC(now)
	for i := 0; i < HorizonDays; i++ {
		projected := math.Max(0, float64(current)-avg*float64(i+1))
		projected = Round2(projected)
		f.Projections = append(f.Projections, ForecastPoint{
			Date:           today.AddDate(0, 0, i),
			ProjectedStock: projected,
			NeedsReorder:   projected <= float64(f.ReorderPoint),
		})
	}
	return f
}

// DayUTC trunca t al inicio de su día calendario UTC.
func DayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Round2 redondea a dos decimales.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ceilClean aplica ceil tras descartar el ruido de coma flotante (70.0000000001 -> 70).
func ceilClean(v float64) int {
	return int(math.Ceil(clean(v)))
}

func clean(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
