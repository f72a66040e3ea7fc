package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
)

// MovementSummary totales de movimientos de un producto en un período.
type MovementSummary struct {
	TotalIn           int
	TotalOut          int
	TotalAdjustment   int
	OutCount          int
	AverageDailyUsage float64 // TotalOut / número de transacciones OUT
}

// SummarizeMovements agrega las transacciones por tipo.
func SummarizeMovements(txs []*entity.InventoryTransaction) MovementSummary {
	var s MovementSummary
	for _, tx := range txs {
		switch tx.Type {
		case entity.TransactionTypeIN:
			s.TotalIn += tx.Quantity
		case entity.TransactionTypeOUT:
			s.TotalOut += tx.Quantity
			s.OutCount++
		case entity.TransactionTypeADJUSTMENT:
			s.TotalAdjustment += tx.Quantity
		}
	}
	if s.OutCount > 0 {
		s.AverageDailyUsage = Round2(float64(s.TotalOut) / float64(s.OutCount))
	}
	return s
}

// ReviewSummary métricas de reseñas: cantidad, promedio y distribución por estrellas (1..5).
type ReviewSummary struct {
	Count         int
	AverageRating float64
	Distribution  [5]int // índice 0 = 1 estrella
}

// AverageRating media aritmética de las calificaciones; 0 si no hay ninguna.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// SummarizeReviews calcula las métricas de reseñas. Calificaciones fuera de 1..5 se ignoran en el histograma.
func SummarizeReviews(ratings []int) ReviewSummary {
	s := ReviewSummary{Count: len(ratings), AverageRating: Round2(AverageRating(ratings))}
	for _, r := range ratings {
		if r >= 1 && r <= 5 {
			s.Distribution[r-1]++
		}
	}
	return s
}

// Financials métricas financieras de un producto.
type Financials struct {
	TotalValue   decimal.Decimal // quantity × currentPrice
	AverageCost  decimal.Decimal // purchasePrice
	ProfitMargin decimal.Decimal // % sobre purchasePrice
	TurnoverRate float64         // salidas / stock actual
}

var hundred = decimal.NewFromInt(100)

// ComputeFinancials calcula valor, margen y rotación con las salidas del período.
func ComputeFinancials(p *entity.Product, totalOut int) Financials {
	f := Financials{
		TotalValue:   p.CurrentPrice.Mul(decimal.NewFromInt(int64(p.Quantity))),
		AverageCost:  p.PurchasePrice,
		ProfitMargin: decimal.Zero,
	}
	if p.PurchasePrice.IsPositive() {
		f.ProfitMargin = p.SalePrice.Sub(p.PurchasePrice).Div(p.PurchasePrice).Mul(hundred).Round(2)
	}
	if totalOut > 0 && p.Quantity > 0 {
		f.TurnoverRate = Round2(float64(totalOut) / float64(p.Quantity))
	}
	return f
}

// DailyLevel nivel de inventario al cierre de un día con movimientos.
type DailyLevel struct {
	Date       time.Time
	In         int
	Out        int
	Adjustment int
	Quantity   int
}

// DailyLevels reconstruye el nivel al cierre de cada día UTC con movimientos, en orden ascendente.
// El último día cierra en current y los anteriores se obtienen deshaciendo los deltas de los días posteriores.
func DailyLevels(current int, txs []*entity.InventoryTransaction) []DailyLevel {
	byDay := make(map[time.Time]*DailyLevel)
	for _, tx := range txs {
		day := DayUTC(tx.CreatedAt)
		lvl, ok := byDay[day]
		if !ok {
			lvl = &DailyLevel{Date: day}
			byDay[day] = lvl
		}
		switch tx.Type {
		case entity.TransactionTypeIN:
			lvl.In += tx.Quantity
		case entity.TransactionTypeOUT:
			lvl.Out += tx.Quantity
		case entity.TransactionTypeADJUSTMENT:
			lvl.Adjustment += tx.Quantity
		}
	}

	levels := make([]DailyLevel, 0, len(byDay))
	for _, lvl := range byDay {
		levels = append(levels, *lvl)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Date.Before(levels[j].Date) })

	qty := current
	for i := len(levels) - 1; i >= 0; i-- {
		levels[i].Quantity = qty
		qty -= levels[i].In - levels[i].Out - levels[i].Adjustment
	}
	return levels
}
