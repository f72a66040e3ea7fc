package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ForecastDTO respuesta de GET /api/products/:id/forecast.
type ForecastDTO struct {
	ProductID               string             `json:"product_id"`
	ProductName             string             `json:"product_name"`
	WindowDays              int                `json:"window_days"`
	CurrentQuantity         int                `json:"current_quantity"`
	AverageDailyConsumption float64            `json:"average_daily_consumption"`
	DaysUntilStockout       *int               `json:"days_until_stockout"` // null si no hay consumo
	ReorderPoint            int                `json:"reorder_point"`
	SafetyStockDays         int                `json:"safety_stock_days"`
	Forecast                []ForecastPointDTO `json:"forecast"`
}

// ForecastPointDTO stock proyectado para un día.
type ForecastPointDTO struct {
	Date           string  `json:"date"` // YYYY-MM-DD
	ProjectedStock float64 `json:"projected_stock"`
	NeedsReorder   bool    `json:"needs_reorder"`
}

// ProductAnalyticsDTO respuesta de GET /api/products/:id/analytics.
type ProductAnalyticsDTO struct {
	ProductID      string              `json:"product_id"`
	ProductName    string              `json:"product_name"`
	StartDate      time.Time           `json:"start_date"`
	EndDate        time.Time           `json:"end_date"`
	Inventory      InventoryMetricsDTO `json:"inventory_metrics"`
	Reviews        ReviewMetricsDTO    `json:"review_metrics"`
	Financial      FinancialMetricsDTO `json:"financial_metrics"`
	DailyInventory []DailyInventoryDTO `json:"daily_inventory"`
}

// InventoryMetricsDTO totales de movimientos del período.
type InventoryMetricsDTO struct {
	TotalIn           int     `json:"total_in"`
	TotalOut          int     `json:"total_out"`
	TotalAdjustment   int     `json:"total_adjustment"`
	AverageDailyUsage float64 `json:"average_daily_usage"`
	CurrentQuantity   int     `json:"current_quantity"`
}

// ReviewMetricsDTO métricas de reseñas del período.
type ReviewMetricsDTO struct {
	TotalReviews  int         `json:"total_reviews"`
	AverageRating float64     `json:"average_rating"`
	Distribution  map[int]int `json:"rating_distribution"` // estrellas 1..5
}

// FinancialMetricsDTO métricas financieras del producto.
type FinancialMetricsDTO struct {
	TotalValue   decimal.Decimal `json:"total_value"`
	AverageCost  decimal.Decimal `json:"average_cost"`
	ProfitMargin decimal.Decimal `json:"profit_margin"` // porcentaje
	TurnoverRate float64         `json:"turnover_rate"`
}

// DailyInventoryDTO nivel al cierre de un día con movimientos.
type DailyInventoryDTO struct {
	Date       string `json:"date"` // YYYY-MM-DD
	In         int    `json:"in"`
	Out        int    `json:"out"`
	Adjustment int    `json:"adjustment"`
	Quantity   int    `json:"quantity"`
}
