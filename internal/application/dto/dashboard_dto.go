package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalProducts   int `json:"total_products"`
	TotalSuppliers  int `json:"total_suppliers"`
	TotalCategories int `json:"total_categories"`
	TotalBrands     int `json:"total_brands"`
	TotalTags       int `json:"total_tags"`

	LowStockProducts   []ProductSummaryDTO   `json:"low_stock_products"`   // 5 con quantity <= min_quantity
	RecentTransactions []TransactionResponse `json:"recent_transactions"` // 10 más recientes
	TopProducts        []ProductSummaryDTO   `json:"top_products"`        // 5 con mayor cantidad
	RecentReviews      []ReviewResponse      `json:"recent_reviews"`      // 5 más recientes

	// sum(quantity) × sum(current_price): agregado histórico conservado tal cual
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	// sum(quantity × current_price)
	StockValue decimal.Decimal `json:"stock_value"`
}

// ProductSummaryDTO vista compacta de producto para los widgets del tablero.
type ProductSummaryDTO struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	MinQuantity  int             `json:"min_quantity"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Status       string          `json:"status"`
}
