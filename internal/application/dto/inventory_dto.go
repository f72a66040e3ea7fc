package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordTransactionRequest body de POST /api/inventory/transactions.
type RecordTransactionRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	BatchID   string `json:"batch_id"`
	Type      string `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Notes     string `json:"notes"`
}

// TransactionFilterRequest filtros de GET /api/inventory/transactions (fechas YYYY-MM-DD o RFC3339).
type TransactionFilterRequest struct {
	ProductID string `query:"product_id"`
	BatchID   string `query:"batch_id"`
	Type      string `query:"type"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// TransactionResponse salida de una transacción del libro.
type TransactionResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name,omitempty"`
	ProductSKU    string    `json:"product_sku,omitempty"`
	BatchID       string    `json:"batch_id,omitempty"`
	BatchNumber   string    `json:"batch_number,omitempty"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	Notes         string    `json:"notes"`
	PerformedBy   string    `json:"performed_by"`
	PerformedByID string    `json:"performed_by_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateQualityCheckRequest entrada para un control de calidad.
type CreateQualityCheckRequest struct {
	BatchID     string `json:"batch_id"`
	Type        string `json:"type" validate:"required"`
	Status      string `json:"status" validate:"omitempty,oneof=PENDING PASSED FAILED"`
	Notes       string `json:"notes"`
	PerformedBy string `json:"performed_by"`
}

// QualityCheckResponse salida de un control de calidad.
type QualityCheckResponse struct {
	ID          string    `json:"id"`
	BatchID     string    `json:"batch_id"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	PerformedBy string    `json:"performed_by"`
	PerformedAt time.Time `json:"performed_at"`
}

// CreateBatchRequest entrada para recibir un lote. Quantity se registra como entrada en el libro.
type CreateBatchRequest struct {
	ProductID         string                      `json:"product_id" validate:"required"`
	BatchNumber       string                      `json:"batch_number" validate:"required"`
	Quantity          int                         `json:"quantity" validate:"required,gt=0"`
	PurchasePrice     decimal.Decimal             `json:"purchase_price"`
	ExpiryDate        *time.Time                  `json:"expiry_date"`
	ManufacturingDate *time.Time                  `json:"manufacturing_date"`
	Status            string                      `json:"status"` // por defecto ACTIVE
	QualityChecks     []CreateQualityCheckRequest `json:"quality_checks"`
}

// BatchResponse salida de un lote con sus controles de calidad.
type BatchResponse struct {
	ID                string                 `json:"id"`
	ProductID         string                 `json:"product_id"`
	BatchNumber       string                 `json:"batch_number"`
	Quantity          int                    `json:"quantity"`
	PurchasePrice     decimal.Decimal        `json:"purchase_price"`
	ExpiryDate        *time.Time             `json:"expiry_date,omitempty"`
	ManufacturingDate *time.Time             `json:"manufacturing_date,omitempty"`
	Status            string                 `json:"status"`
	QualityChecks     []QualityCheckResponse `json:"quality_checks"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// ReplenishmentSuggestionDTO producto bajo mínimo con la cantidad sugerida de pedido.
type ReplenishmentSuggestionDTO struct {
	ProductID               string          `json:"product_id"`
	SKU                     string          `json:"sku"`
	ProductName             string          `json:"product_name"`
	SupplierID              string          `json:"supplier_id,omitempty"`
	CurrentQuantity         int             `json:"current_quantity"`
	MinQuantity             int             `json:"min_quantity"`
	MaxQuantity             int             `json:"max_quantity"`
	AverageDailyConsumption float64         `json:"average_daily_consumption"`
	DaysUntilStockout       *int            `json:"days_until_stockout"`
	SuggestedQuantity       int             `json:"suggested_quantity"`
	EstimatedCost           decimal.Decimal `json:"estimated_cost"` // suggested × purchase_price
	Priority                int             `json:"priority"`       // 1 = más urgente
}
