package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de lote.
const (
	BatchStatusActive     = "ACTIVE"
	BatchStatusQuarantine = "QUARANTINE"
	BatchStatusExpired    = "EXPIRED"
	BatchStatusDepleted   = "DEPLETED"
)

// ValidBatchStatus indica si s es un estado de lote conocido.
func ValidBatchStatus(s string) bool {
	switch s {
	case BatchStatusActive, BatchStatusQuarantine, BatchStatusExpired, BatchStatusDepleted:
		return true
	}
	return false
}

// Batch lote de fabricación de un producto. Quantity se mueve junto con la del producto vía el libro.
type Batch struct {
	ID                string
	ProductID         string
	BatchNumber       string
	Quantity          int
	PurchasePrice     decimal.Decimal
	ExpiryDate        *time.Time
	ManufacturingDate *time.Time
	Status            string
	QualityChecks     []*QualityCheck
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
