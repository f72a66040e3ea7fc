package entity

import "time"

// Estados de control de calidad.
const (
	QualityStatusPending = "PENDING"
	QualityStatusPassed  = "PASSED"
	QualityStatusFailed  = "FAILED"
)

// ValidQualityStatus indica si s es un estado de control de calidad conocido.
func ValidQualityStatus(s string) bool {
	return s == QualityStatusPending || s == QualityStatusPassed || s == QualityStatusFailed
}

// QualityCheck control de calidad sobre un lote. Inmutable una vez creado.
type QualityCheck struct {
	ID          string
	BatchID     string
	Type        string
	Status      string
	Notes       string
	PerformedBy string
	PerformedAt time.Time
}
