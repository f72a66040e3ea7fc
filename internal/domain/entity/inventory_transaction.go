package entity

import "time"

// Tipos de transacción de inventario.
const (
	TransactionTypeIN         = "IN"         // entrada
	TransactionTypeOUT        = "OUT"        // salida
	TransactionTypeADJUSTMENT = "ADJUSTMENT" // ajuste (resta)
)

// ValidTransactionType indica si t es un tipo de transacción conocido.
func ValidTransactionType(t string) bool {
	return t == TransactionTypeIN || t == TransactionTypeOUT || t == TransactionTypeADJUSTMENT
}

// InventoryTransaction registro inmutable del libro de inventario.
// Quantity siempre es positiva; el signo lo determina Type.
type InventoryTransaction struct {
	ID            string
	ProductID     string
	BatchID       string // vacío si no está ligada a un lote
	Type          string
	Quantity      int
	Notes         string
	PerformedBy   string // nombre del usuario
	PerformedByID string
	CreatedAt     time.Time
}
