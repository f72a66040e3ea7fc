package inventory

import (
	"fmt"

	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
)

// Delta devuelve el cambio de cantidad que produce una transacción: +q para IN, -q para OUT y ADJUSTMENT.
func Delta(txType string, quantity int) int {
	if txType == entity.TransactionTypeIN {
		return quantity
	}
	return -quantity
}

// ValidateMovement verifica tipo y cantidad de una transacción antes de registrarla.
func ValidateMovement(txType string, quantity int) error {
	if !entity.ValidTransactionType(txType) {
		return fmt.Errorf("%w: tipo de transacción desconocido %q", domain.ErrInvalidInput, txType)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	return nil
}
