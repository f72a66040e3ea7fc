package repository

import (
	"context"
	"time"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
)

// TransactionView transacción con datos de lectura del producto y el lote.
type TransactionView struct {
	entity.InventoryTransaction
	ProductName string
	ProductSKU  string
	BatchNumber string
}

// TransactionFilter filtros del libro de inventario. From es inclusivo y To exclusivo.
type TransactionFilter struct {
	ProductID string
	BatchID   string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int // 0 = sin límite
}

// TransactionRepository define el puerto de persistencia del libro de inventario (solo inserción y lectura).
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	// List ordena por fecha de creación descendente.
	List(ctx context.Context, filter TransactionFilter) ([]TransactionView, error)
}
