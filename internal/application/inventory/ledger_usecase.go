package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/inventory"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

// UnknownPerformer nombre registrado cuando no hay usuario autenticado.
const UnknownPerformer = "Unknown"

// LedgerUseCase registra y consulta el libro de inventario.
// Cada transacción y los cambios de cantidad que produce se aplican en una sola transacción de BD.
type LedgerUseCase struct {
	txRunner TxRunner
	txRepo   repository.TransactionRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, txRepo repository.TransactionRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, txRepo: txRepo}
}

// RecordInput entrada para registrar un movimiento.
type RecordInput struct {
	ProductID     string
	BatchID       string
	Type          string
	Quantity      int
	Notes         string
	PerformedBy   string
	PerformedByID string
}

// RecordTransaction valida la entrada, abre una transacción y aplica RecordInTx.
func (uc *LedgerUseCase) RecordTransaction(ctx context.Context, in RecordInput) (*dto.TransactionResponse, error) {
	if err := inventory.ValidateMovement(in.Type, in.Quantity); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}

	var recorded *entity.InventoryTransaction
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		tx, err := RecordInTx(ctx, repos, in, time.Now().UTC())
		if err != nil {
			return err
		}
		recorded = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("transaction_id", recorded.ID).
		Str("product_id", recorded.ProductID).
		Str("batch_id", recorded.BatchID).
		Str("type", recorded.Type).
		Int("quantity", recorded.Quantity).
		Str("performed_by", recorded.PerformedBy).
		Msg("transacción de inventario registrada")

	return toTransactionResponse(repository.TransactionView{InventoryTransaction: *recorded}), nil
}

// RecordInTx registra la transacción usando los repositorios recibidos (misma transacción del caller):
// inserta el registro, ajusta la cantidad del producto y, si hay lote, la del lote con el mismo delta.
// Usado también por la recepción de lotes y la creación de productos con stock inicial.
func RecordInTx(ctx context.Context, repos TxRepos, in RecordInput, now time.Time) (*entity.InventoryTransaction, error) {
	if err := inventory.ValidateMovement(in.Type, in.Quantity); err != nil {
		return nil, err
	}

	product, err := repos.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}
	if in.BatchID != "" {
		batch, err := repos.Batches.GetByID(ctx, in.BatchID)
		if err != nil {
			return nil, err
		}
		if batch == nil {
			return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, in.BatchID)
		}
		if batch.ProductID != product.ID {
			return nil, fmt.Errorf("%w: el lote no pertenece al producto", domain.ErrInvalidInput)
		}
	}

	performedBy := strings.TrimSpace(in.PerformedBy)
	if performedBy == "" {
		performedBy = UnknownPerformer
	}
	tx := &entity.InventoryTransaction{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		BatchID:       in.BatchID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Notes:         in.Notes,
		PerformedBy:   performedBy,
		PerformedByID: in.PerformedByID,
		CreatedAt:     now,
	}
	if err := repos.Transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	delta := inventory.Delta(in.Type, in.Quantity)
	if _, err := repos.Products.AdjustQuantity(ctx, product.ID, delta); err != nil {
		return nil, err
	}
	if in.BatchID != "" {
		if _, err := repos.Batches.AdjustQuantity(ctx, in.BatchID, delta); err != nil {
			return nil, err
		}
	}
	return tx, nil
}

// ListFilter filtros del listado del libro.
type ListFilter struct {
	ProductID string
	BatchID   string
	Type      string
	From      *time.Time
	To        *time.Time
}

// ListTransactions lista el libro ordenado por fecha descendente.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, f ListFilter) ([]dto.TransactionResponse, error) {
	if f.Type != "" && !entity.ValidTransactionType(f.Type) {
		return nil, fmt.Errorf("%w: tipo de transacción desconocido %q", domain.ErrInvalidInput, f.Type)
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, fmt.Errorf("%w: start_date posterior a end_date", domain.ErrInvalidInput)
	}
	if err := dto.ValidateID("product_id", f.ProductID); err != nil {
		return nil, err
	}
	if err := dto.ValidateID("batch_id", f.BatchID); err != nil {
		return nil, err
	}
	views, err := uc.txRepo.List(ctx, repository.TransactionFilter{
		ProductID: f.ProductID,
		BatchID:   f.BatchID,
		Type:      f.Type,
		From:      f.From,
		To:        f.To,
	})
	if err != nil {
		return nil, err
	}
	return ToTransactionResponses(views), nil
}

// ToTransactionResponses convierte vistas del libro a DTOs.
func ToTransactionResponses(views []repository.TransactionView) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(views))
	for _, v := range views {
		out = append(out, *toTransactionResponse(v))
	}
	return out
}

func toTransactionResponse(v repository.TransactionView) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:            v.ID,
		ProductID:     v.ProductID,
		ProductName:   v.ProductName,
		ProductSKU:    v.ProductSKU,
		BatchID:       v.BatchID,
		BatchNumber:   v.BatchNumber,
		Type:          v.Type,
		Quantity:      v.Quantity,
		Notes:         v.Notes,
		PerformedBy:   v.PerformedBy,
		PerformedByID: v.PerformedByID,
		CreatedAt:     v.CreatedAt,
	}
}
