package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/application/inventory"
	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

// BatchUseCase recepción y consulta de lotes.
type BatchUseCase struct {
	repo     repository.BatchRepository
	txRunner inventory.TxRunner
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(repo repository.BatchRepository, txRunner inventory.TxRunner) *BatchUseCase {
	return &BatchUseCase{repo: repo, txRunner: txRunner}
}

// Create registra un lote. El lote se inserta con cantidad 0 y la cantidad recibida entra por el
// libro (IN con batch_id), así producto y lote se mueven juntos en la misma transacción.
func (uc *BatchUseCase) Create(ctx context.Context, actor Actor, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	in.BatchNumber = strings.TrimSpace(in.BatchNumber)
	if strings.TrimSpace(in.ProductID) == "" || in.BatchNumber == "" {
		return nil, fmt.Errorf("%w: product_id y batch_number son obligatorios", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if in.PurchasePrice.IsNegative() {
		return nil, fmt.Errorf("%w: purchase_price no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Status == "" {
		in.Status = entity.BatchStatusActive
	}
	if !entity.ValidBatchStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado de lote desconocido %q", domain.ErrInvalidInput, in.Status)
	}
	if in.ExpiryDate != nil && in.ManufacturingDate != nil && in.ExpiryDate.Before(*in.ManufacturingDate) {
		return nil, fmt.Errorf("%w: expiry_date anterior a manufacturing_date", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	batch := &entity.Batch{
		ID:                uuid.New().String(),
		ProductID:         in.ProductID,
		BatchNumber:       in.BatchNumber,
		PurchasePrice:     in.PurchasePrice,
		ExpiryDate:        in.ExpiryDate,
		ManufacturingDate: in.ManufacturingDate,
		Status:            in.Status,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	checks := make([]*entity.QualityCheck, 0, len(in.QualityChecks))
	for _, qc := range in.QualityChecks {
		qc.BatchID = batch.ID
		check, err := newQualityCheck(actor, qc, now)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}

	var created *entity.Batch
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
		}
		if err := repos.Batches.Create(ctx, batch); err != nil {
			return err
		}
		for _, check := range checks {
			if err := repos.QualityChecks.Create(ctx, check); err != nil {
				return err
			}
		}
		if _, err := inventory.RecordInTx(ctx, repos, inventory.RecordInput{
			ProductID:     in.ProductID,
			BatchID:       batch.ID,
			Type:          entity.TransactionTypeIN,
			Quantity:      in.Quantity,
			Notes:         "Recepción de lote " + batch.BatchNumber,
			PerformedBy:   actor.displayName(),
			PerformedByID: actor.ID,
		}, now); err != nil {
			return err
		}
		created, err = repos.Batches.GetByID(ctx, batch.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("batch_id", created.ID).
		Str("product_id", created.ProductID).
		Str("batch_number", created.BatchNumber).
		Int("quantity", created.Quantity).
		Msg("lote recibido")
	return toBatchResponse(created), nil
}

// GetByID obtiene un lote con sus controles de calidad.
func (uc *BatchUseCase) GetByID(ctx context.Context, id string) (*dto.BatchResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
	}
	return toBatchResponse(b), nil
}

// List lista lotes por producto y estado, más recientes primero.
func (uc *BatchUseCase) List(ctx context.Context, productID, status string) ([]dto.BatchResponse, error) {
	if status != "" && !entity.ValidBatchStatus(status) {
		return nil, fmt.Errorf("%w: estado de lote desconocido %q", domain.ErrInvalidInput, status)
	}
	if err := dto.ValidateID("product_id", productID); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, repository.BatchFilter{ProductID: productID, Status: status})
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBatchResponse(b))
	}
	return out, nil
}

func toBatchResponse(b *entity.Batch) *dto.BatchResponse {
	checks := make([]dto.QualityCheckResponse, 0, len(b.QualityChecks))
	for _, qc := range b.QualityChecks {
		checks = append(checks, *toQualityCheckResponse(qc))
	}
	return &dto.BatchResponse{
		ID:                b.ID,
		ProductID:         b.ProductID,
		BatchNumber:       b.BatchNumber,
		Quantity:          b.Quantity,
		PurchasePrice:     b.PurchasePrice,
		ExpiryDate:        b.ExpiryDate,
		ManufacturingDate: b.ManufacturingDate,
		Status:            b.Status,
		QualityChecks:     checks,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}
