package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

// QualityCheckUseCase controles de calidad de lotes (solo alta y consulta).
type QualityCheckUseCase struct {
	repo      repository.QualityCheckRepository
	batchRepo repository.BatchRepository
}

// NewQualityCheckUseCase construye el caso de uso.
func NewQualityCheckUseCase(repo repository.QualityCheckRepository, batchRepo repository.BatchRepository) *QualityCheckUseCase {
	return &QualityCheckUseCase{repo: repo, batchRepo: batchRepo}
}

// Create registra un control sobre un lote existente. performed_by por defecto es el usuario autenticado.
func (uc *QualityCheckUseCase) Create(ctx context.Context, actor Actor, in dto.CreateQualityCheckRequest) (*dto.QualityCheckResponse, error) {
	if strings.TrimSpace(in.BatchID) == "" {
		return nil, fmt.Errorf("%w: batch_id es obligatorio", domain.ErrInvalidInput)
	}
	check, err := newQualityCheck(actor, in, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	batch, err := uc.batchRepo.GetByID(ctx, in.BatchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, in.BatchID)
	}
	if err := uc.repo.Create(ctx, check); err != nil {
		return nil, err
	}
	return toQualityCheckResponse(check), nil
}

// List filtra por lote, tipo y estado; más recientes primero.
func (uc *QualityCheckUseCase) List(ctx context.Context, batchID, checkType, status string) ([]dto.QualityCheckResponse, error) {
	if status != "" && !entity.ValidQualityStatus(status) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, status)
	}
	if err := dto.ValidateID("batch_id", batchID); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, repository.QualityCheckFilter{BatchID: batchID, Type: checkType, Status: status})
	if err != nil {
		return nil, err
	}
	out := make([]dto.QualityCheckResponse, 0, len(list))
	for _, qc := range list {
		out = append(out, *toQualityCheckResponse(qc))
	}
	return out, nil
}

func newQualityCheck(actor Actor, in dto.CreateQualityCheckRequest, now time.Time) (*entity.QualityCheck, error) {
	checkType := strings.TrimSpace(in.Type)
	if checkType == "" {
		return nil, fmt.Errorf("%w: type es obligatorio", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.QualityStatusPending
	}
	if !entity.ValidQualityStatus(status) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, status)
	}
	performedBy := strings.TrimSpace(in.PerformedBy)
	if performedBy == "" {
		performedBy = actor.displayName()
	}
	return &entity.QualityCheck{
		ID:          uuid.New().String(),
		BatchID:     in.BatchID,
		Type:        checkType,
		Status:      status,
		Notes:       in.Notes,
		PerformedBy: performedBy,
		PerformedAt: now,
	}, nil
}

func toQualityCheckResponse(qc *entity.QualityCheck) *dto.QualityCheckResponse {
	return &dto.QualityCheckResponse{
		ID:          qc.ID,
		BatchID:     qc.BatchID,
		Type:        qc.Type,
		Status:      qc.Status,
		Notes:       qc.Notes,
		PerformedBy: qc.PerformedBy,
		PerformedAt: qc.PerformedAt,
	}
}
