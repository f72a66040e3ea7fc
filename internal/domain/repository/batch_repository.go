package repository

import (
	"context"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
)

// BatchFilter filtros de listado de lotes.
type BatchFilter struct {
	ProductID string
	Status    string
}

// BatchRepository define el puerto de persistencia para Batch.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	// GetByID devuelve el lote con sus controles de calidad; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	// List ordena por fecha de creación descendente e incluye controles de calidad.
	List(ctx context.Context, filter BatchFilter) ([]*entity.Batch, error)
	// AdjustQuantity misma semántica que ProductRepository.AdjustQuantity.
	AdjustQuantity(ctx context.Context, id string, delta int) (int, error)
}

// QualityCheckFilter filtros de listado de controles de calidad.
type QualityCheckFilter struct {
	BatchID string
	Type    string
	Status  string
}

// QualityCheckRepository define el puerto de persistencia para QualityCheck (solo inserción y lectura).
type QualityCheckRepository interface {
	Create(ctx context.Context, check *entity.QualityCheck) error
	// List ordena por fecha de realización descendente.
	List(ctx context.Context, filter QualityCheckFilter) ([]*entity.QualityCheck, error)
}
