package inventory

import (
	"context"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Products      repository.ProductRepository
	Batches       repository.BatchRepository
	Transactions  repository.TransactionRepository
	Reviews       repository.ReviewRepository
	Images        repository.ProductImageRepository
	QualityChecks repository.QualityCheckRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback de todas las escrituras.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
