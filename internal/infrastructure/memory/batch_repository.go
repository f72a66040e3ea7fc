package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

var (
	_ repository.BatchRepository        = (*BatchRepo)(nil)
	_ repository.QualityCheckRepository = (*QualityCheckRepo)(nil)
)

// BatchRepo implementación en memoria de BatchRepository.
type BatchRepo struct {
	c conn
}

func (r *BatchRepo) Create(_ context.Context, batch *entity.Batch) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.products[batch.ProductID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := d.batches[batch.ID]; ok {
			return domain.ErrDuplicate
		}
		b := *batch
		b.QualityChecks = nil
		d.batches[b.ID] = b
		return nil
	})
}

func (r *BatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	var out *entity.Batch
	err := r.c.read(func(d *dataset) error {
		if b, ok := d.batches[id]; ok {
			b.QualityChecks = d.checksOf(id)
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *BatchRepo) List(_ context.Context, f repository.BatchFilter) ([]*entity.Batch, error) {
	var out []*entity.Batch
	err := r.c.read(func(d *dataset) error {
		for _, b := range d.batches {
			if f.ProductID != "" && b.ProductID != f.ProductID {
				continue
			}
			if f.Status != "" && b.Status != f.Status {
				continue
			}
			b.QualityChecks = d.checksOf(b.ID)
			out = append(out, &b)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].ID < out[j].ID
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
		return nil
	})
	return out, err
}

func (r *BatchRepo) AdjustQuantity(_ context.Context, id string, delta int) (int, error) {
	var qty int
	err := r.c.write(func(d *dataset) error {
		b, ok := d.batches[id]
		if !ok {
			return domain.ErrNotFound
		}
		if b.Quantity+delta < 0 {
			return domain.ErrInsufficientStock
		}
		b.Quantity += delta
		d.batches[id] = b
		qty = b.Quantity
		return nil
	})
	return qty, err
}

func (d *dataset) checksOf(batchID string) []*entity.QualityCheck {
	var out []*entity.QualityCheck
	for _, qc := range d.checks {
		if qc.BatchID == batchID {
			qc := qc
			out = append(out, &qc)
		}
	}
	sortChecks(out)
	return out
}

func sortChecks(checks []*entity.QualityCheck) {
	sort.SliceStable(checks, func(i, j int) bool { return checks[i].PerformedAt.After(checks[j].PerformedAt) })
}

// QualityCheckRepo implementación en memoria de QualityCheckRepository.
type QualityCheckRepo struct {
	c conn
}

func (r *QualityCheckRepo) Create(_ context.Context, check *entity.QualityCheck) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.batches[check.BatchID]; !ok {
			return domain.ErrNotFound
		}
		d.checks = append(d.checks, *check)
		return nil
	})
}

func (r *QualityCheckRepo) List(_ context.Context, f repository.QualityCheckFilter) ([]*entity.QualityCheck, error) {
	var out []*entity.QualityCheck
	err := r.c.read(func(d *dataset) error {
		for i := len(d.checks) - 1; i >= 0; i-- {
			qc := d.checks[i]
			if f.BatchID != "" && qc.BatchID != f.BatchID {
				continue
			}
			if f.Type != "" && qc.Type != f.Type {
				continue
			}
			if f.Status != "" && qc.Status != f.Status {
				continue
			}
			out = append(out, &qc)
		}
		sortChecks(out)
		return nil
	})
	return out, err
}
