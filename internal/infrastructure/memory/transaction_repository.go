package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación en memoria del libro de inventario.
type TransactionRepo struct {
	c conn
}

func (r *TransactionRepo) Create(_ context.Context, tx *entity.InventoryTransaction) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.products[tx.ProductID]; !ok {
			return domain.ErrNotFound
		}
		if tx.BatchID != "" {
			if _, ok := d.batches[tx.BatchID]; !ok {
				return domain.ErrNotFound
			}
		}
		d.transactions = append(d.transactions, *tx)
		return nil
	})
}

// List recorre en orden inverso de inserción para que a igual fecha gane la más reciente.
func (r *TransactionRepo) List(_ context.Context, f repository.TransactionFilter) ([]repository.TransactionView, error) {
	var out []repository.TransactionView
	err := r.c.read(func(d *dataset) error {
		for i := len(d.transactions) - 1; i >= 0; i-- {
			t := d.transactions[i]
			if f.ProductID != "" && t.ProductID != f.ProductID {
				continue
			}
			if f.BatchID != "" && t.BatchID != f.BatchID {
				continue
			}
			if f.Type != "" && t.Type != f.Type {
				continue
			}
			if f.From != nil && t.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && !t.CreatedAt.Before(*f.To) {
				continue
			}
			v := repository.TransactionView{InventoryTransaction: t}
			if p, ok := d.products[t.ProductID]; ok {
				v.ProductName = p.Name
				v.ProductSKU = p.SKU
			}
			if b, ok := d.batches[t.BatchID]; ok {
				v.BatchNumber = b.BatchNumber
			}
			out = append(out, v)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		if f.Limit > 0 && len(out) > f.Limit {
			out = out[:f.Limit]
		}
		return nil
	})
	return out, err
}
