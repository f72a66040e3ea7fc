package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo libro de inventario sobre PostgreSQL: solo INSERT y SELECT.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

func (r *TransactionRepo) Create(ctx context.Context, t *entity.InventoryTransaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_transactions (id, product_id, batch_id, type, quantity, notes,
			performed_by, performed_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.ProductID, nullIfEmpty(t.BatchID), t.Type, t.Quantity, t.Notes,
		t.PerformedBy, nullIfEmpty(t.PerformedByID), t.CreatedAt)
	if err != nil {
		return writeError("insert inventory transaction", err)
	}
	return nil
}

// List devuelve las transacciones con nombre y SKU del producto y número de lote, más recientes primero.
func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]repository.TransactionView, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		add("t.product_id = $%d", f.ProductID)
	}
	if f.BatchID != "" {
		add("t.batch_id = $%d", f.BatchID)
	}
	if f.Type != "" {
		add("t.type = $%d", f.Type)
	}
	if f.From != nil {
		add("t.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("t.created_at < $%d", *f.To)
	}

	query := `
		SELECT t.id, t.product_id, t.batch_id, t.type, t.quantity, t.notes, t.performed_by,
			t.performed_by_id, t.created_at, p.name, p.sku, COALESCE(b.batch_number, '')
		FROM inventory_transactions t
		JOIN products p ON p.id = t.product_id
		LEFT JOIN batches b ON b.id = t.batch_id`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY t.created_at DESC, t.id"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, readError("list inventory transactions", err)
	}
	defer rows.Close()
	var list []repository.TransactionView
	for rows.Next() {
		var (
			v                      repository.TransactionView
			batchID, performedByID *string
		)
		if err := rows.Scan(&v.ID, &v.ProductID, &batchID, &v.Type, &v.Quantity, &v.Notes, &v.PerformedBy,
			&performedByID, &v.CreatedAt, &v.ProductName, &v.ProductSKU, &v.BatchNumber); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		v.BatchID = deref(batchID)
		v.PerformedByID = deref(performedByID)
		list = append(list, v)
	}
	if err := readError("list inventory transactions", rows.Err()); err != nil {
		return nil, err
	}
	return list, nil
}
