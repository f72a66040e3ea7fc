package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

var (
	_ repository.BatchRepository        = (*BatchRepo)(nil)
	_ repository.QualityCheckRepository = (*QualityCheckRepo)(nil)
)

const batchColumns = `id, product_id, batch_number, quantity, purchase_price, expiry_date, manufacturing_date,
	status, created_at, updated_at`

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de persistencia para lotes.
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un lote. La cantidad recibida se registra aparte vía el libro.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO batches (id, product_id, batch_number, quantity, purchase_price, expiry_date,
			manufacturing_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.ProductID, b.BatchNumber, b.Quantity, b.PurchasePrice, b.ExpiryDate,
		b.ManufacturingDate, b.Status, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return writeError("insert batch", err)
	}
	return nil
}

// GetByID obtiene un lote con sus controles de calidad.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	if err := r.loadChecks(ctx, []*entity.Batch{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// List lista lotes por producto y estado, más recientes primero.
func (r *BatchRepo) List(ctx context.Context, f repository.BatchFilter) ([]*entity.Batch, error) {
	var (
		conds []string
		args  []any
	)
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		conds = append(conds, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	query := `SELECT ` + batchColumns + ` FROM batches`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, readError("list batches", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	if err := readError("list batches", rows.Err()); err != nil {
		return nil, err
	}
	if err := r.loadChecks(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// AdjustQuantity suma delta con un UPDATE atómico; rechaza cantidades negativas.
func (r *BatchRepo) AdjustQuantity(ctx context.Context, id string, delta int) (int, error) {
	var qty int
	err := r.q.QueryRow(ctx,
		`UPDATE batches SET quantity = quantity + $2, updated_at = now()
		 WHERE id = $1 AND quantity + $2 >= 0
		 RETURNING quantity`,
		id, delta,
	).Scan(&qty)
	if err == nil {
		return qty, nil
	}
	if isInvalidText(err) {
		return 0, domain.ErrNotFound
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("adjust batch quantity: %w", err)
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM batches WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check batch: %w", err)
	}
	if !exists {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrInsufficientStock
}

func (r *BatchRepo) loadChecks(ctx context.Context, batches []*entity.Batch) error {
	if len(batches) == 0 {
		return nil
	}
	ids := make([]string, len(batches))
	byID := make(map[string]*entity.Batch, len(batches))
	for i, b := range batches {
		ids[i] = b.ID
		byID[b.ID] = b
	}
	checks, err := listChecks(ctx, r.q, `WHERE batch_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	for _, qc := range checks {
		byID[qc.BatchID].QualityChecks = append(byID[qc.BatchID].QualityChecks, qc)
	}
	return nil
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(&b.ID, &b.ProductID, &b.BatchNumber, &b.Quantity, &b.PurchasePrice, &b.ExpiryDate,
		&b.ManufacturingDate, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// QualityCheckRepo implementación del puerto QualityCheckRepository sobre PostgreSQL.
type QualityCheckRepo struct {
	q Querier
}

// NewQualityCheckRepository construye el adaptador de persistencia para controles de calidad.
func NewQualityCheckRepository(q Querier) *QualityCheckRepo {
	return &QualityCheckRepo{q: q}
}

func (r *QualityCheckRepo) Create(ctx context.Context, qc *entity.QualityCheck) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO quality_checks (id, batch_id, type, status, notes, performed_by, performed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		qc.ID, qc.BatchID, qc.Type, qc.Status, qc.Notes, qc.PerformedBy, qc.PerformedAt)
	if err != nil {
		return writeError("insert quality check", err)
	}
	return nil
}

// List filtra por lote, tipo y estado; más recientes primero.
func (r *QualityCheckRepo) List(ctx context.Context, f repository.QualityCheckFilter) ([]*entity.QualityCheck, error) {
	var (
		conds []string
		args  []any
	)
	if f.BatchID != "" {
		args = append(args, f.BatchID)
		conds = append(conds, fmt.Sprintf("batch_id = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	checks, err := listChecks(ctx, r.q, where, args...)
	if err != nil && isInvalidText(err) {
		return nil, nil
	}
	return checks, err
}

func listChecks(ctx context.Context, q Querier, where string, args ...any) ([]*entity.QualityCheck, error) {
	rows, err := q.Query(ctx, `
		SELECT id, batch_id, type, status, notes, performed_by, performed_at
		FROM quality_checks `+where+`
		ORDER BY performed_at DESC, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list quality checks: %w", err)
	}
	defer rows.Close()
	var list []*entity.QualityCheck
	for rows.Next() {
		var qc entity.QualityCheck
		if err := rows.Scan(&qc.ID, &qc.BatchID, &qc.Type, &qc.Status, &qc.Notes, &qc.PerformedBy, &qc.PerformedAt); err != nil {
			return nil, fmt.Errorf("scan quality check: %w", err)
		}
		list = append(list, &qc)
	}
	return list, rows.Err()
}
