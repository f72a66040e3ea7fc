package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.BrandRepository    = (*BrandRepo)(nil)
	_ repository.TagRepository      = (*TagRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO categories (id, name, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return writeError("insert category", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE categories SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.UpdatedAt)
	if err != nil {
		return writeError("update category", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina la categoría; los productos quedan sin categoría (ON DELETE SET NULL).
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "categories", id)
}

// BrandRepo implementación del puerto BrandRepository sobre PostgreSQL.
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador de persistencia para marcas.
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

func (r *BrandRepo) Create(ctx context.Context, b *entity.Brand) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO brands (id, name, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.Name, b.Description, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return writeError("insert brand", err)
	}
	return nil
}

func (r *BrandRepo) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	var b entity.Brand
	err := r.q.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM brands WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

func (r *BrandRepo) Update(ctx context.Context, b *entity.Brand) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE brands SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		b.ID, b.Name, b.Description, b.UpdatedAt)
	if err != nil {
		return writeError("update brand", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BrandRepo) List(ctx context.Context) ([]*entity.Brand, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()
	var list []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func (r *BrandRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "brands", id)
}

// TagRepo implementación del puerto TagRepository sobre PostgreSQL.
type TagRepo struct {
	q Querier
}

// NewTagRepository construye el adaptador de persistencia para etiquetas.
func NewTagRepository(q Querier) *TagRepo {
	return &TagRepo{q: q}
}

func (r *TagRepo) Create(ctx context.Context, t *entity.Tag) error {
	_, err := r.q.Exec(ctx, `INSERT INTO tags (id, name, created_at) VALUES ($1, $2, $3)`, t.ID, t.Name, t.CreatedAt)
	if err != nil {
		return writeError("insert tag", err)
	}
	return nil
}

func (r *TagRepo) GetByID(ctx context.Context, id string) (*entity.Tag, error) {
	var t entity.Tag
	err := r.q.QueryRow(ctx, `SELECT id, name, created_at FROM tags WHERE id = $1`, id).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &t, nil
}

func (r *TagRepo) Update(ctx context.Context, t *entity.Tag) error {
	cmd, err := r.q.Exec(ctx, `UPDATE tags SET name = $2 WHERE id = $1`, t.ID, t.Name)
	if err != nil {
		return writeError("update tag", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TagRepo) List(ctx context.Context) ([]*entity.Tag, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tag
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Delete elimina la etiqueta; las asociaciones product_tags caen en cascada.
func (r *TagRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "tags", id)
}

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO suppliers (id, name, description, contact, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Name, s.Description, s.Contact, s.Email, s.Phone, s.Address, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return writeError("insert supplier", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx, `
		SELECT id, name, description, contact, email, phone, address, created_at, updated_at
		FROM suppliers WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Description, &s.Contact, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE suppliers SET name = $2, description = $3, contact = $4, email = $5, phone = $6, address = $7, updated_at = $8
		WHERE id = $1`,
		s.ID, s.Name, s.Description, s.Contact, s.Email, s.Phone, s.Address, s.UpdatedAt)
	if err != nil {
		return writeError("update supplier", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List busca en nombre, descripción y contacto (ILIKE) e incluye el número de productos.
func (r *SupplierRepo) List(ctx context.Context, search string) ([]repository.SupplierWithCount, error) {
	query := `
		SELECT s.id, s.name, s.description, s.contact, s.email, s.phone, s.address, s.created_at, s.updated_at,
			(SELECT COUNT(*) FROM products p WHERE p.supplier_id = s.id)
		FROM suppliers s`
	var args []any
	if s := strings.TrimSpace(search); s != "" {
		args = append(args, "%"+s+"%")
		query += ` WHERE s.name ILIKE $1 OR s.description ILIKE $1 OR s.contact ILIKE $1`
	}
	query += ` ORDER BY s.name`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []repository.SupplierWithCount
	for rows.Next() {
		var s repository.SupplierWithCount
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Contact, &s.Email, &s.Phone, &s.Address,
			&s.CreatedAt, &s.UpdatedAt, &s.ProductCount); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "suppliers", id)
}

// deleteByID elimina una fila de una tabla de catálogo; table es siempre una constante del paquete.
func deleteByID(ctx context.Context, q Querier, table, id string) error {
	cmd, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
