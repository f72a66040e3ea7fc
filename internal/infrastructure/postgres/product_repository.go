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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p.sku, p.barcode, p.name, p.description, p.purchase_price, p.sale_price, p.current_price,
	p.quantity, p.min_quantity, p.max_quantity, p.location, p.status, p.average_rating,
	p.category_id, p.brand_id, p.supplier_id, p.created_at, p.updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. La cantidad inicial se registra aparte vía el libro.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, barcode, name, description, purchase_price, sale_price, current_price,
			quantity, min_quantity, max_quantity, location, status, average_rating,
			category_id, brand_id, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.SKU, product.Barcode, product.Name, product.Description,
		product.PurchasePrice, product.SalePrice, product.CurrentPrice,
		product.Quantity, product.MinQuantity, product.MaxQuantity, product.Location, product.Status,
		product.AverageRating, nullIfEmpty(product.CategoryID), nullIfEmpty(product.BrandID),
		nullIfEmpty(product.SupplierID), product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return writeError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID con etiquetas e imágenes.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if err := r.loadRelations(ctx, []*entity.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.sku = $1`, sku))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	if err := r.loadRelations(ctx, []*entity.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// Update actualiza un producto existente. No modifica quantity ni average_rating.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, barcode = $3, name = $4, description = $5, purchase_price = $6,
			sale_price = $7, current_price = $8, min_quantity = $9, max_quantity = $10, location = $11,
			status = $12, category_id = $13, brand_id = $14, supplier_id = $15, updated_at = $16
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.SKU, product.Barcode, product.Name, product.Description, product.PurchasePrice,
		product.SalePrice, product.CurrentPrice, product.MinQuantity, product.MaxQuantity, product.Location,
		product.Status, nullIfEmpty(product.CategoryID), nullIfEmpty(product.BrandID),
		nullIfEmpty(product.SupplierID), product.UpdatedAt,
	)
	if err != nil {
		return writeError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID. Imágenes, etiquetas y reseñas caen en cascada;
// con lotes o transacciones registradas devuelve ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con filtros dinámicos, orden por fecha de creación descendente y paginación.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CategoryID != "" {
		add("p.category_id = $%d", f.CategoryID)
	}
	if f.BrandID != "" {
		add("p.brand_id = $%d", f.BrandID)
	}
	if f.SupplierID != "" {
		add("p.supplier_id = $%d", f.SupplierID)
	}
	if f.Status != "" {
		add("p.status = $%d", f.Status)
	}
	if f.TagID != "" {
		add("EXISTS (SELECT 1 FROM product_tags pt WHERE pt.product_id = p.id AND pt.tag_id = $%d)", f.TagID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(p.name ILIKE $%d OR p.description ILIKE $%d OR p.barcode ILIKE $%d OR p.sku ILIKE $%d)", n, n, n, n))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products p`+where, args...).Scan(&total); err != nil {
		return nil, 0, readError("count products", err)
	}

	query := `SELECT ` + productColumns + ` FROM products p` + where + ` ORDER BY p.created_at DESC, p.id`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	list, err := r.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// AdjustQuantity suma delta con un UPDATE atómico; la fila queda bloqueada hasta el fin de la tx.
func (r *ProductRepo) AdjustQuantity(ctx context.Context, id string, delta int) (int, error) {
	var qty int
	err := r.q.QueryRow(ctx,
		`UPDATE products SET quantity = quantity + $2, updated_at = now()
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
		return 0, fmt.Errorf("adjust product quantity: %w", err)
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrInsufficientStock
}

// LockForUpdate toma el bloqueo de fila; las altas de reseñas concurrentes del mismo producto se serializan.
func (r *ProductRepo) LockForUpdate(ctx context.Context, id string) error {
	var locked string
	err := r.q.QueryRow(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if isNoRows(err) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock product: %w", err)
	}
	return nil
}

// SetAverageRating actualiza la calificación promedio del producto.
func (r *ProductRepo) SetAverageRating(ctx context.Context, id string, avg float64) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET average_rating = $2, updated_at = now() WHERE id = $1`, id, avg)
	if err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetTags reemplaza las etiquetas del producto.
func (r *ProductRepo) SetTags(ctx context.Context, productID string, tagIDs []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_tags WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear product tags: %w", err)
	}
	if len(tagIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO product_tags (product_id, tag_id)
		 SELECT $1, t FROM unnest($2::uuid[]) AS t
		 ON CONFLICT DO NOTHING`,
		productID, tagIDs,
	)
	if err != nil {
		return writeError("insert product tags", err)
	}
	return nil
}

func (r *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, readError("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	if err := readError("list products", rows.Err()); err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadRelations carga etiquetas e imágenes de varios productos con una consulta por relación.
func (r *ProductRepo) loadRelations(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, len(products))
	byID := make(map[string]*entity.Product, len(products))
	for i, p := range products {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	rows, err := r.q.Query(ctx, `
		SELECT pt.product_id, t.id, t.name, t.created_at
		FROM product_tags pt JOIN tags t ON t.id = pt.tag_id
		WHERE pt.product_id = ANY($1)
		ORDER BY t.name`, ids)
	if err != nil {
		return fmt.Errorf("load product tags: %w", err)
	}
	for rows.Next() {
		var productID string
		var t entity.Tag
		if err := rows.Scan(&productID, &t.ID, &t.Name, &t.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("scan product tag: %w", err)
		}
		byID[productID].Tags = append(byID[productID].Tags, &t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	images, err := listImages(ctx, r.q, `WHERE product_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	for _, img := range images {
		byID[img.ProductID].Images = append(byID[img.ProductID].Images, img)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p                               entity.Product
		categoryID, brandID, supplierID *string
	)
	err := row.Scan(
		&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Description, &p.PurchasePrice, &p.SalePrice, &p.CurrentPrice,
		&p.Quantity, &p.MinQuantity, &p.MaxQuantity, &p.Location, &p.Status, &p.AverageRating,
		&categoryID, &brandID, &supplierID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CategoryID = deref(categoryID)
	p.BrandID = deref(brandID)
	p.SupplierID = deref(supplierID)
	return &p, nil
}
