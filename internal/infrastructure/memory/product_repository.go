package memory

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	c conn
}

// Create persiste un producto con sus etiquetas (Product.Tags) si las trae.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		if d.skuTaken(product.SKU, "") {
			return domain.ErrDuplicate
		}
		if err := d.checkProductRefs(product); err != nil {
			return err
		}
		d.products[product.ID] = stripProduct(product)
		return nil
	})
}

// GetByID obtiene un producto con etiquetas e imágenes.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.c.read(func(d *dataset) error {
		p, ok := d.products[id]
		if ok {
			out = d.hydrate(p)
		}
		return nil
	})
	return out, err
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.c.read(func(d *dataset) error {
		for _, p := range d.products {
			if p.SKU == sku {
				out = d.hydrate(p)
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Update actualiza los campos editables; conserva cantidad y calificación almacenadas.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.c.write(func(d *dataset) error {
		current, ok := d.products[product.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if d.skuTaken(product.SKU, product.ID) {
			return domain.ErrDuplicate
		}
		if err := d.checkProductRefs(product); err != nil {
			return err
		}
		next := stripProduct(product)
		next.Quantity = current.Quantity
		next.AverageRating = current.AverageRating
		next.CreatedAt = current.CreatedAt
		d.products[product.ID] = next
		return nil
	})
}

// Delete elimina el producto con sus imágenes, etiquetas y reseñas.
// ErrConflict si tiene lotes o transacciones.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, b := range d.batches {
			if b.ProductID == id {
				return domain.ErrConflict
			}
		}
		for _, t := range d.transactions {
			if t.ProductID == id {
				return domain.ErrConflict
			}
		}
		delete(d.products, id)
		delete(d.productTags, id)
		d.images = slices.DeleteFunc(d.images, func(i entity.ProductImage) bool { return i.ProductID == id })
		d.reviews = slices.DeleteFunc(d.reviews, func(rv entity.Review) bool { return rv.ProductID == id })
		return nil
	})
}

// List filtra, ordena por fecha de creación descendente y pagina.
func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var (
		out   []*entity.Product
		total int
	)
	err := r.c.read(func(d *dataset) error {
		search := strings.ToLower(strings.TrimSpace(f.Search))
		var matched []entity.Product
		for _, p := range d.products {
			if f.CategoryID != "" && p.CategoryID != f.CategoryID {
				continue
			}
			if f.BrandID != "" && p.BrandID != f.BrandID {
				continue
			}
			if f.SupplierID != "" && p.SupplierID != f.SupplierID {
				continue
			}
			if f.Status != "" && p.Status != f.Status {
				continue
			}
			if f.TagID != "" && !slices.Contains(d.productTags[p.ID], f.TagID) {
				continue
			}
			if search != "" && !matchesSearch(search, p.Name, p.Description, p.Barcode, p.SKU) {
				continue
			}
			matched = append(matched, p)
		}
		sort.Slice(matched, func(i, j int) bool {
			if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
				return matched[i].ID < matched[j].ID
			}
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
		total = len(matched)
		for _, p := range paginate(matched, f.Limit, f.Offset) {
			out = append(out, d.hydrate(p))
		}
		return nil
	})
	return out, total, err
}

// AdjustQuantity suma delta; rechaza cantidades negativas.
func (r *ProductRepo) AdjustQuantity(_ context.Context, id string, delta int) (int, error) {
	var qty int
	err := r.c.write(func(d *dataset) error {
		p, ok := d.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		if p.Quantity+delta < 0 {
			return domain.ErrInsufficientStock
		}
		p.Quantity += delta
		d.products[id] = p
		qty = p.Quantity
		return nil
	})
	return qty, err
}

// LockForUpdate solo verifica la existencia; el TxRunner en memoria ya serializa las transacciones.
func (r *ProductRepo) LockForUpdate(_ context.Context, id string) error {
	return r.c.read(func(d *dataset) error {
		if _, ok := d.products[id]; !ok {
			return domain.ErrNotFound
		}
		return nil
	})
}

// SetAverageRating actualiza la calificación promedio.
func (r *ProductRepo) SetAverageRating(_ context.Context, id string, avg float64) error {
	return r.c.write(func(d *dataset) error {
		p, ok := d.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.AverageRating = avg
		d.products[id] = p
		return nil
	})
}

// SetTags reemplaza las etiquetas del producto.
func (r *ProductRepo) SetTags(_ context.Context, productID string, tagIDs []string) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.products[productID]; !ok {
			return domain.ErrNotFound
		}
		ids := make([]string, 0, len(tagIDs))
		for _, id := range tagIDs {
			if _, ok := d.tags[id]; !ok {
				return domain.ErrNotFound
			}
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
		d.productTags[productID] = ids
		return nil
	})
}

func (d *dataset) skuTaken(sku, exceptID string) bool {
	for _, p := range d.products {
		if p.SKU == sku && p.ID != exceptID {
			return true
		}
	}
	return false
}

func (d *dataset) checkProductRefs(p *entity.Product) error {
	if p.CategoryID != "" {
		if _, ok := d.categories[p.CategoryID]; !ok {
			return domain.ErrNotFound
		}
	}
	if p.BrandID != "" {
		if _, ok := d.brands[p.BrandID]; !ok {
			return domain.ErrNotFound
		}
	}
	if p.SupplierID != "" {
		if _, ok := d.suppliers[p.SupplierID]; !ok {
			return domain.ErrNotFound
		}
	}
	return nil
}

// hydrate devuelve una copia del producto con etiquetas e imágenes.
func (d *dataset) hydrate(p entity.Product) *entity.Product {
	out := p
	out.Tags = nil
	for _, id := range d.productTags[p.ID] {
		if t, ok := d.tags[id]; ok {
			t := t
			out.Tags = append(out.Tags, &t)
		}
	}
	sort.Slice(out.Tags, func(i, j int) bool { return out.Tags[i].Name < out.Tags[j].Name })
	out.Images = d.imagesOf(p.ID)
	return &out
}

func stripProduct(p *entity.Product) entity.Product {
	out := *p
	out.Tags = nil
	out.Images = nil
	return out
}

func matchesSearch(search string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
