package memory

import (
	"context"
	"sort"
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

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	c conn
}

func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	return r.c.write(func(d *dataset) error {
		for _, c := range d.categories {
			if strings.EqualFold(c.Name, category.Name) {
				return domain.ErrDuplicate
			}
		}
		d.categories[category.ID] = *category
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.c.read(func(d *dataset) error {
		if c, ok := d.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.categories[category.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, c := range d.categories {
			if c.ID != category.ID && strings.EqualFold(c.Name, category.Name) {
				return domain.ErrDuplicate
			}
		}
		d.categories[category.ID] = *category
		return nil
	})
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.c.read(func(d *dataset) error {
		for _, c := range d.categories {
			c := c
			out = append(out, &c)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

// Delete elimina la categoría; los productos quedan sin categoría.
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.categories[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.categories, id)
		for pid, p := range d.products {
			if p.CategoryID == id {
				p.CategoryID = ""
				d.products[pid] = p
			}
		}
		return nil
	})
}

// BrandRepo implementación en memoria de BrandRepository.
type BrandRepo struct {
	c conn
}

func (r *BrandRepo) Create(_ context.Context, brand *entity.Brand) error {
	return r.c.write(func(d *dataset) error {
		for _, b := range d.brands {
			if strings.EqualFold(b.Name, brand.Name) {
				return domain.ErrDuplicate
			}
		}
		d.brands[brand.ID] = *brand
		return nil
	})
}

func (r *BrandRepo) GetByID(_ context.Context, id string) (*entity.Brand, error) {
	var out *entity.Brand
	err := r.c.read(func(d *dataset) error {
		if b, ok := d.brands[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *BrandRepo) Update(_ context.Context, brand *entity.Brand) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.brands[brand.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, b := range d.brands {
			if b.ID != brand.ID && strings.EqualFold(b.Name, brand.Name) {
				return domain.ErrDuplicate
			}
		}
		d.brands[brand.ID] = *brand
		return nil
	})
}

func (r *BrandRepo) List(_ context.Context) ([]*entity.Brand, error) {
	var out []*entity.Brand
	err := r.c.read(func(d *dataset) error {
		for _, b := range d.brands {
			b := b
			out = append(out, &b)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func (r *BrandRepo) Delete(_ context.Context, id string) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.brands[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.brands, id)
		for pid, p := range d.products {
			if p.BrandID == id {
				p.BrandID = ""
				d.products[pid] = p
			}
		}
		return nil
	})
}

// TagRepo implementación en memoria de TagRepository.
type TagRepo struct {
	c conn
}

func (r *TagRepo) Create(_ context.Context, tag *entity.Tag) error {
	return r.c.write(func(d *dataset) error {
		for _, t := range d.tags {
			if strings.EqualFold(t.Name, tag.Name) {
				return domain.ErrDuplicate
			}
		}
		d.tags[tag.ID] = *tag
		return nil
	})
}

func (r *TagRepo) GetByID(_ context.Context, id string) (*entity.Tag, error) {
	var out *entity.Tag
	err := r.c.read(func(d *dataset) error {
		if t, ok := d.tags[id]; ok {
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *TagRepo) Update(_ context.Context, tag *entity.Tag) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.tags[tag.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, t := range d.tags {
			if t.ID != tag.ID && strings.EqualFold(t.Name, tag.Name) {
				return domain.ErrDuplicate
			}
		}
		d.tags[tag.ID] = *tag
		return nil
	})
}

func (r *TagRepo) List(_ context.Context) ([]*entity.Tag, error) {
	var out []*entity.Tag
	err := r.c.read(func(d *dataset) error {
		for _, t := range d.tags {
			t := t
			out = append(out, &t)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

// Delete elimina la etiqueta y sus asociaciones con productos.
func (r *TagRepo) Delete(_ context.Context, id string) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.tags[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.tags, id)
		for pid, ids := range d.productTags {
			kept := ids[:0]
			for _, tid := range ids {
				if tid != id {
					kept = append(kept, tid)
				}
			}
			d.productTags[pid] = kept
		}
		return nil
	})
}

// SupplierRepo implementación en memoria de SupplierRepository.
type SupplierRepo struct {
	c conn
}

func (r *SupplierRepo) Create(_ context.Context, supplier *entity.Supplier) error {
	return r.c.write(func(d *dataset) error {
		for _, s := range d.suppliers {
			if strings.EqualFold(s.Name, supplier.Name) {
				return domain.ErrDuplicate
			}
		}
		d.suppliers[supplier.ID] = *supplier
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.c.read(func(d *dataset) error {
		if s, ok := d.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) Update(_ context.Context, supplier *entity.Supplier) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.suppliers[supplier.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, s := range d.suppliers {
			if s.ID != supplier.ID && strings.EqualFold(s.Name, supplier.Name) {
				return domain.ErrDuplicate
			}
		}
		d.suppliers[supplier.ID] = *supplier
		return nil
	})
}

func (r *SupplierRepo) List(_ context.Context, search string) ([]repository.SupplierWithCount, error) {
	var out []repository.SupplierWithCount
	err := r.c.read(func(d *dataset) error {
		search = strings.ToLower(strings.TrimSpace(search))
		counts := map[string]int{}
		for _, p := range d.products {
			if p.SupplierID != "" {
				counts[p.SupplierID]++
			}
		}
		for _, s := range d.suppliers {
			if search != "" && !matchesSearch(search, s.Name, s.Description, s.Contact) {
				continue
			}
			out = append(out, repository.SupplierWithCount{Supplier: s, ProductCount: counts[s.ID]})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	return r.c.write(func(d *dataset) error {
		if _, ok := d.suppliers[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.suppliers, id)
		for pid, p := range d.products {
			if p.SupplierID == id {
				p.SupplierID = ""
				d.products[pid] = p
			}
		}
		return nil
	})
}
