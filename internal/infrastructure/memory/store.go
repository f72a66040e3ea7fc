// Package memory implementa los puertos de persistencia en memoria.
// Se usa en pruebas y en ejecuciones locales con APP_STORAGE=memory.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/cosmetitrack-api/internal/application/inventory"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	data *dataset
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

type dataset struct {
	products     map[string]entity.Product
	productTags  map[string][]string // productID -> tagIDs
	categories   map[string]entity.Category
	brands       map[string]entity.Brand
	tags         map[string]entity.Tag
	suppliers    map[string]entity.Supplier
	images       []entity.ProductImage
	batches      map[string]entity.Batch
	checks       []entity.QualityCheck
	transactions []entity.InventoryTransaction // orden de inserción
	reviews      []entity.Review
	users        map[string]entity.User
}

func newDataset() *dataset {
	return &dataset{
		products:    map[string]entity.Product{},
		productTags: map[string][]string{},
		categories:  map[string]entity.Category{},
		brands:      map[string]entity.Brand{},
		tags:        map[string]entity.Tag{},
		suppliers:   map[string]entity.Supplier{},
		batches:     map[string]entity.Batch{},
		users:       map[string]entity.User{},
	}
}

// clone copia profunda suficiente para aislar una transacción: las entidades se guardan por valor.
func (d *dataset) clone() *dataset {
	c := &dataset{
		products:     maps.Clone(d.products),
		productTags:  make(map[string][]string, len(d.productTags)),
		categories:   maps.Clone(d.categories),
		brands:       maps.Clone(d.brands),
		tags:         maps.Clone(d.tags),
		suppliers:    maps.Clone(d.suppliers),
		images:       slices.Clone(d.images),
		batches:      maps.Clone(d.batches),
		checks:       slices.Clone(d.checks),
		transactions: slices.Clone(d.transactions),
		reviews:      slices.Clone(d.reviews),
		users:        maps.Clone(d.users),
	}
	for k, v := range d.productTags {
		c.productTags[k] = slices.Clone(v)
	}
	return c
}

// conn acceso al dataset: fuera de transacción toma el lock del Store; dentro usa la copia de la tx,
// cuyo lock ya tiene TxRunner.
type conn struct {
	store *Store
	tx    *dataset
}

func (c conn) read(fn func(d *dataset) error) error {
	if c.tx != nil {
		return fn(c.tx)
	}
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	return fn(c.store.data)
}

func (c conn) write(fn func(d *dataset) error) error {
	if c.tx != nil {
		return fn(c.tx)
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	work := c.store.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	c.store.data = work
	return nil
}

// TxRunner ejecuta callbacks sobre una copia del dataset y la publica solo si fn termina sin error.
// Las transacciones se serializan con el lock de escritura del Store.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repositorios atados a la copia; error = Rollback (la copia se descarta).
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	work := r.store.data.clone()
	c := conn{store: r.store, tx: work}
	repos := inventory.TxRepos{
		Products:      &ProductRepo{c: c},
		Batches:       &BatchRepo{c: c},
		Transactions:  &TransactionRepo{c: c},
		Reviews:       &ReviewRepo{c: c},
		Images:        &ProductImageRepo{c: c},
		QualityChecks: &QualityCheckRepo{c: c},
	}
	if err := fn(repos); err != nil {
		return err
	}
	r.store.data = work
	return nil
}

// Repositories agrupa los repositorios en memoria sobre un mismo Store.
type Repositories struct {
	Products      *ProductRepo
	Categories    *CategoryRepo
	Brands        *BrandRepo
	Tags          *TagRepo
	Suppliers     *SupplierRepo
	Images        *ProductImageRepo
	Batches       *BatchRepo
	QualityChecks *QualityCheckRepo
	Transactions  *TransactionRepo
	Reviews       *ReviewRepo
	Users         *UserRepo
	Analytics     *AnalyticsRepo
	TxRunner      *TxRunner
}

// NewRepositories construye todos los repositorios sobre store.
func NewRepositories(store *Store) *Repositories {
	c := conn{store: store}
	return &Repositories{
		Products:      &ProductRepo{c: c},
		Categories:    &CategoryRepo{c: c},
		Brands:        &BrandRepo{c: c},
		Tags:          &TagRepo{c: c},
		Suppliers:     &SupplierRepo{c: c},
		Images:        &ProductImageRepo{c: c},
		Batches:       &BatchRepo{c: c},
		QualityChecks: &QualityCheckRepo{c: c},
		Transactions:  &TransactionRepo{c: c},
		Reviews:       &ReviewRepo{c: c},
		Users:         &UserRepo{c: c},
		Analytics:     &AnalyticsRepo{c: c},
		TxRunner:      NewTxRunner(store),
	}
}
