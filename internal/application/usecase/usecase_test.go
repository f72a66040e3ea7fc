package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/application/inventory"
	"github.com/jhoicas/cosmetitrack-api/internal/application/usecase"
	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var actor = usecase.Actor{ID: "00000000-0000-0000-0000-000000000001", Name: "Ana Gómez"}

type env struct {
	repos    *memory.Repositories
	products *usecase.ProductUseCase
	batches  *usecase.BatchUseCase
	checks   *usecase.QualityCheckUseCase
	images   *usecase.ImageUseCase
	reviews  *usecase.ReviewUseCase
	tags     *usecase.TagUseCase
	cats     *usecase.CategoryUseCase
	supp     *usecase.SupplierUseCase
	ledger   *inventory.LedgerUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	return &env{
		repos:    repos,
		products: usecase.NewProductUseCase(repos.Products, repos.TxRunner),
		batches:  usecase.NewBatchUseCase(repos.Batches, repos.TxRunner),
		checks:   usecase.NewQualityCheckUseCase(repos.QualityChecks, repos.Batches),
		images:   usecase.NewImageUseCase(repos.Images, repos.TxRunner),
		reviews:  usecase.NewReviewUseCase(repos.Reviews, repos.TxRunner),
		tags:     usecase.NewTagUseCase(repos.Tags),
		cats:     usecase.NewCategoryUseCase(repos.Categories),
		supp:     usecase.NewSupplierUseCase(repos.Suppliers),
		ledger:   inventory.NewLedgerUseCase(repos.TxRunner, repos.Transactions),
	}
}

func (e *env) createProduct(t *testing.T, sku string, qty, minQty int) *dto.ProductResponse {
	t.Helper()
	p, err := e.products.Create(context.Background(), actor, dto.CreateProductRequest{
		SKU:           sku,
		Name:          "Producto " + sku,
		PurchasePrice: decimal.NewFromInt(10),
		SalePrice:     decimal.NewFromInt(20),
		Quantity:      qty,
		MinQuantity:   minQty,
		MaxQuantity:   200,
	})
	require.NoError(t, err)
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_StockInicialEnLibro(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	p := e.createProduct(t, "CH001", 50, 10)
	assert.Equal(t, 50, p.Quantity)
	assert.True(t, p.CurrentPrice.Equal(decimal.NewFromInt(20)), "current_price por defecto es sale_price")
	assert.Equal(t, entity.ProductStatusActive, p.Status)

	txs, err := e.ledger.ListTransactions(ctx, inventory.ListFilter{ProductID: p.ID})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TransactionTypeIN, txs[0].Type)
	assert.Equal(t, 50, txs[0].Quantity)
	assert.Equal(t, actor.Name, txs[0].PerformedBy)
}

func TestProductCreate_Validaciones(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	cases := map[string]dto.CreateProductRequest{
		"sin sku":       {Name: "X"},
		"estado":        {SKU: "A1", Name: "X", Status: "VENDIDO"},
		"precio":        {SKU: "A2", Name: "X", SalePrice: decimal.NewFromInt(-1)},
		"min mayor max": {SKU: "A3", Name: "X", MinQuantity: 10, MaxQuantity: 5},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.products.Create(ctx, actor, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	e := newEnv(t)
	e.createProduct(t, "RL001", 0, 0)

	_, err := e.products.Create(context.Background(), actor, dto.CreateProductRequest{SKU: "RL001", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_EtiquetaInexistenteRevierte(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.products.Create(ctx, actor, dto.CreateProductRequest{
		SKU: "SA001", Name: "Sérum", Quantity: 5, TagIDs: []string{"no-existe"},
	})
	require.Error(t, err)

	list, err := e.products.List(ctx, dto.ProductFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items, "el producto no debe quedar creado")
}

func TestProductUpdate_NoTocaCantidad(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	p := e.createProduct(t, "CH001", 30, 5)

	name := "Champú reparador"
	minQty := 8
	updated, err := e.products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, MinQuantity: &minQty})
	require.NoError(t, err)
	assert.Equal(t, "Champú reparador", updated.Name)
	assert.Equal(t, 8, updated.MinQuantity)
	assert.Equal(t, 30, updated.Quantity)

	_, err = e.products.Update(ctx, "no-existe", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_FiltrosYPaginacion(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	tag, err := e.tags.Create(ctx, dto.TagRequest{Name: "vegano"})
	require.NoError(t, err)
	_, err = e.products.Create(ctx, actor, dto.CreateProductRequest{SKU: "CH001", Name: "Champú Argán", TagIDs: []string{tag.ID}})
	require.NoError(t, err)
	e.createProduct(t, "RL001", 0, 0)
	e.createProduct(t, "SA001", 0, 0)

	all, err := e.products.List(ctx, dto.ProductFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Page.Total)

	byTag, err := e.products.List(ctx, dto.ProductFilterRequest{TagID: tag.ID})
	require.NoError(t, err)
	require.Len(t, byTag.Items, 1)
	assert.Equal(t, "CH001", byTag.Items[0].SKU)
	require.Len(t, byTag.Items[0].Tags, 1)

	search, err := e.products.List(ctx, dto.ProductFilterRequest{Search: "argán"})
	require.NoError(t, err)
	assert.Len(t, search.Items, 1)

	page, err := e.products.List(ctx, dto.ProductFilterRequest{PageRequest: dto.PageRequest{Limit: 2, Offset: 2}})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Page.Total)

	again, err := e.products.List(ctx, dto.ProductFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, all, again, "listar dos veces sin escrituras devuelve lo mismo")
}

func TestProductDelete_ConMovimientosEsConflicto(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	withStock := e.createProduct(t, "CH001", 10, 0)
	empty := e.createProduct(t, "RL001", 0, 0)

	assert.ErrorIs(t, e.products.Delete(ctx, withStock.ID), domain.ErrConflict)
	require.NoError(t, e.products.Delete(ctx, empty.ID))

	_, err := e.products.GetByID(ctx, empty.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes y controles de calidad
// ──────────────────────────────────────────────────────────────────────────────

func TestBatchCreate_MueveProductoYLote(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	p := e.createProduct(t, "CH001", 20, 5)

	b, err := e.batches.Create(ctx, actor, dto.CreateBatchRequest{
		ProductID:     p.ID,
		BatchNumber:   "L-2024-001",
		Quantity:      15,
		PurchasePrice: decimal.NewFromInt(9),
		QualityChecks: []dto.CreateQualityCheckRequest{{Type: "visual", Status: entity.QualityStatusPassed}},
	})
	require.NoError(t, err)
	assert.Equal(t, 15, b.Quantity)
	require.Len(t, b.QualityChecks, 1)
	assert.Equal(t, actor.Name, b.QualityChecks[0].PerformedBy)

	got, err := e.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 35, got.Quantity)

	txs, err := e.ledger.ListTransactions(ctx, inventory.ListFilter{BatchID: b.ID})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TransactionTypeIN, txs[0].Type)
	assert.Equal(t, "L-2024-001", txs[0].BatchNumber)
}

func TestBatchCreate_ProductoInexistente(t *testing.T) {
	e := newEnv(t)
	_, err := e.batches.Create(context.Background(), actor, dto.CreateBatchRequest{
		ProductID: "no-existe", BatchNumber: "L1", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := e.batches.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestQualityCheckCreate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	p := e.createProduct(t, "CH001", 0, 0)
	b, err := e.batches.Create(ctx, actor, dto.CreateBatchRequest{ProductID: p.ID, BatchNumber: "L1", Quantity: 3})
	require.NoError(t, err)

	qc, err := e.checks.Create(ctx, actor, dto.CreateQualityCheckRequest{BatchID: b.ID, Type: "microbiológico"})
	require.NoError(t, err)
	assert.Equal(t, entity.QualityStatusPending, qc.Status)
	assert.Equal(t, actor.Name, qc.PerformedBy)

	_, err = e.checks.Create(ctx, actor, dto.CreateQualityCheckRequest{BatchID: "no-existe", Type: "visual"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.checks.Create(ctx, actor, dto.CreateQualityCheckRequest{BatchID: b.ID, Type: "visual", Status: "OK"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := e.checks.List(ctx, b.ID, "", entity.QualityStatusPending)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Imágenes y reseñas
// ──────────────────────────────────────────────────────────────────────────────

func TestImageCreate_UnaSolaPrincipal(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	p := e.createProduct(t, "CH001", 0, 0)

	for _, url := range []string{"https://cdn/a.jpg", "https://cdn/b.jpg", "https://cdn/c.jpg"} {
		_, err := e.images.Create(ctx, dto.CreateImageRequest{ProductID: p.ID, URL: url, IsMain: true})
		require.NoError(t, err)
	}
	_, err := e.images.Create(ctx, dto.CreateImageRequest{ProductID: p.ID, URL: "https://cdn/d.jpg"})
	require.NoError(t, err)

	images, err := e.images.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, images, 4)
	mains := 0
	for _, img := range images {
		if img.IsMain {
			mains++
		}
	}
	assert.Equal(t, 1, mains)
	assert.True(t, images[0].IsMain)
	assert.Equal(t, "https://cdn/c.jpg", images[0].URL)
}

func TestReviewCreate_RecalculaPromedio(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	p := e.createProduct(t, "CH001", 0, 0)

	for _, rating := range []int{4, 5} {
		_, err := e.reviews.Create(ctx, dto.CreateReviewRequest{ProductID: p.ID, Rating: rating, CustomerName: "Lucía"})
		require.NoError(t, err)
	}

	got, err := e.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, got.AverageRating, 1e-9)

	list, err := e.reviews.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = e.reviews.Create(ctx, dto.CreateReviewRequest{ProductID: p.ID, Rating: 6})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.reviews.Create(ctx, dto.CreateReviewRequest{ProductID: "no-existe", Rating: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewCreate_ConcurrentesNoPierdenPromedio(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	p := e.createProduct(t, "RL003", 0, 0)

	// 10 reseñas de 1 y 10 de 5: el promedio final debe ser 3 exacto.
	var g errgroup.Group
	for i := 0; i < 20; i++ {
		rating := 1
		if i%2 == 0 {
			rating = 5
		}
		g.Go(func() error {
			_, err := e.reviews.Create(ctx, dto.CreateReviewRequest{ProductID: p.ID, Rating: rating})
			return err
		})
	}
	require.NoError(t, g.Wait())

	got, err := e.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got.AverageRating, 1e-9)

	list, err := e.reviews.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}

func TestListados_IDMalFormadoEsEntradaInvalida(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.reviews.ListByProduct(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.images.ListByProduct(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.batches.List(ctx, "abc", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.checks.List(ctx, "abc", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.products.List(ctx, dto.ProductFilterRequest{CategoryID: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Un UUID válido sin coincidencias es una lista vacía.
	list, err := e.reviews.ListByProduct(ctx, "8f14e45f-ceea-4e7a-9f1b-2c3d4e5f6a7b")
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_NombreDuplicado(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.cats.Create(ctx, dto.CategoryRequest{Name: "Cuidado capilar"})
	require.NoError(t, err)
	_, err = e.cats.Create(ctx, dto.CategoryRequest{Name: "cuidado capilar"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = e.cats.Create(ctx, dto.CategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplierList_ConteoDeProductos(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	s, err := e.supp.Create(ctx, dto.SupplierRequest{Name: "Beauty Supplies Co.", Contact: "Marta"})
	require.NoError(t, err)
	_, err = e.supp.Create(ctx, dto.SupplierRequest{Name: "Organic Labs"})
	require.NoError(t, err)
	_, err = e.products.Create(ctx, actor, dto.CreateProductRequest{SKU: "CH001", Name: "Champú", SupplierID: s.ID})
	require.NoError(t, err)

	list, err := e.supp.List(ctx, "marta")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].ProductCount)

	all, err := e.supp.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Beauty Supplies Co.", all[0].Name)
}
