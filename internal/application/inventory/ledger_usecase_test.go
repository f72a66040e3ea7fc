package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cosmetitrack-api/internal/application/inventory"
	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func seedProduct(t *testing.T, repos *memory.Repositories, sku string, qty, minQty, maxQty int) *entity.Product {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	p := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           sku,
		Name:          "Producto " + sku,
		PurchasePrice: decimal.NewFromInt(10),
		SalePrice:     decimal.NewFromInt(20),
		CurrentPrice:  decimal.NewFromInt(20),
		MinQuantity:   minQty,
		MaxQuantity:   maxQty,
		Status:        entity.ProductStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, repos.Products.Create(ctx, p))
	if qty > 0 {
		_, err := repos.Products.AdjustQuantity(ctx, p.ID, qty)
		require.NoError(t, err)
		p.Quantity = qty
	}
	return p
}

func seedBatch(t *testing.T, repos *memory.Repositories, productID string, qty int) *entity.Batch {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	b := &entity.Batch{
		ID:          uuid.New().String(),
		ProductID:   productID,
		BatchNumber: "L-" + productID[:4],
		Status:      entity.BatchStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repos.Batches.Create(ctx, b))
	_, err := repos.Batches.AdjustQuantity(ctx, b.ID, qty)
	require.NoError(t, err)
	return b
}

func quantityOf(t *testing.T, repos *memory.Repositories, id string) int {
	t.Helper()
	p, err := repos.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func newLedger() (*memory.Repositories, *inventory.LedgerUseCase) {
	repos := memory.NewRepositories(memory.NewStore())
	return repos, inventory.NewLedgerUseCase(repos.TxRunner, repos.Transactions)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordTransaction
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordTransaction_InYOut(t *testing.T) {
	ctx := context.Background()
	repos, ledger := newLedger()
	p := seedProduct(t, repos, "CH001", 50, 10, 100)

	in, err := ledger.RecordTransaction(ctx, inventory.RecordInput{
		ProductID: p.ID, Type: entity.TransactionTypeIN, Quantity: 7, PerformedBy: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", in.PerformedBy)
	assert.Equal(t, 57, quantityOf(t, repos, p.ID))

	out, err := ledger.RecordTransaction(ctx, inventory.RecordInput{
		ProductID: p.ID, Type: entity.TransactionTypeOUT, Quantity: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, inventory.UnknownPerformer, out.PerformedBy)
	assert.Equal(t, 45, quantityOf(t, repos, p.ID))

	_, err = ledger.RecordTransaction(ctx, inventory.RecordInput{
		ProductID: p.ID, Type: entity.TransactionTypeADJUSTMENT, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, quantityOf(t, repos, p.ID), "ADJUSTMENT resta")

	list, err := ledger.ListTransactions(ctx, inventory.ListFilter{ProductID: p.ID})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, entity.TransactionTypeADJUSTMENT, list[0].Type, "orden descendente por fecha")
	assert.Equal(t, "CH001", list[0].ProductSKU)
}

func TestRecordTransaction_Validaciones(t *testing.T) {
	ctx := context.Background()
	repos, ledger := newLedger()
	p := seedProduct(t, repos, "CH001", 10, 0, 0)
	other := seedProduct(t, repos, "RL001", 10, 0, 0)
	b := seedBatch(t, repos, other.ID, 5)

	cases := []struct {
		name string
		in   inventory.RecordInput
		want error
	}{
		{"cantidad cero", inventory.RecordInput{ProductID: p.ID, Type: entity.TransactionTypeIN, Quantity: 0}, domain.ErrInvalidInput},
		{"cantidad negativa", inventory.RecordInput{ProductID: p.ID, Type: entity.TransactionTypeOUT, Quantity: -3}, domain.ErrInvalidInput},
		{"tipo desconocido", inventory.RecordInput{ProductID: p.ID, Type: "STOCK_IN", Quantity: 1}, domain.ErrInvalidInput},
		{"producto inexistente", inventory.RecordInput{ProductID: uuid.New().String(), Type: entity.TransactionTypeIN, Quantity: 1}, domain.ErrNotFound},
		{"lote inexistente", inventory.RecordInput{ProductID: p.ID, BatchID: uuid.New().String(), Type: entity.TransactionTypeIN, Quantity: 1}, domain.ErrNotFound},
		{"lote de otro producto", inventory.RecordInput{ProductID: p.ID, BatchID: b.ID, Type: entity.TransactionTypeIN, Quantity: 1}, domain.ErrInvalidInput},
		{"stock insuficiente", inventory.RecordInput{ProductID: p.ID, Type: entity.TransactionTypeOUT, Quantity: 11}, domain.ErrInsufficientStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.RecordTransaction(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.Equal(t, 10, quantityOf(t, repos, p.ID))
	list, err := ledger.ListTransactions(ctx, inventory.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "ninguna transacción fallida queda registrada")
}

func TestRecordTransaction_ConLoteMueveAmbos(t *testing.T) {
	ctx := context.Background()
	repos, ledger := newLedger()
	p := seedProduct(t, repos, "CH001", 50, 0, 0)
	b := seedBatch(t, repos, p.ID, 20)

	_, err := ledger.RecordTransaction(ctx, inventory.RecordInput{
		ProductID: p.ID, BatchID: b.ID, Type: entity.TransactionTypeOUT, Quantity: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, 42, quantityOf(t, repos, p.ID))
	got, err := repos.Batches.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Quantity)
}

func TestRecordTransaction_FalloDelLoteRevierteProducto(t *testing.T) {
	ctx := context.Background()
	repos, ledger := newLedger()
	p := seedProduct(t, repos, "CH001", 50, 0, 0)
	b := seedBatch(t, repos, p.ID, 5)

	_, err := ledger.RecordTransaction(ctx, inventory.RecordInput{
		ProductID: p.ID, BatchID: b.ID, Type: entity.TransactionTypeOUT, Quantity: 10,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 50, quantityOf(t, repos, p.ID), "la cantidad del producto vuelve a su valor")
	got, err := repos.Batches.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)

	list, err := ledger.ListTransactions(ctx, inventory.ListFilter{ProductID: p.ID})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListTransactions_FiltrosInvalidos(t *testing.T) {
	_, ledger := newLedger()
	from := time.Now()
	to := from.Add(-time.Hour)

	_, err := ledger.ListTransactions(context.Background(), inventory.ListFilter{Type: "VENTA"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = ledger.ListTransactions(context.Background(), inventory.ListFilter{From: &from, To: &to})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = ledger.ListTransactions(context.Background(), inventory.ListFilter{ProductID: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = ledger.ListTransactions(context.Background(), inventory.ListFilter{BatchID: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateReplenishmentList(t *testing.T) {
	ctx := context.Background()
	repos, ledger := newLedger()
	critical := seedProduct(t, repos, "CH001", 40, 10, 100)
	slow := seedProduct(t, repos, "RL001", 8, 10, 0)
	seedProduct(t, repos, "SA001", 50, 10, 100)

	_, err := ledger.RecordTransaction(ctx, inventory.RecordInput{ProductID: critical.ID, Type: entity.TransactionTypeOUT, Quantity: 35})
	require.NoError(t, err)

	uc := inventory.NewReplenishmentUseCase(repos.Analytics, repos.Transactions)
	list, err := uc.GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, critical.ID, list[0].ProductID, "el producto con consumo se agota antes")
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 35.0, list[0].AverageDailyConsumption)
	assert.Equal(t, 240, list[0].SuggestedQuantity, "nunca por debajo del punto de reorden (245)")
	require.NotNil(t, list[0].DaysUntilStockout)
	assert.Equal(t, 0, *list[0].DaysUntilStockout)

	assert.Equal(t, slow.ID, list[1].ProductID)
	assert.Nil(t, list[1].DaysUntilStockout)
	assert.Equal(t, 7, list[1].SuggestedQuantity, "sin max_quantity: 1.5 × min")
}
