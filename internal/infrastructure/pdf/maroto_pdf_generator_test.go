package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/infrastructure/pdf"
)

func TestGenerateInventoryReport(t *testing.T) {
	g := pdf.NewMarotoReportGenerator("CosmetiTrack")
	stats := &dto.DashboardStatsDTO{
		TotalProducts: 2,
		LowStockProducts: []dto.ProductSummaryDTO{
			{ID: "p1", SKU: "CH001", Name: "Champú Argán", Quantity: 5, MinQuantity: 10, CurrentPrice: decimal.NewFromFloat(25.5)},
		},
		RecentTransactions: []dto.TransactionResponse{
			{ProductName: "Champú Argán", Type: "OUT", Quantity: 45, PerformedBy: "Ana", CreatedAt: time.Now()},
		},
		StockValue: decimal.NewFromInt(1234),
	}

	out, err := g.GenerateInventoryReport(context.Background(), stats, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
}

func TestGenerateInventoryReport_TableroVacio(t *testing.T) {
	g := pdf.NewMarotoReportGenerator("CosmetiTrack")
	out, err := g.GenerateInventoryReport(context.Background(), &dto.DashboardStatsDTO{}, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
