package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
)

// InventoryReportGenerator puerto de salida: renderiza el tablero como documento descargable.
type InventoryReportGenerator interface {
	GenerateInventoryReport(ctx context.Context, stats *dto.DashboardStatsDTO, generatedAt time.Time) ([]byte, error)
}

// ReportUseCase genera el reporte PDF del inventario a partir del tablero.
type ReportUseCase struct {
	dashboard *DashboardUseCase
	generator InventoryReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(dashboard *DashboardUseCase, generator InventoryReportGenerator) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, generator: generator}
}

// InventoryReport devuelve los bytes del PDF.
func (uc *ReportUseCase) InventoryReport(ctx context.Context) ([]byte, error) {
	stats, err := uc.dashboard.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateInventoryReport(ctx, stats, time.Now())
}
