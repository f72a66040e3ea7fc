package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/cosmetitrack-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard y del reporte PDF.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	report *appanalytics.ReportUseCase
}

// NewDashboardHandler construye el handler. report puede ser nil si no hay generador de PDF.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, report *appanalytics.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, report: report}
}

// GetStats godoc
// @Summary      Estadísticas del dashboard
// @Description  Conteos, valor del inventario, stock bajo, transacciones y reseñas recientes, productos más movidos.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// GetReport godoc
// @Summary      Reporte de inventario en PDF
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/dashboard/report [get]
func (h *DashboardHandler) GetReport(c *fiber.Ctx) error {
	if h.report == nil {
		return fiber.NewError(fiber.StatusNotImplemented, "reporte no disponible")
	}
	pdf, err := h.report.InventoryReport(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("inventario-%s.pdf", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
