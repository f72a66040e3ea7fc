package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/application/usecase"
)

// BatchHandler lotes y controles de calidad.
type BatchHandler struct {
	batches *usecase.BatchUseCase
	checks  *usecase.QualityCheckUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(batches *usecase.BatchUseCase, checks *usecase.QualityCheckUseCase) *BatchHandler {
	return &BatchHandler{batches: batches, checks: checks}
}

// List godoc
// @Summary      Listar lotes
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "ID del producto"
// @Param        status      query  string  false  "ACTIVE, QUARANTINE, EXPIRED, DEPLETED"
// @Success      200  {array}   dto.BatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	out, err := h.batches.List(c.Context(), c.Query("product_id"), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Recibir lote
// @Description  Crea el lote, sus controles de calidad y registra la entrada (IN) de su cantidad.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "Datos del lote"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.batches.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener lote
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.batches.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListQualityChecks godoc
// @Summary      Listar controles de calidad
// @Tags         quality
// @Security     Bearer
// @Produce      json
// @Param        batch_id  query  string  false  "ID del lote"
// @Param        type      query  string  false  "Tipo de control"
// @Param        status    query  string  false  "PENDING, PASSED, FAILED"
// @Success      200  {array}   dto.QualityCheckResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/quality-checks [get]
func (h *BatchHandler) ListQualityChecks(c *fiber.Ctx) error {
	out, err := h.checks.List(c.Context(), c.Query("batch_id"), c.Query("type"), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateQualityCheck godoc
// @Summary      Registrar control de calidad
// @Tags         quality
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQualityCheckRequest  true  "batch_id, check_type, status, notes"
// @Success      201   {object}  dto.QualityCheckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quality-checks [post]
func (h *BatchHandler) CreateQualityCheck(c *fiber.Ctx) error {
	var in dto.CreateQualityCheckRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.checks.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
