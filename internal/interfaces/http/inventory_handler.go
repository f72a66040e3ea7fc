package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/cosmetitrack-api/internal/application/analytics"
	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario (protegido).
type InventoryHandler struct {
	ledger        *inventory.LedgerUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, replenishment: replenishment}
}

// RecordTransaction godoc
// @Summary      Registrar transacción de inventario
// @Description  IN suma, OUT y ADJUSTMENT restan. Con batch_id se mueve también la cantidad del lote.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordTransactionRequest  true  "product_id, batch_id, type, quantity, notes"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [post]
func (h *InventoryHandler) RecordTransaction(c *fiber.Ctx) error {
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	actor := actorFrom(c)
	out, err := h.ledger.RecordTransaction(c.Context(), inventory.RecordInput{
		ProductID:     in.ProductID,
		BatchID:       in.BatchID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Notes:         in.Notes,
		PerformedBy:   actor.Name,
		PerformedByID: actor.ID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTransactions godoc
// @Summary      Consultar el libro de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "ID del producto"
// @Param        batch_id    query  string  false  "ID del lote"
// @Param        type        query  string  false  "IN, OUT, ADJUSTMENT"
// @Param        start_date  query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	var req dto.TransactionFilterRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	f := inventory.ListFilter{ProductID: req.ProductID, BatchID: req.BatchID, Type: req.Type}
	if req.StartDate != "" {
		from, err := appanalytics.ParseDate(req.StartDate, false)
		if err != nil {
			return respondError(c, err)
		}
		f.From = &from
	}
	if req.EndDate != "" {
		end, err := appanalytics.ParseDate(req.EndDate, true)
		if err != nil {
			return respondError(c, err)
		}
		// el repositorio trata To como exclusivo
		to := end.Add(time.Nanosecond)
		f.To = &to
	}
	out, err := h.ledger.ListTransactions(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos en o por debajo de min_quantity con la cantidad sugerida de pedido,
//
//	ordenados por prioridad (días hasta agotarse).
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
