package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/application/usecase"
)

// ReviewHandler reseñas de producto.
type ReviewHandler struct {
	uc *usecase.ReviewUseCase
}

// NewReviewHandler construye el handler.
func NewReviewHandler(uc *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// List godoc
// @Summary      Listar reseñas de un producto
// @Tags         reviews
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true  "ID del producto"
// @Success      200  {array}   dto.ReviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reviews [get]
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.Context(), c.Query("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear reseña
// @Description  Recalcula el average_rating del producto.
// @Tags         reviews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReviewRequest  true  "product_id, rating (1-5), comment, customer_name"
// @Success      201   {object}  dto.ReviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
