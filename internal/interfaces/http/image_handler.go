package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/application/usecase"
)

// ImageHandler imágenes de producto.
type ImageHandler struct {
	uc *usecase.ImageUseCase
}

// NewImageHandler construye el handler.
func NewImageHandler(uc *usecase.ImageUseCase) *ImageHandler {
	return &ImageHandler{uc: uc}
}

// List godoc
// @Summary      Listar imágenes de un producto
// @Tags         images
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true  "ID del producto"
// @Success      200  {array}   dto.ImageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/product-images [get]
func (h *ImageHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.Context(), c.Query("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar imagen
// @Description  Si is_main es true, la imagen principal anterior deja de serlo.
// @Tags         images
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateImageRequest  true  "product_id, url, alt, is_main"
// @Success      201   {object}  dto.ImageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/product-images [post]
func (h *ImageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateImageRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
