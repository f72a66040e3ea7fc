package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/cosmetitrack-api/internal/application/analytics"
	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/application/usecase"
	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/inventory"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc        *usecase.ProductUseCase
	analytics *appanalytics.ProductAnalyticsUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, analytics *appanalytics.ProductAnalyticsUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, analytics: analytics}
}

// Create godoc
// @Summary      Crear producto
// @Description  La cantidad inicial se registra como entrada (IN) en el libro de inventario.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  string  false  "Categoría"
// @Param        brand_id     query  string  false  "Marca"
// @Param        supplier_id  query  string  false  "Proveedor"
// @Param        tag_id       query  string  false  "Etiqueta"
// @Param        status       query  string  false  "Estado"
// @Param        search       query  string  false  "Nombre, descripción, código de barras o SKU"
// @Param        limit        query  int     false  "Límite (default 20)"
// @Param        offset       query  int     false  "Offset"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var req dto.ProductFilterRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  No modifica quantity (libro de inventario) ni average_rating (reseñas).
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto (solo admin)
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Forecast godoc
// @Summary      Pronóstico de demanda
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del producto"
// @Param        days  query  int     false  "Ventana histórica en días (default 30)"
// @Success      200  {object}  dto.ForecastDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/forecast [get]
func (h *ProductHandler) Forecast(c *fiber.Ctx) error {
	days := inventory.DefaultWindowDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, fmt.Errorf("%w: days debe ser un entero", domain.ErrInvalidInput))
		}
		days = n
	}
	out, err := h.analytics.Forecast(c.Context(), c.Params("id"), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Analytics godoc
// @Summary      Analítica del producto
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID del producto"
// @Param        start_date  query  string  false  "YYYY-MM-DD (default: hace 30 días)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (default: hoy)"
// @Success      200  {object}  dto.ProductAnalyticsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/analytics [get]
func (h *ProductHandler) Analytics(c *fiber.Ctx) error {
	out, err := h.analytics.Analytics(c.Context(), c.Params("id"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func actorFrom(c *fiber.Ctx) usecase.Actor {
	return usecase.Actor{ID: GetUserID(c), Name: GetUserName(c)}
}
