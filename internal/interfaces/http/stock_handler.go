package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-ventas/internal/application/dto"
	"github.com/tu-usuario/gestion-ventas/internal/application/stock"
)

// StockHandler alta inicial y consulta de existencias por producto.
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Upsert carga o reemplaza la existencia de un producto.
// PUT /api/stock/:productId
func (h *StockHandler) Upsert(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId requerido"})
	}
	var in dto.UpsertStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Upsert(c.Context(), productID, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// Get consulta la existencia actual de un producto.
// GET /api/stock/:productId
func (h *StockHandler) Get(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId requerido"})
	}
	resp, err := h.uc.Get(c.Context(), productID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}
