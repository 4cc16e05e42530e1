package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-ventas/internal/application/dto"
	"github.com/tu-usuario/gestion-ventas/internal/application/reports"
)

// ProductsHandler lecturas de costos por producto. El ABM del catálogo vive
// en otro módulo; acá solo se consulta.
type ProductsHandler struct {
	reports *reports.ProfitabilityUseCase
}

// NewProductsHandler construye el handler.
func NewProductsHandler(reportsUC *reports.ProfitabilityUseCase) *ProductsHandler {
	return &ProductsHandler{reports: reportsUC}
}

// Costs devuelve el costo actual de catálogo y el historial de un producto.
// GET /api/products/:productId/costs
func (h *ProductsHandler) Costs(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId requerido"})
	}
	resp, err := h.reports.ProductCosts(c.Context(), productID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}
