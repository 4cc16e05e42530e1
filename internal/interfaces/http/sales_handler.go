package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-ventas/internal/application/dto"
	"github.com/tu-usuario/gestion-ventas/internal/application/reports"
	appsales "github.com/tu-usuario/gestion-ventas/internal/application/sales"
	"github.com/tu-usuario/gestion-ventas/internal/domain"
)

var validate = validator.New()

// SalesHandler maneja las peticiones HTTP de ventas para ambas series
// (la serie concreta la fija SeriesMiddleware en el grupo de rutas).
type SalesHandler struct {
	uc      *appsales.SaleUseCase
	reports *reports.ProfitabilityUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *appsales.SaleUseCase, reportsUC *reports.ProfitabilityUseCase) *SalesHandler {
	return &SalesHandler{uc: uc, reports: reportsUC}
}

// handleError traduce errores de dominio a códigos HTTP. Los errores de
// almacenamiento no mapeados se devuelven con mensaje genérico.
func handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidReference):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_REFERENCE", Message: "cliente o producto inválido"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrNumberExhausted):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "NUMBER_EXHAUSTED", Message: "no se pudo generar un número de documento libre"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// Create da de alta una venta con sus líneas y descuenta stock.
// POST /api/{serie}
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	resp, err := h.uc.Create(c.Context(), GetSeries(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListRecent devuelve las últimas 10 ventas de la serie.
// GET /api/{serie}
func (h *SalesHandler) ListRecent(c *fiber.Ctx) error {
	resp, err := h.uc.ListRecent(c.Context(), GetSeries(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// ListFiltered devuelve las ventas del rango con costos históricos resueltos
// y ganancia realizada.
// GET /api/{serie}/filtered?startDate=AAAA-MM-DD&endDate=AAAA-MM-DD
func (h *SalesHandler) ListFiltered(c *fiber.Ctx) error {
	resp, err := h.reports.ListFiltered(c.Context(), GetSeries(c), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// GetByID devuelve una venta con sus líneas.
// GET /api/{serie}/:id
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	resp, err := h.uc.Get(c.Context(), GetSeries(c), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// Update edita una venta por reemplazo completo (cabecera + todas las líneas).
// PUT /api/{serie}/:id
func (h *SalesHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	resp, err := h.uc.Update(c.Context(), GetSeries(c), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// UpdatePending cambia solo estado y/o estado de pago.
// PUT /api/{serie}/pending/:id
func (h *SalesHandler) UpdatePending(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.UpdatePendingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.UpdatePending(c.Context(), GetSeries(c), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// Delete elimina una venta y revierte el stock de sus líneas de producto.
// DELETE /api/{serie}/:id
func (h *SalesHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	resp, err := h.uc.Delete(c.Context(), GetSeries(c), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}
