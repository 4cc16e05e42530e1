package http_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-ventas/internal/application/dto"
	"github.com/tu-usuario/gestion-ventas/internal/domain/entity"
)

func TestStockUpsert_AltaInicial(t *testing.T) {
	st := newStore()
	app := newTestApp(st)

	resp := doJSON(t, app, fiber.MethodPut, "/api/stock/p1",
		dto.UpsertStockRequest{Quantity: decimal.NewFromInt(40)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[dto.StockResponse](t, resp)
	assert.Equal(t, "p1", out.ProductID)
	assert.True(t, out.Quantity.Equal(decimal.NewFromInt(40)))
}

func TestStockUpsert_ProductoInexistente(t *testing.T) {
	app := newTestApp(newStore())

	resp := doJSON(t, app, fiber.MethodPut, "/api/stock/no-existe",
		dto.UpsertStockRequest{Quantity: decimal.NewFromInt(10)})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStockUpsert_CantidadNegativa(t *testing.T) {
	app := newTestApp(newStore())

	resp := doJSON(t, app, fiber.MethodPut, "/api/stock/p1",
		dto.UpsertStockRequest{Quantity: decimal.NewFromInt(-3)})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStockGet_Existente(t *testing.T) {
	st := newStore()
	st.stock["p1"] = &entity.Stock{ProductID: "p1", Quantity: decimal.NewFromInt(7)}
	app := newTestApp(st)

	resp := doJSON(t, app, fiber.MethodGet, "/api/stock/p1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[dto.StockResponse](t, resp)
	assert.True(t, out.Quantity.Equal(decimal.NewFromInt(7)))
}

func TestStockGet_SinFila(t *testing.T) {
	// Producto sin existencia cargada: 404, nunca un cero inventado.
	app := newTestApp(newStore())

	resp := doJSON(t, app, fiber.MethodGet, "/api/stock/p1", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProductCosts_Existente(t *testing.T) {
	app := newTestApp(newStore())

	resp := doJSON(t, app, fiber.MethodGet, "/api/products/p1/costs", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[dto.ProductCostsResponse](t, resp)
	assert.Equal(t, "p1", out.ProductID)
	assert.True(t, out.CostPerRoll.Equal(decimal.NewFromInt(10)))
}

func TestProductCosts_ProductoInexistente(t *testing.T) {
	app := newTestApp(newStore())

	resp := doJSON(t, app, fiber.MethodGet, "/api/products/no-existe/costs", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
