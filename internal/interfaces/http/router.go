package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-ventas/internal/application/reports"
	appsales "github.com/tu-usuario/gestion-ventas/internal/application/sales"
	"github.com/tu-usuario/gestion-ventas/internal/application/stock"
	"github.com/tu-usuario/gestion-ventas/internal/domain/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SalesUC   *appsales.SaleUseCase
	ReportsUC *reports.ProfitabilityUseCase
	StockUC   *stock.UseCase
}

// Router registra las rutas de la API. Las dos series de documentos montan
// el mismo handler parametrizado por la serie.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	salesHandler := NewSalesHandler(deps.SalesUC, deps.ReportsUC)
	for _, s := range []sales.Series{sales.Fiscal, sales.NonFiscal} {
		g := api.Group("/"+s.Key, SeriesMiddleware(s))
		g.Post("/", salesHandler.Create)
		g.Get("/", salesHandler.ListRecent)
		// /filtered y /pending antes que /:id para que no los capture el parámetro
		g.Get("/filtered", salesHandler.ListFiltered)
		g.Put("/pending/:id", salesHandler.UpdatePending)
		g.Get("/:id", salesHandler.GetByID)
		g.Put("/:id", salesHandler.Update)
		g.Delete("/:id", salesHandler.Delete)
	}

	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup := api.Group("/stock")
	stockGroup.Put("/:productId", stockHandler.Upsert)
	stockGroup.Get("/:productId", stockHandler.Get)

	productsHandler := NewProductsHandler(deps.ReportsUC)
	api.Get("/products/:productId/costs", productsHandler.Costs)
}
