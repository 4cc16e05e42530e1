package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-ventas/internal/domain/sales"
)

const seriesLocalKey = "series"

// SeriesMiddleware fija la serie de documentos del grupo de rutas. Las dos
// series montan el mismo handler; la serie viaja en los locals del contexto.
func SeriesMiddleware(s sales.Series) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(seriesLocalKey, s)
		return c.Next()
	}
}

// GetSeries recupera la serie fijada por SeriesMiddleware.
func GetSeries(c *fiber.Ctx) sales.Series {
	if s, ok := c.Locals(seriesLocalKey).(sales.Series); ok {
		return s
	}
	return sales.Series{}
}
