package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/gestion-ventas/internal/domain/entity"
)

// CostHistoryRepository define el puerto de lectura del historial de costos.
// El historial es append-only y este motor nunca lo escribe.
type CostHistoryRepository interface {
	// ResolveAt devuelve el costo vigente del producto en la fecha dada:
	// el registro con mayor valid_from <= date, o el costo actual del
	// catálogo si no existe ninguno anterior. Devuelve nil cuando tampoco
	// existe el producto.
	ResolveAt(ctx context.Context, productID string, date time.Time) (*entity.ResolvedCost, error)
	// ListByProduct devuelve el historial completo de un producto, más reciente primero.
	ListByProduct(ctx context.Context, productID string) ([]*entity.CostHistory, error)
}
