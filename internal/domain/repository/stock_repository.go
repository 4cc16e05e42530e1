package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-ventas/internal/domain/entity"
)

// StockRepository define el puerto del libro de existencias (una fila por producto).
type StockRepository interface {
	// Adjust aplica quantity := quantity + delta de forma atómica y devuelve
	// las filas afectadas. Cero filas significa que el producto no tiene
	// existencia inicial cargada: el llamador lo trata como advertencia, no
	// como error, y la fila no se crea automáticamente.
	Adjust(ctx context.Context, productID string, delta decimal.Decimal) (int64, error)
	// Get devuelve nil cuando el producto no tiene fila de stock.
	Get(ctx context.Context, productID string) (*entity.Stock, error)
	// Upsert carga o reemplaza la existencia de un producto (alta inicial y recuentos).
	Upsert(ctx context.Context, stock *entity.Stock) error
}
