package sales

import (
	"context"

	"github.com/tu-usuario/gestion-ventas/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que cabecera y líneas de una venta
// se confirmen o reviertan juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// StockPolicy decide cuándo se aplican los ajustes de stock de una venta.
type StockPolicy string

const (
	// StockDeferred confirma primero la transacción de la venta y aplica los
	// ajustes después; los fallos se devuelven como advertencias. Es la
	// política por defecto: el documento es el efecto primario durable y el
	// stock un efecto secundario de mejor esfuerzo.
	StockDeferred StockPolicy = "deferred"
	// StockAtomic aplica los ajustes dentro de la transacción; cualquier
	// fallo revierte la venta completa.
	StockAtomic StockPolicy = "atomic"
)
