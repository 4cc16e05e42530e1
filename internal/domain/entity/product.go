package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Los costos se expresan de dos
// maneras: por bobina y por mil unidades; el costo por bobina es el
// autoritativo para reportes. Los valores actuales del catálogo son el
// fallback del resolutor de costos históricos.
type Product struct {
	ID              string
	SKU             string
	Name            string
	CostPerThousand decimal.Decimal
	CostPerRoll     decimal.Decimal
	Price           decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
