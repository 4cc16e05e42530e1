package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la existencia actual de un producto. La ausencia de fila
// no equivale a cero: un producto sin stock inicial cargado no se trackea.
// La cantidad es un decimal con signo; ventas repetidas pueden dejarla negativa.
type Stock struct {
	ProductID string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
