package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostHistory registra el costo de un producto vigente desde una fecha.
// La tabla es append-only: al cambiar el costo de catálogo se agrega un
// registro nuevo (eso ocurre en el módulo de productos); este motor solo lee.
type CostHistory struct {
	ID              string
	ProductID       string
	ValidFrom       time.Time
	CostPerThousand decimal.Decimal
	CostPerRoll     decimal.Decimal
	CreatedAt       time.Time
}

// ResolvedCost es el costo vigente de un producto en una fecha dada:
// el registro histórico más reciente con valid_from <= fecha, o el costo
// actual del catálogo cuando no hay historial anterior a la fecha.
type ResolvedCost struct {
	ProductID       string
	CostPerRoll     decimal.Decimal
	CostPerThousand decimal.Decimal
	FromHistory     bool // false cuando el valor proviene del catálogo
}
