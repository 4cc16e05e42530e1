package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta (flujo del taller).
const (
	SaleStatusDelivered    = "entregado"
	SaleStatusInProduction = "en_produccion"
	SaleStatusOrdered      = "encargado"
	SaleStatusCancelled    = "anulado"
	SaleStatusReady        = "listo"
)

// Estados de pago.
const (
	PaymentPaid    = "abonado"
	PaymentDeposit = "sena" // seña / adelanto parcial
	PaymentOwing   = "debe"
)

// ValidSaleStatus indica si s es un estado de venta conocido.
func ValidSaleStatus(s string) bool {
	switch s {
	case SaleStatusDelivered, SaleStatusInProduction, SaleStatusOrdered,
		SaleStatusCancelled, SaleStatusReady:
		return true
	}
	return false
}

// ValidPaymentStatus indica si s es un estado de pago conocido.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPaid, PaymentDeposit, PaymentOwing:
		return true
	}
	return false
}

// Sale representa la cabecera de una venta (serie fiscal o no fiscal; misma
// forma, la serie no fiscal no lleva IVA).
type Sale struct {
	ID            string
	Number        string // número de documento, único por serie, inmutable tras la creación
	Date          time.Time
	CustomerID    string
	CustomerName  string // denormalizado en lecturas (JOIN); no se persiste aquí
	Status        string
	PaymentStatus string
	Subtotal      decimal.Decimal
	TaxTotal      decimal.Decimal // solo serie fiscal
	TotalUSD      decimal.Decimal
	ExchangeRate  decimal.Decimal
	TotalARS      decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecomputeTotalARS fija TotalARS = TotalUSD × ExchangeRate.
// El servidor es autoritativo: el valor enviado por el cliente se descarta.
func (s *Sale) RecomputeTotalARS() {
	s.TotalARS = s.TotalUSD.Mul(s.ExchangeRate)
}
