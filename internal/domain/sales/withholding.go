package sales

import "github.com/shopspring/decimal"

// Tasas de retención fija que gravan las ventas fiscales. Cada una se aplica
// sobre el subtotal (no sobre el total) y se suman. Son constantes del
// régimen impositivo argentino, no parámetros de configuración.
var withholdingRates = []decimal.Decimal{
	decimal.New(35, -3),  // 3.5%
	decimal.New(23, -3),  // 2.3%
	decimal.New(150, -3), // 15%
}

// Withholdings devuelve la suma de retenciones sobre un subtotal.
func Withholdings(subtotal decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, rate := range withholdingRates {
		total = total.Add(subtotal.Mul(rate))
	}
	return total
}

// NetAfterWithholdings devuelve el total USD neto de retenciones para la
// serie dada. La serie no fiscal no sufre retenciones.
func NetAfterWithholdings(s Series, subtotal, totalUSD decimal.Decimal) decimal.Decimal {
	if !s.HasTax {
		return totalUSD
	}
	return totalUSD.Sub(Withholdings(subtotal))
}

// RealizedGain es la ganancia realizada de una venta: total neto de
// retenciones menos el costo material valuado al costo vigente en la fecha
// de la venta.
func RealizedGain(s Series, subtotal, totalUSD, materialCost decimal.Decimal) decimal.Decimal {
	return NetAfterWithholdings(s, subtotal, totalUSD).Sub(materialCost)
}
