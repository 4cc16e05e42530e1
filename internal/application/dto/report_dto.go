package dto

import "github.com/shopspring/decimal"

// SaleProfitResponse una venta del listado filtrado: cabecera, líneas con
// costos históricos resueltos y ganancia realizada.
type SaleProfitResponse struct {
	SaleResponse
	MaterialCost decimal.Decimal `json:"material_cost"`
	Withholdings decimal.Decimal `json:"withholdings"`
	RealizedGain decimal.Decimal `json:"realized_gain"`
}

// RangeSummary totales agregados del rango consultado.
type RangeSummary struct {
	Count        int             `json:"count"`
	TotalUSD     decimal.Decimal `json:"total_usd"`
	MaterialCost decimal.Decimal `json:"material_cost"`
	Withholdings decimal.Decimal `json:"withholdings"`
	RealizedGain decimal.Decimal `json:"realized_gain"`
}

// FilteredSalesResponse respuesta de GET /filtered.
type FilteredSalesResponse struct {
	Sales   []SaleProfitResponse `json:"sales"`
	Summary RangeSummary         `json:"summary"`
}

// CostHistoryEntry un registro del historial de costos.
type CostHistoryEntry struct {
	ValidFrom       string          `json:"valid_from"`
	CostPerRoll     decimal.Decimal `json:"cost_per_roll"`
	CostPerThousand decimal.Decimal `json:"cost_per_thousand"`
}

// ProductCostsResponse costo actual de catálogo e historial de un producto,
// más reciente primero.
type ProductCostsResponse struct {
	ProductID       string             `json:"product_id"`
	ProductName     string             `json:"product_name"`
	CostPerRoll     decimal.Decimal    `json:"cost_per_roll"`
	CostPerThousand decimal.Decimal    `json:"cost_per_thousand"`
	History         []CostHistoryEntry `json:"history"`
}
