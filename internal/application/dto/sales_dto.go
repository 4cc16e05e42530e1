package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-ventas/internal/domain/entity"
)

// SaleItemRequest línea de venta en altas y ediciones. Variante etiquetada:
// type "producto" lleva product_id, type "personalizado" lleva description.
type SaleItemRequest struct {
	Type        string          `json:"type" validate:"required,oneof=producto personalizado"`
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// SaleRequest body para POST/PUT de ventas de ambas series. tax_total solo
// aplica a la serie fiscal; total_ars es informativo (el servidor recalcula
// total_usd × exchange_rate y descarta el valor enviado).
type SaleRequest struct {
	Date          string            `json:"date" validate:"required,datetime=2006-01-02"`
	CustomerID    string            `json:"customer_id" validate:"required"`
	Status        string            `json:"status" validate:"required"`
	PaymentStatus string            `json:"payment_status" validate:"required"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	TaxTotal      decimal.Decimal   `json:"tax_total"`
	TotalUSD      decimal.Decimal   `json:"total_usd"`
	ExchangeRate  decimal.Decimal   `json:"exchange_rate"`
	TotalARS      decimal.Decimal   `json:"total_ars"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdatePendingRequest body para PUT /pending/:id (solo estado y/o pago).
type UpdatePendingRequest struct {
	Status  *string `json:"status,omitempty"`
	Payment *string `json:"payment,omitempty"`
}

// CreateSaleResponse respuesta de POST: id, número generado y advertencias
// de stock si la política diferida dejó ajustes sin aplicar.
type CreateSaleResponse struct {
	ID            string         `json:"id"`
	Number        string         `json:"number"`
	StockWarnings []StockWarning `json:"stock_warnings,omitempty"`
}

// MutationResponse respuesta de PUT/DELETE.
type MutationResponse struct {
	ID            string         `json:"id"`
	Changes       int64          `json:"changes"`
	StockWarnings []StockWarning `json:"stock_warnings,omitempty"`
}

// SaleItemResponse línea en respuestas. Exactamente uno de product_id /
// description es no nulo. Los campos de costo resuelto solo se completan en
// las lecturas de reportes.
type SaleItemResponse struct {
	ID              string           `json:"id"`
	Type            string           `json:"type"`
	ProductID       *string          `json:"product_id"`
	ProductName     string           `json:"product_name,omitempty"`
	Description     *string          `json:"description"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	LineTotal       decimal.Decimal  `json:"line_total"`
	CostPerRoll     *decimal.Decimal `json:"cost_per_roll,omitempty"`
	CostPerThousand *decimal.Decimal `json:"cost_per_thousand,omitempty"`
}

// SaleResponse cabecera (con líneas en GET por id y listados filtrados).
type SaleResponse struct {
	ID            string             `json:"id"`
	Number        string             `json:"number"`
	Date          string             `json:"date"`
	CustomerID    string             `json:"customer_id"`
	CustomerName  string             `json:"customer_name,omitempty"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxTotal      *decimal.Decimal   `json:"tax_total,omitempty"`
	TotalUSD      decimal.Decimal    `json:"total_usd"`
	ExchangeRate  decimal.Decimal    `json:"exchange_rate"`
	TotalARS      decimal.Decimal    `json:"total_ars"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}

// NewSaleResponse arma la respuesta de una venta. hasTax controla la
// presencia del campo de IVA (serie fiscal).
func NewSaleResponse(sale *entity.Sale, items []*entity.SaleItem, hasTax bool) SaleResponse {
	resp := SaleResponse{
		ID:            sale.ID,
		Number:        sale.Number,
		Date:          sale.Date.Format("2006-01-02"),
		CustomerID:    sale.CustomerID,
		CustomerName:  sale.CustomerName,
		Status:        sale.Status,
		PaymentStatus: sale.PaymentStatus,
		Subtotal:      sale.Subtotal,
		TotalUSD:      sale.TotalUSD,
		ExchangeRate:  sale.ExchangeRate,
		TotalARS:      sale.TotalARS,
	}
	if hasTax {
		tax := sale.TaxTotal
		resp.TaxTotal = &tax
	}
	for _, it := range items {
		resp.Items = append(resp.Items, NewSaleItemResponse(it))
	}
	return resp
}

// NewSaleItemResponse arma la respuesta de una línea preservando la
// exclusión mutua producto/descripción (el campo de la otra variante va nulo).
func NewSaleItemResponse(it *entity.SaleItem) SaleItemResponse {
	resp := SaleItemResponse{
		ID:              it.ID,
		Type:            it.Type,
		ProductName:     it.ProductName,
		Quantity:        it.Quantity,
		UnitPrice:       it.UnitPrice,
		LineTotal:       it.LineTotal,
		CostPerRoll:     it.CostPerRoll,
		CostPerThousand: it.CostPerThousand,
	}
	if it.IsProduct() {
		id := it.ProductID
		resp.ProductID = &id
	} else {
		desc := it.Description
		resp.Description = &desc
	}
	return resp
}
