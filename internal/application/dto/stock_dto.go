package dto

import "github.com/shopspring/decimal"

// UpsertStockRequest body para PUT /api/stock/:productId (existencia inicial o recuento).
type UpsertStockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// StockResponse existencia actual de un producto.
type StockResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt string          `json:"updated_at,omitempty"`
}
