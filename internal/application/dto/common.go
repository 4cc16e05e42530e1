package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StockWarning advertencia de conciliación de stock devuelta al cliente
// cuando un ajuste no pudo aplicarse (producto sin existencia inicial o
// fallo puntual bajo política diferida). La venta en sí ya quedó confirmada.
type StockWarning struct {
	ProductID string `json:"product_id"`
	Message   string `json:"message"`
}
