package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-ventas/internal/domain"
)

// Tipos de ítem de venta. El discriminador hace estructural la exclusión
// mutua entre referencia a producto y descripción libre.
const (
	ItemTypeProduct = "producto"      // referencia al catálogo, afecta stock
	ItemTypeCustom  = "personalizado" // descripción libre, nunca afecta stock
)

// SaleItem representa una línea de una venta. Variante etiquetada:
// producto (ProductID poblado) o personalizado (Description poblada).
type SaleItem struct {
	ID          string
	SaleID      string
	Type        string
	ProductID   string // solo tipo producto
	ProductName string // denormalizado en lecturas (JOIN); no se persiste aquí
	Description string // solo tipo personalizado
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	Position    int // orden de carga, solo para presentación

	// Costos históricos resueltos (solo en lecturas de reportes; nil fuera de ellas).
	CostPerRoll     *decimal.Decimal
	CostPerThousand *decimal.Decimal
}

// IsProduct indica si la línea referencia un producto del catálogo.
func (i *SaleItem) IsProduct() bool {
	return i.Type == ItemTypeProduct
}

// Validate verifica la invariante de la variante: exactamente uno de
// {ProductID, Description} poblado según el tipo, cantidad positiva y
// precio no negativo.
func (i *SaleItem) Validate() error {
	switch i.Type {
	case ItemTypeProduct:
		if i.ProductID == "" {
			return fmt.Errorf("%w: ítem producto sin product_id", domain.ErrInvalidInput)
		}
		if i.Description != "" {
			return fmt.Errorf("%w: ítem producto con descripción libre", domain.ErrInvalidInput)
		}
	case ItemTypeCustom:
		if i.Description == "" {
			return fmt.Errorf("%w: ítem personalizado sin descripción", domain.ErrInvalidInput)
		}
		if i.ProductID != "" {
			return fmt.Errorf("%w: ítem personalizado con product_id", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: tipo de ítem desconocido %q", domain.ErrInvalidInput, i.Type)
	}
	if !i.Quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if i.UnitPrice.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: precio unitario negativo", domain.ErrInvalidInput)
	}
	return nil
}

// RecomputeLineTotal fija LineTotal = Quantity × UnitPrice (el servidor es autoritativo).
func (i *SaleItem) RecomputeLineTotal() {
	i.LineTotal = i.Quantity.Mul(i.UnitPrice)
}
