package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-ventas/internal/domain/entity"
	"github.com/tu-usuario/gestion-ventas/internal/domain/sales"
)

// ProductItemSnapshot es la foto mínima de una línea de producto usada para
// revertir stock en ediciones y bajas.
type ProductItemSnapshot struct {
	ItemID    string
	ProductID string
	Quantity  decimal.Decimal
}

// SaleRepository define el puerto de persistencia para cabeceras y líneas de
// venta de ambas series. Todas las operaciones reciben la serie; el adaptador
// resuelve las tablas a partir de ella.
type SaleRepository interface {
	Create(ctx context.Context, s sales.Series, sale *entity.Sale) error
	CreateItem(ctx context.Context, s sales.Series, item *entity.SaleItem) error
	// UpdateHeader actualiza la cabecera en su lugar. El número de documento
	// es inmutable y queda fuera del UPDATE. Devuelve filas afectadas.
	UpdateHeader(ctx context.Context, s sales.Series, sale *entity.Sale) (int64, error)
	// UpdatePending actualiza solo estado y/o estado de pago (nil = no tocar).
	UpdatePending(ctx context.Context, s sales.Series, id string, status, payment *string) (int64, error)
	Delete(ctx context.Context, s sales.Series, id string) (int64, error)
	DeleteItems(ctx context.Context, s sales.Series, saleID string) error

	GetByID(ctx context.Context, s sales.Series, id string) (*entity.Sale, error)
	ListItems(ctx context.Context, s sales.Series, saleID string) ([]*entity.SaleItem, error)
	// ProductItems devuelve la foto pre-edición de las líneas de producto.
	ProductItems(ctx context.Context, s sales.Series, saleID string) ([]ProductItemSnapshot, error)

	// MaxNumber devuelve el mayor número de documento de la serie comparado
	// numéricamente (0 si la serie está vacía o solo tiene valores legados no
	// numéricos). NumberExists es la verificación defensiva contra números
	// legados dispersos.
	MaxNumber(ctx context.Context, s sales.Series) (int64, error)
	NumberExists(ctx context.Context, s sales.Series, number string) (bool, error)

	ListRecent(ctx context.Context, s sales.Series, limit int) ([]*entity.Sale, error)
	ListByDateRange(ctx context.Context, s sales.Series, from, to time.Time) ([]*entity.Sale, error)
}
