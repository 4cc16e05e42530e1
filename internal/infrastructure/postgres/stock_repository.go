package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-ventas/internal/domain/entity"
	"github.com/tu-usuario/gestion-ventas/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Adjust aplica quantity := quantity + delta en un solo UPDATE atómico.
// Cero filas afectadas significa que el producto no tiene fila de stock: el
// llamador lo trata como advertencia. No hay cota inferior: la cantidad puede
// quedar negativa.
func (r *StockRepo) Adjust(ctx context.Context, productID string, delta decimal.Decimal) (int64, error) {
	query := `
		UPDATE stock
		SET quantity = quantity + $2, updated_at = now()
		WHERE product_id = $1`
	tag, err := r.q.Exec(ctx, query, productID, delta)
	if err != nil {
		return 0, fmt.Errorf("ajustar stock: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Get obtiene el stock actual de un producto. Devuelve nil si no hay fila
// (la ausencia no es cero).
func (r *StockRepo) Get(ctx context.Context, productID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, quantity, updated_at
		FROM stock WHERE product_id = $1`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID).Scan(&s.ProductID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert carga o reemplaza la existencia de un producto (alta inicial y recuentos).
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, stock.ProductID, stock.Quantity); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
