package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/gestion-ventas/internal/domain/entity"
	"github.com/tu-usuario/gestion-ventas/internal/domain/repository"
)

var _ repository.CostHistoryRepository = (*CostHistoryRepo)(nil)

// CostHistoryRepo lectura del historial de costos sobre PostgreSQL.
// El historial es append-only; este adaptador no expone escrituras.
type CostHistoryRepo struct {
	q Querier
}

// NewCostHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostHistoryRepository(q Querier) *CostHistoryRepo {
	return &CostHistoryRepo{q: q}
}

// ResolveAt devuelve el costo vigente del producto en la fecha dada: el
// registro histórico con mayor valid_from <= date, o el costo actual del
// catálogo cuando no hay historial anterior a la fecha. Devuelve nil si
// tampoco existe el producto.
func (r *CostHistoryRepo) ResolveAt(ctx context.Context, productID string, date time.Time) (*entity.ResolvedCost, error) {
	query := `
		SELECT p.id,
		       COALESCE(h.cost_per_roll, p.cost_per_roll),
		       COALESCE(h.cost_per_thousand, p.cost_per_thousand),
		       h.product_id IS NOT NULL
		FROM products p
		LEFT JOIN LATERAL (
			SELECT product_id, cost_per_roll, cost_per_thousand
			FROM cost_history
			WHERE product_id = p.id AND valid_from <= $2
			ORDER BY valid_from DESC
			LIMIT 1
		) h ON true
		WHERE p.id = $1`
	var rc entity.ResolvedCost
	err := r.q.QueryRow(ctx, query, productID, date).Scan(
		&rc.ProductID, &rc.CostPerRoll, &rc.CostPerThousand, &rc.FromHistory,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolver costo histórico: %w", err)
	}
	return &rc, nil
}

// ListByProduct devuelve el historial completo de un producto, más reciente primero.
func (r *CostHistoryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.CostHistory, error) {
	query := `
		SELECT id, product_id, valid_from, cost_per_thousand, cost_per_roll, created_at
		FROM cost_history
		WHERE product_id = $1
		ORDER BY valid_from DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list historial de costos: %w", err)
	}
	defer rows.Close()
	var list []*entity.CostHistory
	for rows.Next() {
		var h entity.CostHistory
		if err := rows.Scan(&h.ID, &h.ProductID, &h.ValidFrom, &h.CostPerThousand, &h.CostPerRoll, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan historial de costos: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
