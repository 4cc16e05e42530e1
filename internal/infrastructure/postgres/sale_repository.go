package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/gestion-ventas/internal/domain"
	"github.com/tu-usuario/gestion-ventas/internal/domain/entity"
	"github.com/tu-usuario/gestion-ventas/internal/domain/repository"
	"github.com/tu-usuario/gestion-ventas/internal/domain/sales"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
// Las tablas se resuelven desde la serie; los nombres son valores fijos del
// sistema (sales.Fiscal / sales.NonFiscal), nunca entrada del usuario.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera. La tabla lleva UNIQUE(number): una colisión de
// número concurrente se devuelve como ErrDuplicate para que el caso de uso
// reintente con otro número.
func (r *SaleRepo) Create(ctx context.Context, s sales.Series, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	var query string
	var args []any
	if s.HasTax {
		query = fmt.Sprintf(`
			INSERT INTO %s (id, number, date, customer_id, status, payment_status, subtotal, tax_total, total_usd, exchange_rate, total_ars, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`, s.SaleTable)
		args = []any{
			sale.ID, sale.Number, sale.Date, sale.CustomerID, sale.Status, sale.PaymentStatus,
			sale.Subtotal, sale.TaxTotal, sale.TotalUSD, sale.ExchangeRate, sale.TotalARS,
			sale.CreatedAt, sale.UpdatedAt,
		}
	} else {
		query = fmt.Sprintf(`
			INSERT INTO %s (id, number, date, customer_id, status, payment_status, subtotal, total_usd, exchange_rate, total_ars, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`, s.SaleTable)
		args = []any{
			sale.ID, sale.Number, sale.Date, sale.CustomerID, sale.Status, sale.PaymentStatus,
			sale.Subtotal, sale.TotalUSD, sale.ExchangeRate, sale.TotalARS,
			sale.CreatedAt, sale.UpdatedAt,
		}
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de documento ocupado: %w", domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert venta: %w", domain.ErrInvalidReference)
		}
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(ctx context.Context, s sales.Series, item *entity.SaleItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, sale_id, item_type, product_id, description, quantity, unit_price, line_total, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, s.ItemTable)
	_, err := r.q.Exec(ctx, query,
		item.ID, item.SaleID, item.Type,
		nullIfEmpty(item.ProductID), nullIfEmpty(item.Description),
		item.Quantity, item.UnitPrice, item.LineTotal, item.Position,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert línea de venta: %w", domain.ErrInvalidReference)
		}
		return fmt.Errorf("insert línea de venta: %w", err)
	}
	return nil
}

// UpdateHeader actualiza la cabecera en su lugar. El número de documento es
// inmutable: queda fuera del SET.
func (r *SaleRepo) UpdateHeader(ctx context.Context, s sales.Series, sale *entity.Sale) (int64, error) {
	var query string
	var args []any
	if s.HasTax {
		query = fmt.Sprintf(`
			UPDATE %s
			SET date = $2, customer_id = $3, status = $4, payment_status = $5,
			    subtotal = $6, tax_total = $7, total_usd = $8, exchange_rate = $9,
			    total_ars = $10, updated_at = $11
			WHERE id = $1`, s.SaleTable)
		args = []any{
			sale.ID, sale.Date, sale.CustomerID, sale.Status, sale.PaymentStatus,
			sale.Subtotal, sale.TaxTotal, sale.TotalUSD, sale.ExchangeRate,
			sale.TotalARS, sale.UpdatedAt,
		}
	} else {
		query = fmt.Sprintf(`
			UPDATE %s
			SET date = $2, customer_id = $3, status = $4, payment_status = $5,
			    subtotal = $6, total_usd = $7, exchange_rate = $8,
			    total_ars = $9, updated_at = $10
			WHERE id = $1`, s.SaleTable)
		args = []any{
			sale.ID, sale.Date, sale.CustomerID, sale.Status, sale.PaymentStatus,
			sale.Subtotal, sale.TotalUSD, sale.ExchangeRate,
			sale.TotalARS, sale.UpdatedAt,
		}
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("update venta: %w", domain.ErrInvalidReference)
		}
		return 0, fmt.Errorf("update venta: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpdatePending actualiza solo estado y/o estado de pago (nil = no tocar).
func (r *SaleRepo) UpdatePending(ctx context.Context, s sales.Series, id string, status, payment *string) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status         = COALESCE($2, status),
		    payment_status = COALESCE($3, payment_status),
		    updated_at     = now()
		WHERE id = $1`, s.SaleTable)
	tag, err := r.q.Exec(ctx, query, id, status, payment)
	if err != nil {
		return 0, fmt.Errorf("update estado de venta: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete elimina la cabecera y devuelve filas afectadas (0 = no existe).
func (r *SaleRepo) Delete(ctx context.Context, s sales.Series, id string) (int64, error) {
	tag, err := r.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.SaleTable), id)
	if err != nil {
		return 0, fmt.Errorf("delete venta: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteItems elimina todas las líneas de una venta.
func (r *SaleRepo) DeleteItems(ctx context.Context, s sales.Series, saleID string) error {
	_, err := r.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE sale_id = $1`, s.ItemTable), saleID)
	if err != nil {
		return fmt.Errorf("delete líneas de venta: %w", err)
	}
	return nil
}

func (r *SaleRepo) headerColumns(s sales.Series) string {
	tax := "v.tax_total"
	if !s.HasTax {
		tax = "0::numeric"
	}
	return fmt.Sprintf(`v.id, v.number, v.date, v.customer_id, COALESCE(c.name, ''),
	       v.status, v.payment_status, v.subtotal, %s, v.total_usd,
	       v.exchange_rate, v.total_ars, v.created_at, v.updated_at`, tax)
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var v entity.Sale
	err := row.Scan(
		&v.ID, &v.Number, &v.Date, &v.CustomerID, &v.CustomerName,
		&v.Status, &v.PaymentStatus, &v.Subtotal, &v.TaxTotal, &v.TotalUSD,
		&v.ExchangeRate, &v.TotalARS, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetByID obtiene una cabecera por ID (con nombre de cliente). Devuelve nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, s sales.Series, id string) (*entity.Sale, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s v LEFT JOIN customers c ON c.id = v.customer_id
		WHERE v.id = $1`, r.headerColumns(s), s.SaleTable)
	sale, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return sale, nil
}

// ListItems obtiene todas las líneas de una venta en orden de carga.
func (r *SaleRepo) ListItems(ctx context.Context, s sales.Series, saleID string) ([]*entity.SaleItem, error) {
	query := fmt.Sprintf(`
		SELECT i.id, i.sale_id, i.item_type, i.product_id, COALESCE(p.name, ''),
		       i.description, i.quantity, i.unit_price, i.line_total, i.position
		FROM %s i LEFT JOIN products p ON p.id = i.product_id
		WHERE i.sale_id = $1
		ORDER BY i.position, i.id`, s.ItemTable)
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list líneas de venta: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		var productID, description *string
		if err := rows.Scan(
			&it.ID, &it.SaleID, &it.Type, &productID, &it.ProductName,
			&description, &it.Quantity, &it.UnitPrice, &it.LineTotal, &it.Position,
		); err != nil {
			return nil, fmt.Errorf("scan línea de venta: %w", err)
		}
		it.ProductID = derefStr(productID)
		it.Description = derefStr(description)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ProductItems devuelve la foto de las líneas de producto (para revertir stock).
func (r *SaleRepo) ProductItems(ctx context.Context, s sales.Series, saleID string) ([]repository.ProductItemSnapshot, error) {
	query := fmt.Sprintf(`
		SELECT id, product_id, quantity
		FROM %s
		WHERE sale_id = $1 AND item_type = $2`, s.ItemTable)
	rows, err := r.q.Query(ctx, query, saleID, entity.ItemTypeProduct)
	if err != nil {
		return nil, fmt.Errorf("snapshot líneas de producto: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductItemSnapshot
	for rows.Next() {
		var snap repository.ProductItemSnapshot
		if err := rows.Scan(&snap.ItemID, &snap.ProductID, &snap.Quantity); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		list = append(list, snap)
	}
	return list, rows.Err()
}

// MaxNumber devuelve el mayor número de la serie comparado numéricamente.
// Los valores legados no numéricos cuentan como 0.
func (r *SaleRepo) MaxNumber(ctx context.Context, s sales.Series) (int64, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(CASE WHEN number ~ '^[0-9]+$' THEN number::bigint ELSE 0 END), 0)
		FROM %s`, s.SaleTable)
	var max int64
	if err := r.q.QueryRow(ctx, query).Scan(&max); err != nil {
		return 0, fmt.Errorf("max número de serie: %w", err)
	}
	return max, nil
}

// NumberExists verifica si un número exacto ya está ocupado en la serie.
func (r *SaleRepo) NumberExists(ctx context.Context, s sales.Series, number string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE number = $1)`, s.SaleTable)
	var exists bool
	if err := r.q.QueryRow(ctx, query, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("existe número: %w", err)
	}
	return exists, nil
}

// ListRecent devuelve las últimas ventas de la serie (cabeceras).
func (r *SaleRepo) ListRecent(ctx context.Context, s sales.Series, limit int) ([]*entity.Sale, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s v LEFT JOIN customers c ON c.id = v.customer_id
		ORDER BY v.date DESC, v.created_at DESC
		LIMIT $1`, r.headerColumns(s), s.SaleTable)
	return r.querySales(ctx, query, limit)
}

// ListByDateRange devuelve las ventas con fecha dentro del rango inclusivo.
func (r *SaleRepo) ListByDateRange(ctx context.Context, s sales.Series, from, to time.Time) ([]*entity.Sale, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s v LEFT JOIN customers c ON c.id = v.customer_id
		WHERE v.date >= $1 AND v.date <= $2
		ORDER BY v.date, v.created_at`, r.headerColumns(s), s.SaleTable)
	return r.querySales(ctx, query, from, to)
}

func (r *SaleRepo) querySales(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, sale)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}
