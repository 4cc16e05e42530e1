package sales_test

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appsales "github.com/tu-usuario/gestion-ventas/internal/application/sales"
	"github.com/tu-usuario/gestion-ventas/internal/domain"
	"github.com/tu-usuario/gestion-ventas/internal/domain/entity"
	"github.com/tu-usuario/gestion-ventas/internal/domain/repository"
	domsales "github.com/tu-usuario/gestion-ventas/internal/domain/sales"
	"github.com/tu-usuario/gestion-ventas/pkg/logger"
)

// fakeStore estado compartido de los repos falsos. Las claves llevan el
// prefijo de la serie para mantener las dos numeraciones independientes,
// igual que las tablas reales.
type fakeStore struct {
	sales map[string]*entity.Sale        // serie/id
	items map[string][]*entity.SaleItem  // serie/saleID
	stock map[string]decimal.Decimal     // productID; la ausencia de clave es ausencia de fila

	createCalls int
	dupLeft     int   // próximos Create fallan con ErrDuplicate (colisión simulada)
	adjustErr   error // error forzado en Adjust
}

func newStore() *fakeStore {
	return &fakeStore{
		sales: make(map[string]*entity.Sale),
		items: make(map[string][]*entity.SaleItem),
		stock: make(map[string]decimal.Decimal),
	}
}

func skey(s domsales.Series, id string) string { return s.Key + "/" + id }

func (st *fakeStore) clone() *fakeStore {
	cp := newStore()
	for k, v := range st.sales {
		s := *v
		cp.sales[k] = &s
	}
	for k, list := range st.items {
		items := make([]*entity.SaleItem, 0, len(list))
		for _, it := range list {
			c := *it
			items = append(items, &c)
		}
		cp.items[k] = items
	}
	for k, v := range st.stock {
		cp.stock[k] = v
	}
	cp.createCalls = st.createCalls
	cp.dupLeft = st.dupLeft
	cp.adjustErr = st.adjustErr
	return cp
}

// seedSale precarga una venta con sus líneas, como si ya existiera en la BD.
func (st *fakeStore) seedSale(s domsales.Series, id, number, date string, items ...*entity.SaleItem) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	st.sales[skey(s, id)] = &entity.Sale{
		ID: id, Number: number, Date: d,
		CustomerID: "c1", Status: entity.SaleStatusDelivered, PaymentStatus: entity.PaymentPaid,
		Subtotal: decimal.NewFromInt(100), TotalUSD: decimal.NewFromInt(121),
		ExchangeRate: decimal.NewFromInt(1000), TotalARS: decimal.NewFromInt(121000),
		CreatedAt: d, UpdatedAt: d,
	}
	for _, it := range items {
		it.SaleID = id
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
	}
	st.items[skey(s, id)] = items
}

// ── repo de ventas ────────────────────────────────────────────────────────────

type fakeSaleRepo struct{ st *fakeStore }

func (r *fakeSaleRepo) Create(_ context.Context, s domsales.Series, sale *entity.Sale) error {
	r.st.createCalls++
	if r.st.dupLeft > 0 {
		r.st.dupLeft--
		return fmt.Errorf("%w: número %s ocupado", domain.ErrDuplicate, sale.Number)
	}
	for k, existing := range r.st.sales {
		if strings.HasPrefix(k, s.Key+"/") && existing.Number == sale.Number {
			return fmt.Errorf("%w: número %s ocupado", domain.ErrDuplicate, sale.Number)
		}
	}
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	cp := *sale
	r.st.sales[skey(s, sale.ID)] = &cp
	return nil
}

func (r *fakeSaleRepo) CreateItem(_ context.Context, s domsales.Series, item *entity.SaleItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	cp := *item
	k := skey(s, item.SaleID)
	r.st.items[k] = append(r.st.items[k], &cp)
	return nil
}

func (r *fakeSaleRepo) UpdateHeader(_ context.Context, s domsales.Series, sale *entity.Sale) (int64, error) {
	existing, ok := r.st.sales[skey(s, sale.ID)]
	if !ok {
		return 0, nil
	}
	// El número y la fecha de alta son inmutables, como en el UPDATE real.
	number, createdAt := existing.Number, existing.CreatedAt
	cp := *sale
	cp.Number, cp.CreatedAt = number, createdAt
	r.st.sales[skey(s, sale.ID)] = &cp
	return 1, nil
}

func (r *fakeSaleRepo) UpdatePending(_ context.Context, s domsales.Series, id string, status, payment *string) (int64, error) {
	existing, ok := r.st.sales[skey(s, id)]
	if !ok {
		return 0, nil
	}
	if status != nil {
		existing.Status = *status
	}
	if payment != nil {
		existing.PaymentStatus = *payment
	}
	return 1, nil
}

func (r *fakeSaleRepo) Delete(_ context.Context, s domsales.Series, id string) (int64, error) {
	if _, ok := r.st.sales[skey(s, id)]; !ok {
		return 0, nil
	}
	delete(r.st.sales, skey(s, id))
	return 1, nil
}

func (r *fakeSaleRepo) DeleteItems(_ context.Context, s domsales.Series, saleID string) error {
	delete(r.st.items, skey(s, saleID))
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, s domsales.Series, id string) (*entity.Sale, error) {
	sale, ok := r.st.sales[skey(s, id)]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *fakeSaleRepo) ListItems(_ context.Context, s domsales.Series, saleID string) ([]*entity.SaleItem, error) {
	list := r.st.items[skey(s, saleID)]
	out := make([]*entity.SaleItem, 0, len(list))
	for _, it := range list {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSaleRepo) ProductItems(_ context.Context, s domsales.Series, saleID string) ([]repository.ProductItemSnapshot, error) {
	var snaps []repository.ProductItemSnapshot
	for _, it := range r.st.items[skey(s, saleID)] {
		if it.IsProduct() {
			snaps = append(snaps, repository.ProductItemSnapshot{
				ItemID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity,
			})
		}
	}
	return snaps, nil
}

func (r *fakeSaleRepo) MaxNumber(_ context.Context, s domsales.Series) (int64, error) {
	var max int64
	for k, sale := range r.st.sales {
		if !strings.HasPrefix(k, s.Key+"/") {
			continue
		}
		n, err := strconv.ParseInt(sale.Number, 10, 64)
		if err != nil {
			continue // los números legados no numéricos cuentan como 0
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}

func (r *fakeSaleRepo) NumberExists(_ context.Context, s domsales.Series, number string) (bool, error) {
	for k, sale := range r.st.sales {
		if strings.HasPrefix(k, s.Key+"/") && sale.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSaleRepo) ListRecent(_ context.Context, s domsales.Series, limit int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for k, sale := range r.st.sales {
		if strings.HasPrefix(k, s.Key+"/") {
			cp := *sale
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSaleRepo) ListByDateRange(_ context.Context, s domsales.Series, from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for k, sale := range r.st.sales {
		if !strings.HasPrefix(k, s.Key+"/") {
			continue
		}
		if sale.Date.Before(from) || sale.Date.After(to) {
			continue
		}
		cp := *sale
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ── repo de stock ─────────────────────────────────────────────────────────────

type fakeStockRepo struct{ st *fakeStore }

func (r *fakeStockRepo) Adjust(_ context.Context, productID string, delta decimal.Decimal) (int64, error) {
	if r.st.adjustErr != nil {
		return 0, r.st.adjustErr
	}
	current, ok := r.st.stock[productID]
	if !ok {
		return 0, nil // sin fila: cero filas afectadas
	}
	r.st.stock[productID] = current.Add(delta)
	return 1, nil
}

func (r *fakeStockRepo) Get(_ context.Context, productID string) (*entity.Stock, error) {
	q, ok := r.st.stock[productID]
	if !ok {
		return nil, nil
	}
	return &entity.Stock{ProductID: productID, Quantity: q}, nil
}

func (r *fakeStockRepo) Upsert(_ context.Context, stock *entity.Stock) error {
	r.st.stock[stock.ProductID] = stock.Quantity
	return nil
}

// ── runner transaccional ──────────────────────────────────────────────────────

// fakeTxRunner emula commit/rollback: ejecuta la función sobre un clon del
// estado y solo lo vuelca al estado real si no hubo error.
type fakeTxRunner struct{ st *fakeStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
) error) error {
	tx := r.st.clone()
	if err := fn(&fakeSaleRepo{st: tx}, &fakeStockRepo{st: tx}); err != nil {
		// rollback: los contadores sí persisten, las escrituras no
		r.st.createCalls = tx.createCalls
		r.st.dupLeft = tx.dupLeft
		return err
	}
	*r.st = *tx
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func newUseCase(st *fakeStore, policy appsales.StockPolicy) *appsales.SaleUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return appsales.NewSaleUseCase(&fakeTxRunner{st: st}, &fakeSaleRepo{st: st}, &fakeStockRepo{st: st}, policy, log)
}
