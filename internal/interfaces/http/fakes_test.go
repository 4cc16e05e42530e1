package http_test

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-ventas/internal/application/reports"
	appsales "github.com/tu-usuario/gestion-ventas/internal/application/sales"
	"github.com/tu-usuario/gestion-ventas/internal/application/stock"
	"github.com/tu-usuario/gestion-ventas/internal/domain"
	"github.com/tu-usuario/gestion-ventas/internal/domain/entity"
	"github.com/tu-usuario/gestion-ventas/internal/domain/repository"
	domsales "github.com/tu-usuario/gestion-ventas/internal/domain/sales"
	ihttp "github.com/tu-usuario/gestion-ventas/internal/interfaces/http"
	"github.com/tu-usuario/gestion-ventas/pkg/logger"
)

// fakeStore respaldo en memoria de todos los repos, suficiente para ejercitar
// los handlers de punta a punta sin base de datos.
type fakeStore struct {
	sales    map[string]*entity.Sale       // serie/id
	items    map[string][]*entity.SaleItem // serie/saleID
	stock    map[string]*entity.Stock      // productID
	products map[string]*entity.Product    // productID
}

func newStore() *fakeStore {
	return &fakeStore{
		sales: make(map[string]*entity.Sale),
		items: make(map[string][]*entity.SaleItem),
		stock: make(map[string]*entity.Stock),
		products: map[string]*entity.Product{
			"p1": {ID: "p1", Name: "bobina kraft 60cm",
				CostPerRoll: decimal.NewFromInt(10), CostPerThousand: decimal.NewFromInt(100)},
		},
	}
}

func skey(s domsales.Series, id string) string { return s.Key + "/" + id }

type fakeSaleRepo struct{ st *fakeStore }

func (r *fakeSaleRepo) Create(_ context.Context, s domsales.Series, sale *entity.Sale) error {
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
	cp := *sale
	cp.Number, cp.CreatedAt = existing.Number, existing.CreatedAt
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
	return r.st.items[skey(s, saleID)], nil
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
		if n, err := strconv.ParseInt(sale.Number, 10, 64); err == nil && n > max {
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
			out = append(out, sale)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSaleRepo) ListByDateRange(_ context.Context, s domsales.Series, from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for k, sale := range r.st.sales {
		if strings.HasPrefix(k, s.Key+"/") && !sale.Date.Before(from) && !sale.Date.After(to) {
			out = append(out, sale)
		}
	}
	return out, nil
}

type fakeStockRepo struct{ st *fakeStore }

func (r *fakeStockRepo) Adjust(_ context.Context, productID string, delta decimal.Decimal) (int64, error) {
	row, ok := r.st.stock[productID]
	if !ok {
		return 0, nil
	}
	row.Quantity = row.Quantity.Add(delta)
	return 1, nil
}

func (r *fakeStockRepo) Get(_ context.Context, productID string) (*entity.Stock, error) {
	return r.st.stock[productID], nil
}

func (r *fakeStockRepo) Upsert(_ context.Context, s *entity.Stock) error {
	cp := *s
	r.st.stock[s.ProductID] = &cp
	return nil
}

type fakeProductRepo struct{ st *fakeStore }

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.st.products[id], nil
}

// fakeCostRepo resuelve siempre contra el costo de catálogo del producto.
type fakeCostRepo struct{ st *fakeStore }

func (r *fakeCostRepo) ResolveAt(_ context.Context, productID string, _ time.Time) (*entity.ResolvedCost, error) {
	p, ok := r.st.products[productID]
	if !ok {
		return nil, nil
	}
	return &entity.ResolvedCost{
		ProductID: productID, CostPerRoll: p.CostPerRoll, CostPerThousand: p.CostPerThousand,
	}, nil
}

func (r *fakeCostRepo) ListByProduct(_ context.Context, _ string) ([]*entity.CostHistory, error) {
	return nil, nil
}

// fakeTxRunner sin emulación de rollback: los caminos de error transaccional
// se cubren en los tests del caso de uso.
type fakeTxRunner struct{ st *fakeStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
) error) error {
	return fn(&fakeSaleRepo{st: r.st}, &fakeStockRepo{st: r.st})
}

func newTestApp(st *fakeStore) *fiber.App {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	salesUC := appsales.NewSaleUseCase(
		&fakeTxRunner{st: st}, &fakeSaleRepo{st: st}, &fakeStockRepo{st: st},
		appsales.StockDeferred, log)
	reportsUC := reports.NewProfitabilityUseCase(&fakeSaleRepo{st: st}, &fakeCostRepo{st: st}, &fakeProductRepo{st: st}, log)
	stockUC := stock.NewUseCase(&fakeStockRepo{st: st}, &fakeProductRepo{st: st})

	app := fiber.New()
	ihttp.Router(app, ihttp.RouterDeps{SalesUC: salesUC, ReportsUC: reportsUC, StockUC: stockUC})
	return app
}
