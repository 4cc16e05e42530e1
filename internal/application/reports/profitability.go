package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-ventas/internal/application/dto"
	"github.com/tu-usuario/gestion-ventas/internal/domain"
	"github.com/tu-usuario/gestion-ventas/internal/domain/repository"
	domsales "github.com/tu-usuario/gestion-ventas/internal/domain/sales"
	"github.com/tu-usuario/gestion-ventas/pkg/logger"
)

const dateLayout = "2006-01-02"

// ProfitabilityUseCase arma el listado filtrado por fechas con costos
// históricos resueltos y ganancia realizada por venta, y expone el historial
// de costos por producto. Solo lecturas: nunca escribe ventas, stock ni
// historial.
type ProfitabilityUseCase struct {
	saleRepo    repository.SaleRepository
	costRepo    repository.CostHistoryRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewProfitabilityUseCase construye el caso de uso.
func NewProfitabilityUseCase(
	saleRepo repository.SaleRepository,
	costRepo repository.CostHistoryRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *ProfitabilityUseCase {
	return &ProfitabilityUseCase{
		saleRepo:    saleRepo,
		costRepo:    costRepo,
		productRepo: productRepo,
		log:         log,
	}
}

// ListFiltered devuelve las ventas del rango [start, end] con sus líneas, el
// costo vigente a la fecha de cada venta resuelto por línea, la ganancia
// realizada por venta y los totales del rango.
func (uc *ProfitabilityUseCase) ListFiltered(ctx context.Context, series domsales.Series, startDate, endDate string) (*dto.FilteredSalesResponse, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: startDate inválida (formato AAAA-MM-DD)", domain.ErrInvalidInput)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: endDate inválida (formato AAAA-MM-DD)", domain.ErrInvalidInput)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: endDate anterior a startDate", domain.ErrInvalidInput)
	}

	sales, err := uc.saleRepo.ListByDateRange(ctx, series, start, end)
	if err != nil {
		return nil, err
	}

	resp := &dto.FilteredSalesResponse{Sales: make([]dto.SaleProfitResponse, 0, len(sales))}
	for _, sale := range sales {
		items, err := uc.saleRepo.ListItems(ctx, series, sale.ID)
		if err != nil {
			return nil, err
		}

		// El costo se resuelve por línea, no por venta: una misma venta puede
		// mezclar productos con historiales distintos.
		materialCost := decimal.Zero
		for _, it := range items {
			if !it.IsProduct() {
				continue
			}
			cost, err := uc.costRepo.ResolveAt(ctx, it.ProductID, sale.Date)
			if err != nil {
				return nil, err
			}
			if cost == nil {
				// Sin costo resoluble: la línea aporta 0 al costo material.
				uc.log.Warn().Str("sale_id", sale.ID).Str("product_id", it.ProductID).
					Msg("línea sin costo resoluble, aporta 0 al costo material")
				continue
			}
			roll := cost.CostPerRoll
			thousand := cost.CostPerThousand
			it.CostPerRoll = &roll
			it.CostPerThousand = &thousand
			materialCost = materialCost.Add(roll.Mul(it.Quantity))
		}

		withholdings := decimal.Zero
		if series.HasTax {
			withholdings = domsales.Withholdings(sale.Subtotal)
		}
		gain := domsales.RealizedGain(series, sale.Subtotal, sale.TotalUSD, materialCost)

		resp.Sales = append(resp.Sales, dto.SaleProfitResponse{
			SaleResponse: dto.NewSaleResponse(sale, items, series.HasTax),
			MaterialCost: materialCost,
			Withholdings: withholdings,
			RealizedGain: gain,
		})

		resp.Summary.Count++
		resp.Summary.TotalUSD = resp.Summary.TotalUSD.Add(sale.TotalUSD)
		resp.Summary.MaterialCost = resp.Summary.MaterialCost.Add(materialCost)
		resp.Summary.Withholdings = resp.Summary.Withholdings.Add(withholdings)
		resp.Summary.RealizedGain = resp.Summary.RealizedGain.Add(gain)
	}
	return resp, nil
}

// ProductCosts devuelve el costo actual de catálogo de un producto y su
// historial completo, más reciente primero.
func (uc *ProfitabilityUseCase) ProductCosts(ctx context.Context, productID string) (*dto.ProductCostsResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	history, err := uc.costRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductCostsResponse{
		ProductID:       product.ID,
		ProductName:     product.Name,
		CostPerRoll:     product.CostPerRoll,
		CostPerThousand: product.CostPerThousand,
		History:         make([]dto.CostHistoryEntry, 0, len(history)),
	}
	for _, h := range history {
		resp.History = append(resp.History, dto.CostHistoryEntry{
			ValidFrom:       h.ValidFrom.Format(dateLayout),
			CostPerRoll:     h.CostPerRoll,
			CostPerThousand: h.CostPerThousand,
		})
	}
	return resp, nil
}
