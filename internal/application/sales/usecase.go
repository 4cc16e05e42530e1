package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-ventas/internal/application/dto"
	"github.com/tu-usuario/gestion-ventas/internal/domain"
	"github.com/tu-usuario/gestion-ventas/internal/domain/entity"
	"github.com/tu-usuario/gestion-ventas/internal/domain/repository"
	domsales "github.com/tu-usuario/gestion-ventas/internal/domain/sales"
	"github.com/tu-usuario/gestion-ventas/pkg/logger"
)

const dateLayout = "2006-01-02"

// SaleUseCase es el escritor del agregado venta: alta, edición por reemplazo
// completo, cambio de estado, baja y lecturas, para ambas series. Cabecera y
// líneas se escriben en una transacción; los ajustes de stock se aplican
// según la política configurada (diferida o atómica).
type SaleUseCase struct {
	txRunner  TxRunner
	saleRepo  repository.SaleRepository  // atado al pool: lecturas y numeración
	stockRepo repository.StockRepository // atado al pool: ajustes diferidos post-commit
	numbers   *NumberGenerator
	policy    StockPolicy
	log       *logger.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	policy StockPolicy,
	log *logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:  txRunner,
		saleRepo:  saleRepo,
		stockRepo: stockRepo,
		numbers:   NewNumberGenerator(saleRepo),
		policy:    policy,
		log:       log,
	}
}

// stockDelta un ajuste pendiente sobre el libro de existencias.
type stockDelta struct {
	ProductID string
	Delta     decimal.Decimal
}

// debitsOf descuenta stock por cada línea de producto (delta negativo).
func debitsOf(items []*entity.SaleItem) []stockDelta {
	var deltas []stockDelta
	for _, it := range items {
		if it.IsProduct() && it.Quantity.GreaterThan(decimal.Zero) {
			deltas = append(deltas, stockDelta{ProductID: it.ProductID, Delta: it.Quantity.Neg()})
		}
	}
	return deltas
}

// creditsOf revierte stock por cada línea de la foto pre-edición (delta positivo).
func creditsOf(snapshot []repository.ProductItemSnapshot) []stockDelta {
	var deltas []stockDelta
	for _, snap := range snapshot {
		deltas = append(deltas, stockDelta{ProductID: snap.ProductID, Delta: snap.Quantity})
	}
	return deltas
}

// Create da de alta una venta con sus líneas y descuenta stock.
// Toda la validación ocurre antes de cualquier escritura. Si otra creación
// concurrente gana el número de documento (UNIQUE de la tabla), se reintenta
// con un número nuevo hasta agotar el presupuesto.
func (uc *SaleUseCase) Create(ctx context.Context, series domsales.Series, in dto.SaleRequest) (*dto.CreateSaleResponse, error) {
	sale, items, err := uc.buildAggregate(series, in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sale.CreatedAt = now
	sale.UpdatedAt = now

	var resp *dto.CreateSaleResponse
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, err := uc.numbers.Next(ctx, series)
		if err != nil {
			return nil, err
		}
		sale.Number = number

		var txWarnings []dto.StockWarning
		txErr := uc.txRunner.Run(ctx, func(
			saleRepo repository.SaleRepository,
			stockRepo repository.StockRepository,
		) error {
			if err := saleRepo.Create(ctx, series, sale); err != nil {
				return err
			}
			for _, it := range items {
				it.SaleID = sale.ID
				if err := saleRepo.CreateItem(ctx, series, it); err != nil {
					return err
				}
			}
			if uc.policy == StockAtomic {
				w, err := uc.applyAdjustments(ctx, stockRepo, debitsOf(items), true)
				if err != nil {
					return err
				}
				txWarnings = w
			}
			return nil
		})
		if txErr == nil {
			resp = &dto.CreateSaleResponse{ID: sale.ID, Number: number, StockWarnings: txWarnings}
			break
		}
		if errors.Is(txErr, domain.ErrDuplicate) {
			// Otra transacción ocupó el número entre la verificación y el insert.
			uc.log.Warn().Str("series", series.Key).Str("number", number).
				Msg("colisión de número de documento, reintentando")
			continue
		}
		return nil, txErr
	}
	if resp == nil {
		return nil, domain.ErrNumberExhausted
	}

	if uc.policy == StockDeferred {
		resp.StockWarnings, _ = uc.applyAdjustments(ctx, uc.stockRepo, debitsOf(items), false)
	}
	return resp, nil
}

// Update edita una venta por reemplazo completo: cabecera en su lugar (el
// número no se toca), líneas borradas y reinsertadas, stock revertido por la
// foto pre-edición y aplicado por las líneas nuevas.
func (uc *SaleUseCase) Update(ctx context.Context, series domsales.Series, id string, in dto.SaleRequest) (*dto.MutationResponse, error) {
	sale, items, err := uc.buildAggregate(series, in)
	if err != nil {
		return nil, err
	}
	sale.ID = id
	sale.UpdatedAt = time.Now()

	var snapshot []repository.ProductItemSnapshot
	var txWarnings []dto.StockWarning
	err = uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
	) error {
		rows, err := saleRepo.UpdateHeader(ctx, series, sale)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		// Foto pre-edición antes de borrar: es la base de la reversión de stock.
		snapshot, err = saleRepo.ProductItems(ctx, series, id)
		if err != nil {
			return err
		}
		if err := saleRepo.DeleteItems(ctx, series, id); err != nil {
			return err
		}
		for _, it := range items {
			it.SaleID = id
			if err := saleRepo.CreateItem(ctx, series, it); err != nil {
				return err
			}
		}
		if uc.policy == StockAtomic {
			w, err := uc.applyAdjustments(ctx, stockRepo, append(creditsOf(snapshot), debitsOf(items)...), true)
			if err != nil {
				return err
			}
			txWarnings = w
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	warnings := txWarnings
	if uc.policy == StockDeferred {
		warnings, _ = uc.applyAdjustments(ctx, uc.stockRepo, append(creditsOf(snapshot), debitsOf(items)...), false)
	}
	return &dto.MutationResponse{ID: id, Changes: 1, StockWarnings: warnings}, nil
}

// UpdatePending cambia solo estado y/o estado de pago.
func (uc *SaleUseCase) UpdatePending(ctx context.Context, series domsales.Series, id string, in dto.UpdatePendingRequest) (*dto.MutationResponse, error) {
	if in.Status == nil && in.Payment == nil {
		return nil, fmt.Errorf("%w: nada para actualizar", domain.ErrInvalidInput)
	}
	if in.Status != nil && !entity.ValidSaleStatus(*in.Status) {
		return nil, fmt.Errorf("%w: estado inválido %q", domain.ErrInvalidInput, *in.Status)
	}
	if in.Payment != nil && !entity.ValidPaymentStatus(*in.Payment) {
		return nil, fmt.Errorf("%w: estado de pago inválido %q", domain.ErrInvalidInput, *in.Payment)
	}
	rows, err := uc.saleRepo.UpdatePending(ctx, series, id, in.Status, in.Payment)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrNotFound
	}
	return &dto.MutationResponse{ID: id, Changes: rows}, nil
}

// Delete elimina una venta y revierte el stock de sus líneas de producto.
// La cabecera se borra al final dentro de la transacción: si no existe, el
// rollback deja las líneas intactas.
func (uc *SaleUseCase) Delete(ctx context.Context, series domsales.Series, id string) (*dto.MutationResponse, error) {
	var snapshot []repository.ProductItemSnapshot
	var txWarnings []dto.StockWarning
	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
	) error {
		var err error
		snapshot, err = saleRepo.ProductItems(ctx, series, id)
		if err != nil {
			return err
		}
		if err := saleRepo.DeleteItems(ctx, series, id); err != nil {
			return err
		}
		rows, err := saleRepo.Delete(ctx, series, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		if uc.policy == StockAtomic {
			w, err := uc.applyAdjustments(ctx, stockRepo, creditsOf(snapshot), true)
			if err != nil {
				return err
			}
			txWarnings = w
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	warnings := txWarnings
	if uc.policy == StockDeferred {
		warnings, _ = uc.applyAdjustments(ctx, uc.stockRepo, creditsOf(snapshot), false)
	}
	return &dto.MutationResponse{ID: id, Changes: 1, StockWarnings: warnings}, nil
}

// Get obtiene una venta con sus líneas.
func (uc *SaleUseCase) Get(ctx context.Context, series domsales.Series, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, series, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ListItems(ctx, series, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewSaleResponse(sale, items, series.HasTax)
	return &resp, nil
}

// ListRecent devuelve las últimas 10 cabeceras de la serie.
func (uc *SaleUseCase) ListRecent(ctx context.Context, series domsales.Series) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.ListRecent(ctx, series, 10)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		resp = append(resp, dto.NewSaleResponse(sale, nil, series.HasTax))
	}
	return resp, nil
}

// applyAdjustments aplica ajustes de stock. Cero filas afectadas (producto
// sin existencia inicial) es siempre advertencia, nunca error. Con strict
// (política atómica) un error de BD aborta; sin strict se degrada a
// advertencia y se sigue con el resto.
func (uc *SaleUseCase) applyAdjustments(
	ctx context.Context,
	stockRepo repository.StockRepository,
	deltas []stockDelta,
	strict bool,
) ([]dto.StockWarning, error) {
	var warnings []dto.StockWarning
	for _, d := range deltas {
		rows, err := stockRepo.Adjust(ctx, d.ProductID, d.Delta)
		if err != nil {
			if strict {
				return nil, err
			}
			uc.log.Warn().Str("product_id", d.ProductID).Str("delta", d.Delta.String()).
				Err(err).Msg("ajuste de stock falló; la venta ya quedó confirmada")
			warnings = append(warnings, dto.StockWarning{
				ProductID: d.ProductID,
				Message:   "ajuste de stock falló: " + err.Error(),
			})
			continue
		}
		if rows == 0 {
			uc.log.Warn().Str("product_id", d.ProductID).Str("delta", d.Delta.String()).
				Msg("producto sin existencia inicial; stock sin ajustar")
			warnings = append(warnings, dto.StockWarning{
				ProductID: d.ProductID,
				Message:   "producto sin existencia inicial; stock sin ajustar",
			})
		}
	}
	return warnings, nil
}

// buildAggregate valida el pedido completo y arma cabecera y líneas.
// Cualquier falla acá corta la operación antes de toda escritura.
func (uc *SaleUseCase) buildAggregate(series domsales.Series, in dto.SaleRequest) (*entity.Sale, []*entity.SaleItem, error) {
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: fecha inválida (formato AAAA-MM-DD)", domain.ErrInvalidInput)
	}
	if in.CustomerID == "" {
		return nil, nil, fmt.Errorf("%w: cliente requerido", domain.ErrInvalidInput)
	}
	if !entity.ValidSaleStatus(in.Status) {
		return nil, nil, fmt.Errorf("%w: estado inválido %q", domain.ErrInvalidInput, in.Status)
	}
	if !entity.ValidPaymentStatus(in.PaymentStatus) {
		return nil, nil, fmt.Errorf("%w: estado de pago inválido %q", domain.ErrInvalidInput, in.PaymentStatus)
	}
	if !in.ExchangeRate.GreaterThan(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: tipo de cambio debe ser positivo", domain.ErrInvalidInput)
	}
	if in.Subtotal.LessThan(decimal.Zero) || in.TotalUSD.LessThan(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: montos negativos", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, nil, fmt.Errorf("%w: la venta requiere al menos un ítem", domain.ErrInvalidInput)
	}

	sale := &entity.Sale{
		Date:          date,
		CustomerID:    in.CustomerID,
		Status:        in.Status,
		PaymentStatus: in.PaymentStatus,
		Subtotal:      in.Subtotal,
		TotalUSD:      in.TotalUSD,
		ExchangeRate:  in.ExchangeRate,
	}
	if series.HasTax {
		sale.TaxTotal = in.TaxTotal
	}
	sale.RecomputeTotalARS()

	items := make([]*entity.SaleItem, 0, len(in.Items))
	for idx, itIn := range in.Items {
		it := &entity.SaleItem{
			Type:        itIn.Type,
			ProductID:   itIn.ProductID,
			Description: itIn.Description,
			Quantity:    itIn.Quantity,
			UnitPrice:   itIn.UnitPrice,
			Position:    idx,
		}
		if err := it.Validate(); err != nil {
			return nil, nil, fmt.Errorf("ítem %d: %w", idx+1, err)
		}
		it.RecomputeLineTotal()
		items = append(items, it)
	}
	return sale, items, nil
}
