package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-ventas/internal/application/dto"
	"github.com/tu-usuario/gestion-ventas/internal/domain"
	"github.com/tu-usuario/gestion-ventas/internal/domain/entity"
	"github.com/tu-usuario/gestion-ventas/internal/domain/repository"
)

// UseCase alta inicial y consulta de existencias. Sin fila de stock los
// ajustes de venta no trackean nada; este es el único camino para crearla.
type UseCase struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(stockRepo repository.StockRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{stockRepo: stockRepo, productRepo: productRepo}
}

// Upsert carga o reemplaza la existencia de un producto (alta inicial o recuento).
func (uc *UseCase) Upsert(ctx context.Context, productID string, in dto.UpsertStockRequest) (*dto.StockResponse, error) {
	if in.Quantity.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: la existencia no puede cargarse negativa", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	s := &entity.Stock{ProductID: productID, Quantity: in.Quantity, UpdatedAt: time.Now()}
	if err := uc.stockRepo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return &dto.StockResponse{ProductID: productID, Quantity: in.Quantity}, nil
}

// Get consulta la existencia actual. La ausencia de fila no es cero: se
// devuelve NotFound.
func (uc *UseCase) Get(ctx context.Context, productID string) (*dto.StockResponse, error) {
	s, err := uc.stockRepo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.StockResponse{
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}, nil
}
