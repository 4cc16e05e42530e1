package sales

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tu-usuario/gestion-ventas/internal/domain"
	"github.com/tu-usuario/gestion-ventas/internal/domain/repository"
	domsales "github.com/tu-usuario/gestion-ventas/internal/domain/sales"
)

// maxNumberAttempts acota tanto la búsqueda de un candidato libre como los
// reintentos de transacción cuando otra creación concurrente gana el número.
const maxNumberAttempts = 10

// NumberGenerator produce el siguiente número de documento libre de una serie.
// Propone max+1 (comparación numérica; los valores legados no numéricos
// cuentan como 0) y verifica que el candidato exacto no exista, defensa
// contra series con números dispersos. La garantía final de unicidad la da
// el UNIQUE(number) de la tabla: si dos creaciones concurrentes proponen el
// mismo número, una pierde el insert y el caso de uso reintenta.
type NumberGenerator struct {
	saleRepo repository.SaleRepository
}

// NewNumberGenerator construye el generador.
func NewNumberGenerator(saleRepo repository.SaleRepository) *NumberGenerator {
	return &NumberGenerator{saleRepo: saleRepo}
}

// Next devuelve el siguiente número libre de la serie como string decimal.
// Agotar los intentos es fatal para la operación que lo pidió.
func (g *NumberGenerator) Next(ctx context.Context, s domsales.Series) (string, error) {
	max, err := g.saleRepo.MaxNumber(ctx, s)
	if err != nil {
		return "", fmt.Errorf("leer máximo de la serie %s: %w", s.Key, err)
	}
	candidate := max + 1
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number := strconv.FormatInt(candidate, 10)
		exists, err := g.saleRepo.NumberExists(ctx, s, number)
		if err != nil {
			return "", fmt.Errorf("verificar número %s: %w", number, err)
		}
		if !exists {
			return number, nil
		}
		candidate++
	}
	return "", domain.ErrNumberExhausted
}
