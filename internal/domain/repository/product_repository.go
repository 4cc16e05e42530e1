package repository

import (
	"context"

	"github.com/tu-usuario/gestion-ventas/internal/domain/entity"
)

// ProductRepository define el puerto de lectura del catálogo de productos.
// El ABM de productos vive en otro módulo; acá solo se consulta.
type ProductRepository interface {
	// GetByID devuelve nil cuando el producto no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
