package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea el producto hasta el fin de la transacción en curso.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Save hace upsert atómico del producto completo (incluida la cantidad).
	Save(ctx context.Context, product *entity.Product) error
	// Update modifica solo los campos de catálogo; nunca QuantityOnHand.
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
	ListByType(ctx context.Context, productTypeID string) ([]*entity.Product, error)
	ExistsByType(ctx context.Context, productTypeID string) (bool, error)
	Delete(ctx context.Context, id string) error
}
