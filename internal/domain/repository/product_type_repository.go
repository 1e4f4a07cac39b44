package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ProductTypeRepository define el puerto de persistencia para ProductType (DIP).
type ProductTypeRepository interface {
	Create(ctx context.Context, productType *entity.ProductType) error
	GetByID(ctx context.Context, id string) (*entity.ProductType, error)
	// GetByName compara sin distinguir mayúsculas.
	GetByName(ctx context.Context, name string) (*entity.ProductType, error)
	Update(ctx context.Context, productType *entity.ProductType) error
	List(ctx context.Context) ([]*entity.ProductType, error)
	Delete(ctx context.Context, id string) error
}
