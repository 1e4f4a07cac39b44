package memory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. Con tx != nil lee las escrituras pendientes de la transacción.
type ProductRepo struct {
	s  *Store
	tx *txState
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.types[p.ProductTypeID]; !ok {
		return domain.NotFound("tipo de produto", p.ProductTypeID)
	}
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if r.tx != nil {
		if p, ok := r.tx.products[id]; ok {
			return cloneProduct(p), nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

// GetForUpdate toma el lock del producto hasta el fin de la transacción y devuelve su estado confirmado.
// Fuera de una transacción equivale a GetByID.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if r.tx != nil {
		if err := r.tx.lock(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Save(_ context.Context, p *entity.Product) error {
	if p.QuantityOnHand < 0 {
		return domain.Invalid("stock negativo para el producto %s", p.ID)
	}
	if r.tx != nil {
		r.tx.products[p.ID] = cloneProduct(p)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

// Update modifica los campos de catálogo y conserva la cantidad confirmada.
// Espera el lock del producto si hay un movimiento en curso.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	if r.tx != nil {
		if err := r.tx.lock(ctx, p.ID); err != nil {
			return err
		}
		if staged, ok := r.tx.products[p.ID]; ok {
			staged.Description = p.Description
			staged.SupplierValue = p.SupplierValue
			staged.ProductTypeID = p.ProductTypeID
			staged.UpdatedAt = p.UpdatedAt
		}
		return r.update(p)
	}
	return r.s.withProductLock(ctx, p.ID, func() error { return r.update(p) })
}

func (r *ProductRepo) update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.NotFound("produto", p.ID)
	}
	if _, ok := r.s.types[p.ProductTypeID]; !ok {
		return domain.NotFound("tipo de produto", p.ProductTypeID)
	}
	next := cloneProduct(cur)
	next.Description = p.Description
	next.SupplierValue = p.SupplierValue
	next.ProductTypeID = p.ProductTypeID
	next.UpdatedAt = p.UpdatedAt
	r.s.products[p.ID] = next
	return nil
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	all := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		all = append(all, cloneProduct(p))
	}
	r.s.mu.RUnlock()

	sortProducts(all)
	if offset >= len(all) {
		return []*entity.Product{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *ProductRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.products), nil
}

func (r *ProductRepo) ListByType(_ context.Context, productTypeID string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.ProductTypeID == productTypeID {
			out = append(out, cloneProduct(p))
		}
	}
	r.s.mu.RUnlock()

	sortByDescription(out)
	return out, nil
}

func (r *ProductRepo) ExistsByType(_ context.Context, productTypeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.ProductTypeID == productTypeID {
			return true, nil
		}
	}
	return false, nil
}

// Delete elimina el producto; conflicto si tiene movimientos registrados.
// Espera el lock del producto, así un movimiento en curso se confirma antes y el borrado ve su registro.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if r.tx != nil {
		if err := r.tx.lock(ctx, id); err != nil {
			return err
		}
		for _, m := range r.tx.movements {
			if m.ProductID == id {
				return domain.Conflict("el producto %s tiene movimientos registrados", id)
			}
		}
		if err := r.delete(id); err != nil {
			return err
		}
		delete(r.tx.products, id)
		return nil
	}
	return r.s.withProductLock(ctx, id, func() error { return r.delete(id) })
}

func (r *ProductRepo) delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.NotFound("produto", id)
	}
	for _, m := range r.s.movements {
		if m.ProductID == id {
			return domain.Conflict("el producto %s tiene movimientos registrados", id)
		}
	}
	delete(r.s.products, id)
	return nil
}
