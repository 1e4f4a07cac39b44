package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos en memoria (append-only).
type StockMovementRepo struct {
	s  *Store
	tx *txState
}

// Append asigna ID y Timestamp si faltan. Dentro de una transacción queda pendiente hasta el commit.
func (r *StockMovementRepo) Append(_ context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	if r.tx != nil {
		if _, ok := r.tx.products[m.ProductID]; !ok && !r.exists(m.ProductID) {
			return domain.NotFound("produto", m.ProductID)
		}
		r.tx.movements = append(r.tx.movements, cloneMovement(m))
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[m.ProductID]; !ok {
		return domain.NotFound("produto", m.ProductID)
	}
	r.s.movements = append(r.s.movements, cloneMovement(m))
	return nil
}

func (r *StockMovementRepo) exists(productID string) bool {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.products[productID]
	return ok
}

func (r *StockMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			return cloneMovement(m), nil
		}
	}
	return nil, nil
}

// List devuelve los movimientos confirmados que cumplen el filtro, por timestamp ascendente
// (empates en orden de registro).
func (r *StockMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	out := r.matching(f)
	if f.Offset >= len(out) {
		return []*entity.StockMovement{}, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *StockMovementRepo) Count(_ context.Context, f repository.MovementFilter) (int, error) {
	return len(r.matching(f)), nil
}

func (r *StockMovementRepo) ExistsByProduct(_ context.Context, productID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *StockMovementRepo) matching(f repository.MovementFilter) []*entity.StockMovement {
	r.s.mu.RLock()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.From != nil && m.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && m.Timestamp.After(*f.To) {
			continue
		}
		out = append(out, cloneMovement(m))
	}
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}
