package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductTypeRepository = (*ProductTypeRepo)(nil)

// ProductTypeRepo tipos de producto en memoria. El nombre es único sin distinguir mayúsculas.
type ProductTypeRepo struct {
	s *Store
}

func (r *ProductTypeRepo) Create(_ context.Context, t *entity.ProductType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.types[t.ID]; ok {
		return domain.ErrDuplicate
	}
	if r.nameTaken(t.Name, "") {
		return domain.ErrDuplicate
	}
	c := *t
	r.s.types[t.ID] = &c
	return nil
}

func (r *ProductTypeRepo) GetByID(_ context.Context, id string) (*entity.ProductType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.types[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (r *ProductTypeRepo) GetByName(_ context.Context, name string) (*entity.ProductType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.types {
		if strings.EqualFold(t.Name, name) {
			c := *t
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ProductTypeRepo) Update(_ context.Context, t *entity.ProductType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.types[t.ID]
	if !ok {
		return domain.NotFound("tipo de produto", t.ID)
	}
	if r.nameTaken(t.Name, t.ID) {
		return domain.ErrDuplicate
	}
	next := *cur
	next.Name = t.Name
	next.UpdatedAt = t.UpdatedAt
	r.s.types[t.ID] = &next
	return nil
}

func (r *ProductTypeRepo) List(_ context.Context) ([]*entity.ProductType, error) {
	r.s.mu.RLock()
	out := make([]*entity.ProductType, 0, len(r.s.types))
	for _, t := range r.s.types {
		c := *t
		out = append(out, &c)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete elimina el tipo; conflicto si algún producto lo referencia.
func (r *ProductTypeRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.types[id]; !ok {
		return domain.NotFound("tipo de produto", id)
	}
	for _, p := range r.s.products {
		if p.ProductTypeID == id {
			return domain.Conflict("el tipo de producto %s tiene productos asociados", id)
		}
	}
	delete(r.s.types, id)
	return nil
}

// nameTaken requiere r.s.mu tomado.
func (r *ProductTypeRepo) nameTaken(name, exceptID string) bool {
	for id, t := range r.s.types {
		if id != exceptID && strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}
