package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductTypeRepository = (*ProductTypeRepo)(nil)

// ProductTypeRepo implementación del puerto ProductTypeRepository sobre PostgreSQL.
type ProductTypeRepo struct {
	q Querier
}

// NewProductTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductTypeRepository(q Querier) *ProductTypeRepo {
	return &ProductTypeRepo{q: q}
}

func (r *ProductTypeRepo) Create(ctx context.Context, t *entity.ProductType) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO product_types (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		t.ID, t.Name, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product type: %w", err)
	}
	return nil
}

func (r *ProductTypeRepo) GetByID(ctx context.Context, id string) (*entity.ProductType, error) {
	return r.getOne(ctx, `SELECT id, name, created_at, updated_at FROM product_types WHERE id = $1`, id)
}

func (r *ProductTypeRepo) GetByName(ctx context.Context, name string) (*entity.ProductType, error) {
	return r.getOne(ctx, `SELECT id, name, created_at, updated_at FROM product_types WHERE lower(name) = lower($1)`, name)
}

func (r *ProductTypeRepo) Update(ctx context.Context, t *entity.ProductType) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE product_types SET name = $2, updated_at = $3 WHERE id = $1`,
		t.ID, t.Name, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product type: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("tipo de produto", t.ID)
	}
	return nil
}

func (r *ProductTypeRepo) List(ctx context.Context) ([]*entity.ProductType, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at, updated_at FROM product_types ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list product types: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductType
	for rows.Next() {
		var t entity.ProductType
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Delete elimina el tipo. Si hay productos que lo referencian la FK lo impide (conflicto).
func (r *ProductTypeRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM product_types WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Conflict("el tipo de producto %s tiene productos asociados", id)
		}
		return fmt.Errorf("delete product type: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("tipo de produto", id)
	}
	return nil
}

func (r *ProductTypeRepo) getOne(ctx context.Context, sql string, arg string) (*entity.ProductType, error) {
	var t entity.ProductType
	err := r.q.QueryRow(ctx, sql, arg).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product type: %w", err)
	}
	return &t, nil
}
