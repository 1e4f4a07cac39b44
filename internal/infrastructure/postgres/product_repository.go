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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, description, supplier_value, quantity_on_hand, product_type_id, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Description, &p.SupplierValue, &p.QuantityOnHand, &p.ProductTypeID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Description, p.SupplierValue, p.QuantityOnHand, p.ProductTypeID, p.CreatedAt, p.UpdatedAt,
	)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.NotFound("tipo de produto", p.ProductTypeID)
	case isCheckViolation(err):
		return domain.Invalid("valorFornecedor debe ser positivo y la cantidad no negativa")
	}
	return fmt.Errorf("insert product: %w", err)
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate lee el producto con SELECT ... FOR UPDATE. Solo tiene efecto dentro de una tx:
// las demás transacciones sobre el mismo producto esperan al Commit/Rollback.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock product: %w", err)
	}
	return p, nil
}

// Save hace upsert del producto completo, incluida la cantidad en stock.
func (r *ProductRepo) Save(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			description = EXCLUDED.description,
			supplier_value = EXCLUDED.supplier_value,
			quantity_on_hand = EXCLUDED.quantity_on_hand,
			product_type_id = EXCLUDED.product_type_id,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.Description, p.SupplierValue, p.QuantityOnHand, p.ProductTypeID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.Invalid("stock negativo para el producto %s", p.ID)
		}
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

// Update actualiza los datos de catálogo. No modifica quantity_on_hand (se maneja vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET description = $2, supplier_value = $3, product_type_id = $4, updated_at = $5
		WHERE id = $1`,
		p.ID, p.Description, p.SupplierValue, p.ProductTypeID, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("tipo de produto", p.ProductTypeID)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("produto", p.ID)
	}
	return nil
}

// List lista productos con paginación, más antiguos primero.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id LIMIT $1 OFFSET $2`, limit, offset)
}

// Count total de productos (para paginación).
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// ListByType lista los productos de un tipo ordenados por descripción.
func (r *ProductRepo) ListByType(ctx context.Context, productTypeID string) ([]*entity.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE product_type_id = $1 ORDER BY description, id`, productTypeID)
}

// ExistsByType indica si algún producto referencia el tipo.
func (r *ProductRepo) ExistsByType(ctx context.Context, productTypeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE product_type_id = $1)`, productTypeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists products by type: %w", err)
	}
	return exists, nil
}

// Delete elimina un producto por ID. Si tiene movimientos la FK lo impide (conflicto).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Conflict("el producto %s tiene movimientos registrados", id)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("produto", id)
	}
	return nil
}

func (r *ProductRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
