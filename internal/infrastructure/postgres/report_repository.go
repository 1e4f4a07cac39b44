package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// ProductsByType lista los productos del tipo con su stock y el número de salidas registradas.
func (r *ReportRepo) ProductsByType(ctx context.Context, productTypeID string) ([]repository.ProductByTypeResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.description, p.quantity_on_hand,
		       COUNT(m.id) FILTER (WHERE m.movement_type = 'SAIDA') AS total_exits
		FROM products p
		LEFT JOIN stock_movements m ON m.product_id = p.id
		WHERE p.product_type_id = $1
		GROUP BY p.id, p.description, p.quantity_on_hand
		ORDER BY p.description, p.id`, productTypeID)
	if err != nil {
		return nil, fmt.Errorf("report products by type: %w", err)
	}
	defer rows.Close()
	var out []repository.ProductByTypeResult
	for rows.Next() {
		var res repository.ProductByTypeResult
		if err := rows.Scan(&res.ProductID, &res.Description, &res.QuantityOnHand, &res.TotalExits); err != nil {
			return nil, fmt.Errorf("scan products by type: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// ProfitByProduct suma unidades vendidas y ganancia de las salidas de cada producto.
// Los productos sin salidas aparecen con cero.
func (r *ReportRepo) ProfitByProduct(ctx context.Context) ([]repository.ProfitResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.description,
		       COALESCE(SUM(m.quantity), 0)::int AS units_sold,
		       COALESCE(SUM((COALESCE(m.sale_value, 0) - p.supplier_value) * m.quantity), 0)::numeric(15,2) AS total_profit
		FROM products p
		LEFT JOIN stock_movements m ON m.product_id = p.id AND m.movement_type = 'SAIDA'
		GROUP BY p.id, p.description, p.supplier_value
		ORDER BY p.description, p.id`)
	if err != nil {
		return nil, fmt.Errorf("report profit by product: %w", err)
	}
	defer rows.Close()
	var out []repository.ProfitResult
	for rows.Next() {
		var res repository.ProfitResult
		if err := rows.Scan(&res.ProductID, &res.Description, &res.UnitsSold, &res.TotalProfit); err != nil {
			return nil, fmt.Errorf("scan profit by product: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
