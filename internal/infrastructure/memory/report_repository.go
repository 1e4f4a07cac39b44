package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados calculados sobre el estado confirmado del store.
type ReportRepo struct {
	s *Store
}

func (r *ReportRepo) ProductsByType(ctx context.Context, productTypeID string) ([]repository.ProductByTypeResult, error) {
	products, err := r.s.Products().ListByType(ctx, productTypeID)
	if err != nil {
		return nil, err
	}
	exits := map[string]int{}
	r.s.mu.RLock()
	for _, m := range r.s.movements {
		if m.Type == entity.MovementTypeExit {
			exits[m.ProductID]++
		}
	}
	r.s.mu.RUnlock()

	out := make([]repository.ProductByTypeResult, 0, len(products))
	for _, p := range products {
		out = append(out, repository.ProductByTypeResult{
			ProductID:      p.ID,
			Description:    p.Description,
			QuantityOnHand: p.QuantityOnHand,
			TotalExits:     exits[p.ID],
		})
	}
	return out, nil
}

// ProfitByProduct incluye todos los productos; los que no tienen salidas aparecen en cero.
func (r *ReportRepo) ProfitByProduct(ctx context.Context) ([]repository.ProfitResult, error) {
	r.s.mu.RLock()
	products := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		products = append(products, cloneProduct(p))
	}
	units := map[string]int{}
	profit := map[string]decimal.Decimal{}
	for _, m := range r.s.movements {
		if m.Type != entity.MovementTypeExit {
			continue
		}
		p, ok := r.s.products[m.ProductID]
		if !ok {
			continue
		}
		sale := decimal.Zero
		if m.SaleValue != nil {
			sale = *m.SaleValue
		}
		units[m.ProductID] += m.Quantity
		profit[m.ProductID] = profit[m.ProductID].Add(sale.Sub(p.SupplierValue).Mul(decimal.NewFromInt(int64(m.Quantity))))
	}
	r.s.mu.RUnlock()

	sortByDescription(products)
	out := make([]repository.ProfitResult, 0, len(products))
	for _, p := range products {
		out = append(out, repository.ProfitResult{
			ProductID:   p.ID,
			Description: p.Description,
			UnitsSold:   units[p.ID],
			TotalProfit: profit[p.ID].Round(2),
		})
	}
	return out, nil
}
