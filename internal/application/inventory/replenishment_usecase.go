package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos en nivel bajo, crítico o agotado.
// Combina el stock actual con las unidades vendidas para priorizar.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
	reportRepo  repository.ReportRepository
	thresholds  inventory.Thresholds
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	productRepo repository.ProductRepository,
	reportRepo repository.ReportRepository,
	thresholds inventory.Thresholds,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		productRepo: productRepo,
		reportRepo:  reportRepo,
		thresholds:  thresholds,
	}
}

// GenerateReplenishmentList devuelve los productos con stock <= umbral bajo, ordenados por
// severidad (agotado, crítico, bajo) y luego por unidades vendidas descendente.
// La cantidad sugerida lleva el stock al doble del umbral bajo.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	total, err := uc.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}
	products, err := uc.productRepo.List(ctx, total, 0)
	if err != nil {
		return nil, err
	}

	var low []*entity.Product
	for _, p := range products {
		if uc.thresholds.Classify(p.QuantityOnHand) != inventory.AlertNone {
			low = append(low, p)
		}
	}
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// Unidades vendidas por producto; sin historial cuenta como cero.
	sold := map[string]int{}
	if profits, err := uc.reportRepo.ProfitByProduct(ctx); err == nil {
		for _, r := range profits {
			sold[r.ProductID] = r.UnitsSold
		}
	}

	target := uc.thresholds.Low * 2
	out := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, p := range low {
		kind := uc.thresholds.Classify(p.QuantityOnHand)
		suggested := target - p.QuantityOnHand
		if suggested < 0 {
			suggested = 0
		}
		out = append(out, dto.ReplenishmentSuggestionDTO{
			ProductID:       p.ID,
			Description:     p.Description,
			CurrentStock:    p.QuantityOnHand,
			AlertType:       string(kind),
			Priority:        kind.Priority(),
			UnitsSold:       sold[p.ID],
			SuggestedQty:    suggested,
			ImmediateAction: kind.ImmediateAction(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := severity(out[i].AlertType), severity(out[j].AlertType)
		if ri != rj {
			return ri < rj
		}
		if out[i].UnitsSold != out[j].UnitsSold {
			return out[i].UnitsSold > out[j].UnitsSold
		}
		return out[i].CurrentStock < out[j].CurrentStock
	})
	return out, nil
}

func severity(alertType string) int {
	switch inventory.AlertKind(alertType) {
	case inventory.AlertOutOfStock:
		return 0
	case inventory.AlertCritical:
		return 1
	default:
		return 2
	}
}
