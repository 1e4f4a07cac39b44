package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// ReportUseCase reportes de productos por tipo y ganancia por producto.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	typeRepo   repository.ProductTypeRepository
	generator  ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso. generator puede ser nil si no se exporta PDF.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	typeRepo repository.ProductTypeRepository,
	generator ReportPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, typeRepo: typeRepo, generator: generator}
}

// ProductsByType lista los productos de un tipo con stock y total de salidas.
func (uc *ReportUseCase) ProductsByType(ctx context.Context, typeID string) ([]dto.ProductByTypeDTO, error) {
	if typeID == "" {
		return nil, domain.Invalid("tipoProdutoId es obligatorio")
	}
	t, err := uc.typeRepo.GetByID(ctx, typeID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFound("tipo de produto", typeID)
	}
	rows, err := uc.reportRepo.ProductsByType(ctx, typeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductByTypeDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductByTypeDTO{
			ID:             r.ProductID,
			Description:    r.Description,
			QuantityOnHand: r.QuantityOnHand,
			TotalExits:     r.TotalExits,
		})
	}
	return out, nil
}

// ProfitByProduct unidades vendidas y ganancia total de cada producto.
func (uc *ReportUseCase) ProfitByProduct(ctx context.Context) ([]dto.ProfitByProductDTO, error) {
	rows, err := uc.reportRepo.ProfitByProduct(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProfitByProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProfitByProductDTO{
			ID:          r.ProductID,
			Description: r.Description,
			UnitsSold:   r.UnitsSold,
			TotalProfit: r.TotalProfit,
		})
	}
	return out, nil
}

// ProfitByProductPDF genera el reporte de ganancia en PDF y el nombre de archivo sugerido.
func (uc *ReportUseCase) ProfitByProductPDF(ctx context.Context) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("report: generador PDF no configurado")
	}
	rows, err := uc.ProfitByProduct(ctx)
	if err != nil {
		return nil, "", err
	}
	now := time.Now()
	pdf, err := uc.generator.ProfitReportPDF(ctx, rows, now)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("lucro-por-produto-%s.pdf", now.Format("20060102")), nil
}
