package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
)

// ReportPDFGenerator puerto de salida para exportar reportes en PDF (maroto en infraestructura).
type ReportPDFGenerator interface {
	ProfitReportPDF(ctx context.Context, rows []dto.ProfitByProductDTO, generatedAt time.Time) ([]byte, error)
}
