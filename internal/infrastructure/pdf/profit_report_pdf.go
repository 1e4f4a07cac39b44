// Package pdf genera reportes en PDF con Maroto v2.
//
// Layout del reporte de ganancia (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Relatório de Lucro por Produto        │  Gerado em: fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Produto | Descrição | Unid. vendidas | Lucro total   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades / lucro                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
)

var _ usecase.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorRed     = &props.Color{Red: 170, Green: 20, Blue: 20}
)

// MarotoReportGenerator implementa usecase.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	company string
}

// NewMarotoReportGenerator construye el generador; company aparece como autor y en el encabezado.
func NewMarotoReportGenerator(company string) *MarotoReportGenerator {
	return &MarotoReportGenerator{company: company}
}

// ProfitReportPDF genera el PDF del reporte de ganancia por producto.
func (g *MarotoReportGenerator) ProfitReportPDF(_ context.Context, rows []dto.ProfitByProductDTO, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Lucro por Produto", true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(rows)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(company string, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("RELATÓRIO DE LUCRO POR PRODUTO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(company, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Gerado em: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 3, align.Left),
		h("Descrição", 5, align.Left),
		h("Unid. vendidas", 2, align.Right),
		h("Lucro total", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(rows []dto.ProfitByProductDTO) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		profitProps := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if r.TotalProfit.IsNegative() {
			profitProps.Color = colorRed
		}
		out = append(out, row.New(7).Add(
			col.New(3).Add(text.New(shortID(r.ID), props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
			col.New(5).Add(text.New(r.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", r.UnitsSold), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(FormatBRL(r.TotalProfit), profitProps)),
		))
	}
	return out
}

func totalsRow(rows []dto.ProfitByProductDTO) core.Row {
	units := 0
	profit := decimal.Zero
	for _, r := range rows {
		units += r.UnitsSold
		profit = profit.Add(r.TotalProfit)
	}
	bold := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1})
	}
	return row.New(12).Add(
		col.New(8).Add(bold("TOTAL:")),
		col.New(2).Add(bold(fmt.Sprintf("%d", units))),
		col.New(2).Add(bold(FormatBRL(profit))),
	)
}

// shortID recorta UUIDs largos para la columna de producto.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatBRL formatea un valor como moneda brasileña: 1234.5 → "R$ 1.234,50".
func FormatBRL(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	sign := ""
	if v.IsNegative() {
		sign = "-"
	}
	return sign + "R$ " + b.String() + "," + frac
}
