package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain"
)

// ReportHandler reportes de stock y ganancia.
type ReportHandler struct {
	reports       *usecase.ReportUseCase
	replenishment *inventory.ReplenishmentUseCase
	errs          errorMapper
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *usecase.ReportUseCase, replenishment *inventory.ReplenishmentUseCase, errs errorMapper) *ReportHandler {
	return &ReportHandler{reports: reports, replenishment: replenishment, errs: errs}
}

// ProductsByType godoc
// @Summary      Productos por tipo
// @Description  Stock actual y cantidad de salidas de cada producto del tipo.
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Param        tipoProdutoId  query  string  true  "ID del tipo de producto"
// @Success      200  {array}   dto.ProductByTypeDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/relatorios/produtos-por-tipo [get]
func (h *ReportHandler) ProductsByType(c *fiber.Ctx) error {
	typeID := c.Query("tipoProdutoId")
	if typeID == "" {
		return h.errs.respond(c, domain.Invalid("tipoProdutoId es requerido"))
	}
	out, err := h.reports.ProductsByType(c.UserContext(), typeID)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// ProfitByProduct godoc
// @Summary      Ganancia por producto
// @Description  Unidades vendidas y ganancia total ((valorVenda − valorFornecedor) × cantidad) sobre las salidas.
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProfitByProductDTO
// @Router       /api/relatorios/lucro-por-produto [get]
func (h *ReportHandler) ProfitByProduct(c *fiber.Ctx) error {
	out, err := h.reports.ProfitByProduct(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// ProfitByProductPDF godoc
// @Summary      Ganancia por producto (PDF)
// @Tags         relatorios
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/relatorios/lucro-por-produto/pdf [get]
func (h *ReportHandler) ProfitByProductPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.reports.ProfitByProductPDF(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Productos en nivel bajo, crítico o agotado con la cantidad sugerida de compra.
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/relatorios/reposicao [get]
func (h *ReportHandler) Replenishment(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"itens": list,
	})
}
