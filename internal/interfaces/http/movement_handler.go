package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
)

// MovementHandler maneja el registro y la consulta de movimientos de stock.
type MovementHandler struct {
	post   *inventory.PostMovementUseCase
	ledger *inventory.LedgerQueryUseCase
	errs   errorMapper
}

// NewMovementHandler construye el handler.
func NewMovementHandler(post *inventory.PostMovementUseCase, ledger *inventory.LedgerQueryUseCase, errs errorMapper) *MovementHandler {
	return &MovementHandler{post: post, ledger: ledger, errs: errs}
}

// Post godoc
// @Summary      Registrar movimiento de stock
// @Description  ENTRADA suma y SAIDA resta. Una salida sin valorVenda usa valorFornecedor × 1,35.
// @Tags         movimentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostMovementRequest  true  "tipoMovimentacao, quantidadeMovimentada, valorVenda?, produtoId"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movimentos [post]
func (h *MovementHandler) Post(c *fiber.Ctx) error {
	var in dto.PostMovementRequest
	if err := parseBody(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	m, err := h.post.PostMovement(c.UserContext(), inventory.PostMovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		SaleValue: in.SaleValue,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToMovementResponse(m))
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movimentos
// @Security     Bearer
// @Produce      json
// @Param        produtoId  query  string  false  "ID del producto"
// @Param        tipo       query  string  false  "ENTRADA | SAIDA"
// @Param        desde      query  string  false  "Fecha inicial (RFC3339 o AAAA-MM-DD)"
// @Param        ate        query  string  false  "Fecha final (RFC3339 o AAAA-MM-DD, inclusiva)"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movimentos [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.MovementFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return h.errs.respond(c, domain.Invalid("parámetros de consulta inválidos"))
	}
	from, err := parseDate(c.Query("desde"), false)
	if err != nil {
		return h.errs.respond(c, err)
	}
	to, err := parseDate(c.Query("ate"), true)
	if err != nil {
		return h.errs.respond(c, err)
	}
	in.From, in.To = from, to

	out, err := h.ledger.List(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movimentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimentos/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ledger.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// parseDate acepta RFC3339 o AAAA-MM-DD. Una fecha sin hora usada como límite superior
// cubre el día completo.
func parseDate(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, domain.Invalid("fecha inválida %q (RFC3339 o AAAA-MM-DD)", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
