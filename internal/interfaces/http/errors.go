package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/pkg/logger"
	"github.com/jhoicas/estoque-api/pkg/validator"
)

// errorMapper traduce errores de dominio a respuestas HTTP. Los no mapeados se registran y devuelven 500.
type errorMapper struct {
	log *logger.Logger
}

func (m errorMapper) respond(c *fiber.Ctx, err error) error {
	var stock *domain.InsufficientStockError
	switch {
	case errors.As(err, &stock):
		return c.Status(fiber.StatusConflict).JSON(dto.NewError("INSUFFICIENT_STOCK", stock.Error()))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", message(err)))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", message(err)))
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.NewError("DUPLICATE", message(err)))
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.NewError("CONFLICT", message(err)))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("UNAUTHORIZED", message(err)))
	}
	m.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", "error interno del servidor"))
}

// message quita el prefijo del sentinel ("entrada inválida: ...") si hay detalle.
func message(err error) string {
	s := err.Error()
	for _, sentinel := range []error{domain.ErrInvalidInput, domain.ErrNotFound, domain.ErrDuplicate, domain.ErrConflict, domain.ErrUnauthorized} {
		if rest, ok := strings.CutPrefix(s, sentinel.Error()+": "); ok {
			return rest
		}
	}
	return s
}

// parseBody decodifica y valida el cuerpo JSON. Devuelve domain.ErrInvalidInput si falla.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Invalid("cuerpo inválido")
	}
	if errs := validator.ValidateStruct(out); len(errs) > 0 {
		return domain.Invalid("%s", validator.Message(errs))
	}
	return nil
}
