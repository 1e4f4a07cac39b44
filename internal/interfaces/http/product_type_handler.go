package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
)

// ProductTypeHandler CRUD de tipos de producto.
type ProductTypeHandler struct {
	uc   *usecase.ProductTypeUseCase
	errs errorMapper
}

func NewProductTypeHandler(uc *usecase.ProductTypeUseCase, errs errorMapper) *ProductTypeHandler {
	return &ProductTypeHandler{uc: uc, errs: errs}
}

// Create godoc
// @Summary      Crear tipo de producto
// @Tags         tipos-produto
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductTypeRequest  true  "Nombre"
// @Success      201   {object}  dto.ProductTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tipos-produto [post]
func (h *ProductTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductTypeRequest
	if err := parseBody(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tipo de producto
// @Tags         tipos-produto
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ProductTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tipos-produto/{id} [get]
func (h *ProductTypeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tipos de producto
// @Tags         tipos-produto
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductTypeResponse
// @Router       /api/tipos-produto [get]
func (h *ProductTypeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar tipo de producto
// @Tags         tipos-produto
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.ProductTypeRequest  true  "Nombre"
// @Success      200   {object}  dto.ProductTypeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tipos-produto/{id} [put]
func (h *ProductTypeHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductTypeRequest
	if err := parseBody(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tipo de producto
// @Description  Falla con 409 mientras haya productos de este tipo.
// @Tags         tipos-produto
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tipos-produto/{id} [delete]
func (h *ProductTypeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.errs.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
