package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostMovementRequest cuerpo de POST /api/movimentos.
type PostMovementRequest struct {
	Type      string           `json:"tipoMovimentacao" validate:"required"`
	Quantity  int              `json:"quantidadeMovimentada" validate:"gt=0,lte=2147483647"`
	SaleValue *decimal.Decimal `json:"valorVenda" validate:"omitempty,gt=0"`
	ProductID string           `json:"produtoId" validate:"required"`
}

// MovementFilterRequest filtros de GET /api/movimentos.
type MovementFilterRequest struct {
	PageRequest
	ProductID string     `query:"produtoId"`
	Type      string     `query:"tipo"`
	From      *time.Time `query:"-"`
	To        *time.Time `query:"-"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID        string           `json:"id"`
	Type      string           `json:"tipoMovimentacao"`
	Quantity  int              `json:"quantidadeMovimentada"`
	SaleValue *decimal.Decimal `json:"valorVenda,omitempty"`
	MovedAt   time.Time        `json:"dataMovimento"`
	ProductID string           `json:"produtoId"`
	CreatedBy string           `json:"usuario,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
