package repository

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// MovementFilter filtros del libro de movimientos. Campos vacíos no filtran.
// Limit <= 0 significa sin límite.
type MovementFilter struct {
	ProductID string
	Type      entity.MovementType
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository libro append-only de movimientos de stock.
// List devuelve los movimientos en orden cronológico ascendente.
type StockMovementRepository interface {
	// Append asigna ID y Timestamp si vienen vacíos y persiste el movimiento.
	Append(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	Count(ctx context.Context, filter MovementFilter) (int, error)
	ExistsByProduct(ctx context.Context, productID string) (bool, error)
}
