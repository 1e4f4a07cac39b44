package inventory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/event"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se descarta todo lo escrito; si no, producto y movimiento se confirman juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// EventPublisher entrega eventos a sistemas externos (Kafka, WebSocket, log).
type EventPublisher interface {
	Publish(ctx context.Context, e event.Envelope) error
}
