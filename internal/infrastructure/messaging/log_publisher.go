package messaging

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/event"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

var _ inventory.EventPublisher = (*LogPublisher)(nil)

// LogPublisher registra cada evento en el log. Se usa cuando Kafka está desactivado.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log.Component("events")}
}

func (p *LogPublisher) Publish(_ context.Context, e event.Envelope) error {
	p.log.Info().
		Str("event_id", e.EventID).
		Str("event_type", string(e.EventType)).
		Str("key", e.Key).
		Str("user_id", e.UserID).
		RawJSON("payload", e.Payload).
		Msg("evento")
	return nil
}
