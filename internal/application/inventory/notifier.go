package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/event"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// DefaultNotifyTimeout tiempo máximo por publicación cuando no se configura otro.
const DefaultNotifyTimeout = 2 * time.Second

// Notifier publica eventos después del commit. Nunca devuelve error al llamador:
// las fallas se registran en el log y el evento se descarta.
type Notifier struct {
	pub     EventPublisher
	timeout time.Duration
	log     *logger.Logger
}

// NewNotifier construye el notifier. pub nil deja la publicación desactivada.
func NewNotifier(pub EventPublisher, timeout time.Duration, log *logger.Logger) *Notifier {
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{pub: pub, timeout: timeout, log: log.Component("notifier")}
}

// Notify envuelve y publica cada payload. La cancelación de ctx (ej. cliente HTTP que se fue)
// no corta la publicación; solo el timeout propio.
func (n *Notifier) Notify(ctx context.Context, userID string, payloads ...event.Payload) {
	if n == nil || n.pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	for _, p := range payloads {
		env, err := event.New(p, userID)
		if err != nil {
			n.log.Error().Err(err).Str("event_type", string(p.EventType())).Msg("no se pudo construir el evento")
			continue
		}
		if err := n.pub.Publish(ctx, env); err != nil {
			n.log.Warn().Err(err).
				Str("event_id", env.EventID).
				Str("event_type", string(env.EventType)).
				Str("key", env.Key).
				Msg("evento descartado: falla al publicar")
			continue
		}
		n.log.Debug().Str("event_id", env.EventID).Str("event_type", string(env.EventType)).Msg("evento publicado")
	}
}
