package messaging

import (
	"context"
	"errors"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/event"
)

var _ inventory.EventPublisher = MultiPublisher(nil)

// MultiPublisher entrega el evento a todos los publishers; una falla no impide los demás.
type MultiPublisher []inventory.EventPublisher

func (m MultiPublisher) Publish(ctx context.Context, e event.Envelope) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
