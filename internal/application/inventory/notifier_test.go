package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/event"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// blockingPublisher espera hasta que el contexto termine.
type blockingPublisher struct {
	calls int
}

func (b *blockingPublisher) Publish(ctx context.Context, _ event.Envelope) error {
	b.calls++
	<-ctx.Done()
	return ctx.Err()
}

func TestNotifier_RespetaTimeout(t *testing.T) {
	pub := &blockingPublisher{}
	n := inventory.NewNotifier(pub, 30*time.Millisecond, logger.Nop())

	start := time.Now()
	n.Notify(context.Background(), "", event.ProductChanged{Action: event.ActionCreated, ProductID: "p1"})

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, pub.calls)
}

func TestNotifier_IgnoraCancelacionDelLlamador(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), mock.Anything).Return(nil).Once()
	n := inventory.NewNotifier(pub, time.Second, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.Notify(ctx, "u-1", event.ProductChanged{Action: event.ActionDeleted, ProductID: "p1"})

	pub.AssertExpectations(t)
}

func TestNotifier_NilNoPublica(t *testing.T) {
	var n *inventory.Notifier
	assert.NotPanics(t, func() {
		n.Notify(context.Background(), "", event.ProductChanged{ProductID: "p1"})
	})
	assert.NotPanics(t, func() {
		inventory.NewNotifier(nil, 0, nil).Notify(context.Background(), "", event.ProductChanged{ProductID: "p1"})
	})
}
