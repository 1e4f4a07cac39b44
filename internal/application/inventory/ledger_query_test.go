package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
)

func TestLedgerQuery_ListYGet(t *testing.T) {
	s, id := newStore(t, 0, "100")
	post := newUseCase(s, nil)
	ctx := context.Background()

	_, err := post.PostMovement(ctx, inventory.PostMovementInput{ProductID: id, Type: "ENTRADA", Quantity: 10})
	require.NoError(t, err)
	exit, err := post.PostMovement(ctx, inventory.PostMovementInput{ProductID: id, Type: "SAIDA", Quantity: 4})
	require.NoError(t, err)

	q := inventory.NewLedgerQueryUseCase(s.Movements())

	all, err := q.List(ctx, dto.MovementFilterRequest{ProductID: id})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.Equal(t, "ENTRADA", all.Items[0].Type)
	assert.Equal(t, "SAIDA", all.Items[1].Type)
	assert.Equal(t, 2, all.Page.Total)
	assert.Equal(t, 20, all.Page.Limit)

	exits, err := q.List(ctx, dto.MovementFilterRequest{Type: "exit"})
	require.NoError(t, err)
	require.Len(t, exits.Items, 1)
	assert.Equal(t, exit.ID, exits.Items[0].ID)

	got, err := q.Get(ctx, exit.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Quantity)
	require.NotNil(t, got.SaleValue)
	assert.Equal(t, "135", got.SaleValue.String())

	_, err = q.Get(ctx, "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedgerQuery_FiltrosInvalidos(t *testing.T) {
	s, _ := newStore(t, 0, "100")
	q := inventory.NewLedgerQueryUseCase(s.Movements())
	ctx := context.Background()

	_, err := q.List(ctx, dto.MovementFilterRequest{Type: "TRANSFER"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	from := time.Now()
	to := from.Add(-time.Hour)
	_, err = q.List(ctx, dto.MovementFilterRequest{From: &from, To: &to})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
