package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

func TestMovementWhere(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	where, args := movementWhere(repository.MovementFilter{})
	assert.Empty(t, where)
	assert.Nil(t, args)

	where, args = movementWhere(repository.MovementFilter{
		ProductID: "p1",
		Type:      entity.MovementTypeExit,
		From:      &from,
		To:        &to,
	})
	assert.Equal(t, " WHERE product_id = $1 AND movement_type = $2 AND moved_at >= $3 AND moved_at <= $4", where)
	assert.Equal(t, []any{"p1", string(entity.MovementTypeExit), from, to}, args)

	where, args = movementWhere(repository.MovementFilter{To: &to})
	assert.Equal(t, " WHERE moved_at <= $1", where)
	assert.Len(t, args, 1)
}

func TestPgCodes(t *testing.T) {
	wrap := func(code string) error {
		return fmt.Errorf("insert: %w", &pgconn.PgError{Code: code})
	}
	assert.True(t, isUniqueViolation(wrap("23505")))
	assert.True(t, isForeignKeyViolation(wrap("23503")))
	assert.True(t, isCheckViolation(wrap("23514")))
	assert.False(t, isUniqueViolation(errors.New("otro")))
	assert.Empty(t, pgCode(nil))
}

func TestWithIPv4Host_DejaIPsYURLsInvalidas(t *testing.T) {
	dsn := "postgres://u:p@127.0.0.1:5432/estoque?sslmode=disable"
	assert.Equal(t, dsn, withIPv4Host(dsn))
	assert.Equal(t, "::no es una url", withIPv4Host("::no es una url"))
}

func TestSchema_ValorFornecedorPositivo(t *testing.T) {
	initSQL, err := schemaFS.ReadFile("schema/001_init.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(initSQL), "CHECK (supplier_value > 0)")
	assert.NotContains(t, string(initSQL), "supplier_value >= 0")

	upgrade, err := schemaFS.ReadFile("schema/002_supplier_value_positive.sql")
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(upgrade), "DROP CONSTRAINT IF EXISTS products_supplier_value_check"))
	assert.Contains(t, string(upgrade), "CHECK (supplier_value > 0)")
}
