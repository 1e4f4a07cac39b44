package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	domaininv "github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/pkg/config"
)

// Estas pruebas necesitan una base real: DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/
func setupDB(t *testing.T) (*pgxpool.Pool, *postgres.TxRunner) {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 30})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool, postgres.NewTxRunner(pool)
}

func seedDB(t *testing.T, pool *pgxpool.Pool, qty int) *entity.Product {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	pt := &entity.ProductType{ID: uuid.NewString(), Name: "tipo-" + uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewProductTypeRepository(pool).Create(ctx, pt))
	p := &entity.Product{
		ID: uuid.NewString(), Description: "Produto integração", SupplierValue: decimal.NewFromInt(100),
		QuantityOnHand: qty, ProductTypeID: pt.ID, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, p))

	t.Cleanup(func() {
		ctx := context.Background()
		_, _ = pool.Exec(ctx, `DELETE FROM stock_movements WHERE product_id = $1`, p.ID)
		_, _ = pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, p.ID)
		_, _ = pool.Exec(ctx, `DELETE FROM product_types WHERE id = $1`, pt.ID)
	})
	return p
}

func TestTxRunner_ErrorHaceRollback(t *testing.T) {
	pool, runner := setupDB(t)
	p := seedDB(t, pool, 10)
	ctx := context.Background()
	boom := errors.New("falla después de escribir")

	err := runner.Run(ctx, func(products repository.ProductRepository, movements repository.StockMovementRepository) error {
		locked, err := products.GetForUpdate(ctx, p.ID)
		require.NoError(t, err)
		locked.QuantityOnHand = 0
		require.NoError(t, products.Save(ctx, locked))
		require.NoError(t, movements.Append(ctx, &entity.StockMovement{Type: entity.MovementTypeExit, Quantity: 10, ProductID: p.ID}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := postgres.NewProductRepository(pool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.QuantityOnHand)
	n, err := postgres.NewStockMovementRepository(pool).Count(ctx, repository.MovementFilter{ProductID: p.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetForUpdate_BloqueaLaFila(t *testing.T) {
	pool, runner := setupDB(t)
	p := seedDB(t, pool, 10)

	holding := make(chan struct{})
	done := make(chan struct{})
	finished := make(chan error, 1)
	go func() {
		finished <- runner.Run(context.Background(), func(products repository.ProductRepository, _ repository.StockMovementRepository) error {
			if _, err := products.GetForUpdate(context.Background(), p.ID); err != nil {
				close(holding)
				return err
			}
			close(holding)
			<-done
			return nil
		})
	}()
	<-holding

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err := runner.Run(ctx, func(products repository.ProductRepository, _ repository.StockMovementRepository) error {
		_, err := products.GetForUpdate(ctx, p.ID)
		return err
	})
	assert.Error(t, err)

	close(done)
	require.NoError(t, <-finished)
}

func TestPostMovement_SalidasConcurrentesEnPostgres(t *testing.T) {
	pool, runner := setupDB(t)
	p := seedDB(t, pool, 10)
	uc := inventory.NewPostMovementUseCase(runner, postgres.NewProductTypeRepository(pool), nil, domaininv.DefaultThresholds)

	const workers = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.PostMovement(context.Background(), inventory.PostMovementInput{ProductID: p.ID, Type: "SAIDA", Quantity: 1})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			fail++
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 10, fail)
	got, err := postgres.NewProductRepository(pool).GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.QuantityOnHand)
	n, err := postgres.NewStockMovementRepository(pool).Count(context.Background(), repository.MovementFilter{ProductID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestProductRepo_RechazaValorFornecedorCero(t *testing.T) {
	pool, _ := setupDB(t)
	p := seedDB(t, pool, 0)
	now := time.Now().UTC()

	err := postgres.NewProductRepository(pool).Create(context.Background(), &entity.Product{
		ID: uuid.NewString(), Description: "Grátis", SupplierValue: decimal.Zero,
		ProductTypeID: p.ProductTypeID, CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
