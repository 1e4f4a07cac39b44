package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/event"
	domaininv "github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
)

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, e event.Envelope) error {
	return m.Called(ctx, e).Error(0)
}

type mockPDF struct{ mock.Mock }

func (m *mockPDF) ProfitReportPDF(ctx context.Context, rows []dto.ProfitByProductDTO, at time.Time) ([]byte, error) {
	args := m.Called(ctx, rows, at)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type fixture struct {
	store    *memory.Store
	pub      *mockPublisher
	types    *usecase.ProductTypeUseCase
	products *usecase.ProductUseCase
	post     *inventory.PostMovementUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)
	notifier := inventory.NewNotifier(pub, time.Second, nil)
	return &fixture{
		store:    store,
		pub:      pub,
		types:    usecase.NewProductTypeUseCase(store.ProductTypes(), store.Products()),
		products: usecase.NewProductUseCase(store.Products(), store.ProductTypes(), store.Movements(), notifier),
		post:     inventory.NewPostMovementUseCase(store, store.ProductTypes(), nil, domaininv.DefaultThresholds),
	}
}

func (f *fixture) productType(t *testing.T, name string) string {
	t.Helper()
	out, err := f.types.Create(context.Background(), dto.ProductTypeRequest{Name: name})
	require.NoError(t, err)
	return out.ID
}

func (f *fixture) product(t *testing.T, typeID string, qty int, supplier string) *dto.ProductResponse {
	t.Helper()
	out, err := f.products.Create(context.Background(), "u1", dto.CreateProductRequest{
		Description:    "Notebook",
		SupplierValue:  decimal.RequireFromString(supplier),
		QuantityOnHand: qty,
		ProductTypeID:  typeID,
	})
	require.NoError(t, err)
	return out
}

func TestProductType_NombreRecortadoYUnico(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.types.Create(ctx, dto.ProductTypeRequest{Name: "  Eletrônico  "})
	require.NoError(t, err)
	assert.Equal(t, "Eletrônico", out.Name)

	_, err = f.types.Create(ctx, dto.ProductTypeRequest{Name: "ELETRÔNICO"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.types.Create(ctx, dto.ProductTypeRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	other, err := f.types.Create(ctx, dto.ProductTypeRequest{Name: "Móvel"})
	require.NoError(t, err)
	_, err = f.types.Update(ctx, other.ID, dto.ProductTypeRequest{Name: "eletrônico"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Renombrar a sí mismo cambiando mayúsculas no es duplicado.
	renamed, err := f.types.Update(ctx, out.ID, dto.ProductTypeRequest{Name: "ELETRÔNICO"})
	require.NoError(t, err)
	assert.Equal(t, "ELETRÔNICO", renamed.Name)

	list, err := f.types.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestProductType_DeleteConProductosEsConflicto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	typeID := f.productType(t, "Eletrônico")
	p := f.product(t, typeID, 1, "10")

	err := f.types.Delete(ctx, typeID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, f.products.Delete(ctx, "u1", p.ID))
	require.NoError(t, f.types.Delete(ctx, typeID))

	_, err = f.types.GetByID(ctx, typeID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.types.Delete(ctx, typeID), domain.ErrNotFound)
}

func TestProduct_CreateValidaYPublica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	typeID := f.productType(t, "Eletrônico")

	p := f.product(t, typeID, 3, "10.005")
	assert.Equal(t, "10.01", p.SupplierValue.StringFixed(2))
	assert.Equal(t, 3, p.QuantityOnHand)

	f.pub.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e event.Envelope) bool {
		if e.EventType != event.TypeProductChanged || e.UserID != "u1" {
			return false
		}
		decoded, err := event.Decode(e)
		return err == nil && decoded.(event.ProductChanged).Action == event.ActionCreated
	}))

	_, err := f.products.Create(ctx, "u1", dto.CreateProductRequest{
		Description: "X", SupplierValue: decimal.NewFromInt(1), ProductTypeID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.products.Create(ctx, "u1", dto.CreateProductRequest{
		Description: "X", SupplierValue: decimal.Zero, ProductTypeID: typeID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.products.Create(ctx, "u1", dto.CreateProductRequest{
		Description: "X", SupplierValue: decimal.NewFromInt(1), QuantityOnHand: -1, ProductTypeID: typeID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.products.Create(ctx, "u1", dto.CreateProductRequest{
		Description: "X", SupplierValue: decimal.NewFromInt(1), QuantityOnHand: entity.MaxQuantity + 1, ProductTypeID: typeID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_UpdateNoTocaElStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	typeID := f.productType(t, "Eletrônico")
	otherType := f.productType(t, "Móvel")
	p := f.product(t, typeID, 7, "10")

	value := decimal.RequireFromString("12.5")
	out, err := f.products.Update(ctx, "u1", p.ID, dto.UpdateProductRequest{SupplierValue: &value, ProductTypeID: &otherType})
	require.NoError(t, err)
	assert.Equal(t, 7, out.QuantityOnHand)
	assert.Equal(t, otherType, out.ProductTypeID)
	assert.True(t, value.Equal(out.SupplierValue))

	missing := "no-existe"
	_, err = f.products.Update(ctx, "u1", p.ID, dto.UpdateProductRequest{ProductTypeID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.products.Update(ctx, "u1", "no-existe", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_DeleteConMovimientosEsConflicto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	typeID := f.productType(t, "Eletrônico")
	p := f.product(t, typeID, 2, "10")

	_, err := f.post.PostMovement(ctx, inventory.PostMovementInput{ProductID: p.ID, Type: "SAIDA", Quantity: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, f.products.Delete(ctx, "u1", p.ID), domain.ErrConflict)
	assert.ErrorIs(t, f.products.Delete(ctx, "u1", "no-existe"), domain.ErrNotFound)
}

func TestProduct_ListPaginado(t *testing.T) {
	f := newFixture(t)
	typeID := f.productType(t, "Eletrônico")
	for i := 0; i < 3; i++ {
		f.product(t, typeID, i, "10")
	}

	out, err := f.products.List(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 3, out.Page.Total)

	out, err = f.products.List(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
}

func TestReport_ProductsByTypeYGanancia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	typeID := f.productType(t, "Eletrônico")
	otherType := f.productType(t, "Móvel")
	p := f.product(t, typeID, 10, "100")
	f.product(t, otherType, 1, "5")

	sale := decimal.NewFromInt(120)
	_, err := f.post.PostMovement(ctx, inventory.PostMovementInput{ProductID: p.ID, Type: "SAIDA", Quantity: 4, SaleValue: &sale})
	require.NoError(t, err)
	_, err = f.post.PostMovement(ctx, inventory.PostMovementInput{ProductID: p.ID, Type: "ENTRADA", Quantity: 2})
	require.NoError(t, err)

	gen := &mockPDF{}
	reports := usecase.NewReportUseCase(f.store.Reports(), f.store.ProductTypes(), gen)

	byType, err := reports.ProductsByType(ctx, typeID)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, 8, byType[0].QuantityOnHand)
	assert.Equal(t, 1, byType[0].TotalExits)

	_, err = reports.ProductsByType(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	profit, err := reports.ProfitByProduct(ctx)
	require.NoError(t, err)
	require.Len(t, profit, 2)
	var found bool
	for _, r := range profit {
		if r.ID == p.ID {
			found = true
			assert.Equal(t, 4, r.UnitsSold)
			assert.True(t, decimal.NewFromInt(80).Equal(r.TotalProfit), r.TotalProfit.String())
		} else {
			assert.Equal(t, 0, r.UnitsSold)
			assert.True(t, r.TotalProfit.IsZero())
		}
	}
	assert.True(t, found)

	gen.On("ProfitReportPDF", mock.Anything, mock.Anything, mock.Anything).Return([]byte("%PDF-1.4"), nil).Once()
	pdf, name, err := reports.ProfitByProductPDF(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Regexp(t, `^lucro-por-produto-\d{8}\.pdf$`, name)

	gen.On("ProfitReportPDF", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("fuente faltante")).Once()
	_, _, err = reports.ProfitByProductPDF(ctx)
	assert.ErrorContains(t, err, "fuente faltante")
	gen.AssertExpectations(t)
}

func TestReport_SinGeneradorPDF(t *testing.T) {
	store := memory.NewStore()
	reports := usecase.NewReportUseCase(store.Reports(), store.ProductTypes(), nil)
	_, _, err := reports.ProfitByProductPDF(context.Background())
	assert.Error(t, err)
}
