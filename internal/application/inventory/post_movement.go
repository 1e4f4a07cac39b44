package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/event"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

const instrumentationName = "github.com/jhoicas/estoque-api/internal/application/inventory"

// PostMovementInput entrada para registrar un movimiento de stock.
// SaleValue solo aplica a salidas; si es nil se calcula con inventory.SalePrice.
type PostMovementInput struct {
	ProductID string
	Type      string
	Quantity  int
	SaleValue *decimal.Decimal
	UserID    string
}

// PostMovementUseCase registra entradas y salidas de stock.
// Producto y movimiento se escriben en la misma transacción con el producto bloqueado
// (SELECT FOR UPDATE / lock por producto); los eventos salen después del commit.
type PostMovementUseCase struct {
	txRunner   TxRunner
	typeRepo   repository.ProductTypeRepository
	notifier   *Notifier
	thresholds inventory.Thresholds
	now        func() time.Time

	tracer trace.Tracer
	posted metric.Int64Counter
}

// NewPostMovementUseCase construye el caso de uso. typeRepo solo se usa para enriquecer eventos y puede ser nil.
func NewPostMovementUseCase(
	txRunner TxRunner,
	typeRepo repository.ProductTypeRepository,
	notifier *Notifier,
	thresholds inventory.Thresholds,
) *PostMovementUseCase {
	posted, err := otel.Meter(instrumentationName).Int64Counter(
		"inventory.movements.posted",
		metric.WithDescription("Movimientos de stock confirmados"),
	)
	if err != nil {
		posted, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter("inventory.movements.posted")
	}
	return &PostMovementUseCase{
		txRunner:   txRunner,
		typeRepo:   typeRepo,
		notifier:   notifier,
		thresholds: thresholds,
		now:        func() time.Time { return time.Now().UTC() },
		tracer:     otel.Tracer(instrumentationName),
		posted:     posted,
	}
}

type postedMovement struct {
	movement *entity.StockMovement
	product  entity.Product
	previous int
}

// PostMovement valida la entrada, aplica el movimiento y lo registra en el libro.
// Errores: domain.ErrInvalidInput, domain.ErrNotFound, *domain.InsufficientStockError (ErrConflict),
// domain.ErrConflict si una entrada supera entity.MaxQuantity.
func (uc *PostMovementUseCase) PostMovement(ctx context.Context, in PostMovementInput) (*entity.StockMovement, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.PostMovement",
		trace.WithAttributes(
			attribute.String("product.id", in.ProductID),
			attribute.String("movement.type", in.Type),
			attribute.Int("movement.quantity", in.Quantity),
		))
	defer span.End()

	movType, err := validateInput(in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var res postedMovement
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("produto", in.ProductID)
		}

		if !product.Fits(movType, in.Quantity) {
			return domain.Conflict("la entrada de %d unidades supera el stock máximo (%d) del producto %s",
				in.Quantity, entity.MaxQuantity, product.ID)
		}
		newQty := product.Apply(movType, in.Quantity)
		if newQty < 0 {
			return &domain.InsufficientStockError{
				ProductID: product.ID,
				Available: product.QuantityOnHand,
				Requested: in.Quantity,
			}
		}

		now := uc.now()
		res.previous = product.QuantityOnHand
		product.QuantityOnHand = newQty
		product.UpdatedAt = now
		if err := productRepo.Save(ctx, product); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			Timestamp: now,
			Type:      movType,
			Quantity:  in.Quantity,
			ProductID: product.ID,
			CreatedBy: in.UserID,
		}
		if movType == entity.MovementTypeExit {
			sale := inventory.SalePrice(product.SupplierValue)
			if in.SaleValue != nil {
				sale = in.SaleValue.Round(2)
			}
			mov.SaleValue = &sale
		}
		if err := movementRepo.Append(ctx, mov); err != nil {
			return err
		}
		res.movement = mov
		res.product = *product
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("movement.id", res.movement.ID),
		attribute.Int("stock.previous", res.previous),
		attribute.Int("stock.current", res.product.QuantityOnHand),
	)
	uc.posted.Add(ctx, 1, metric.WithAttributes(attribute.String("type", string(movType))))

	uc.notify(ctx, in.UserID, res)
	return res.movement, nil
}

func validateInput(in PostMovementInput) (entity.MovementType, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return "", domain.Invalid("produtoId es obligatorio")
	}
	movType, ok := entity.ParseMovementType(in.Type)
	if !ok {
		return "", domain.Invalid("tipoMovimentacao desconocido %q (ENTRADA|SAIDA)", in.Type)
	}
	if in.Quantity <= 0 {
		return "", domain.Invalid("quantidadeMovimentada debe ser mayor que cero")
	}
	if in.Quantity > entity.MaxQuantity {
		return "", domain.Invalid("quantidadeMovimentada no puede superar %d", entity.MaxQuantity)
	}
	if in.SaleValue != nil {
		if movType == entity.MovementTypeEntry {
			return "", domain.Invalid("valorVenda solo aplica a movimientos de SAIDA")
		}
		if !in.SaleValue.IsPositive() {
			return "", domain.Invalid("valorVenda debe ser mayor que cero")
		}
	}
	return movType, nil
}

// notify publica el movimiento y, si corresponde, la alerta de stock. Best effort.
func (uc *PostMovementUseCase) notify(ctx context.Context, userID string, res postedMovement) {
	if uc.notifier == nil {
		return
	}
	mov, p := res.movement, res.product

	posted := event.MovementPosted{
		MovementID:    mov.ID,
		ProductID:     p.ID,
		Description:   p.Description,
		MovementType:  string(mov.Type),
		Quantity:      mov.Quantity,
		SaleValue:     mov.SaleValue,
		SupplierValue: p.SupplierValue,
		PreviousStock: res.previous,
		CurrentStock:  p.QuantityOnHand,
		MovedAt:       mov.Timestamp,
	}
	if mov.SaleValue != nil {
		profit := inventory.Profit(*mov.SaleValue, p.SupplierValue, mov.Quantity)
		posted.Profit = &profit
	}
	if uc.typeRepo != nil {
		if t, err := uc.typeRepo.GetByID(ctx, p.ProductTypeID); err == nil && t != nil {
			posted.ProductTypeName = t.Name
		}
	}

	payloads := []event.Payload{posted}
	if alert, ok := uc.stockAlert(p); ok {
		payloads = append(payloads, alert)
	}
	uc.notifier.Notify(ctx, userID, payloads...)
}

func (uc *PostMovementUseCase) stockAlert(p entity.Product) (event.StockAlert, bool) {
	kind := uc.thresholds.Classify(p.QuantityOnHand)
	if kind == inventory.AlertNone {
		return event.StockAlert{}, false
	}
	var msg string
	switch kind {
	case inventory.AlertOutOfStock:
		msg = fmt.Sprintf("Produto %s esgotado", p.Description)
	case inventory.AlertCritical:
		msg = fmt.Sprintf("Estoque crítico do produto %s: %d unidades", p.Description, p.QuantityOnHand)
	default:
		msg = fmt.Sprintf("Estoque baixo do produto %s: %d unidades", p.Description, p.QuantityOnHand)
	}
	return event.StockAlert{
		AlertType:       string(kind),
		ProductID:       p.ID,
		Description:     p.Description,
		CurrentStock:    p.QuantityOnHand,
		Threshold:       uc.thresholds.Threshold(kind),
		Priority:        kind.Priority(),
		Message:         msg,
		ImmediateAction: kind.ImmediateAction(),
	}, true
}
