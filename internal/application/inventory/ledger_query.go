package inventory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// LedgerQueryUseCase consultas de solo lectura sobre el libro de movimientos.
type LedgerQueryUseCase struct {
	movementRepo repository.StockMovementRepository
}

// NewLedgerQueryUseCase construye el caso de uso.
func NewLedgerQueryUseCase(movementRepo repository.StockMovementRepository) *LedgerQueryUseCase {
	return &LedgerQueryUseCase{movementRepo: movementRepo}
}

// List devuelve los movimientos filtrados en orden cronológico con el total para paginación.
func (uc *LedgerQueryUseCase) List(ctx context.Context, in dto.MovementFilterRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	filter := repository.MovementFilter{
		ProductID: in.ProductID,
		From:      in.From,
		To:        in.To,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.Type != "" {
		t, ok := entity.ParseMovementType(in.Type)
		if !ok {
			return nil, domain.Invalid("tipo desconocido %q (ENTRADA|SAIDA)", in.Type)
		}
		filter.Type = t
	}
	if in.From != nil && in.To != nil && in.To.Before(*in.From) {
		return nil, domain.Invalid("'ate' anterior a 'desde'")
	}

	list, err := uc.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.movementRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Get obtiene un movimiento por ID.
func (uc *LedgerQueryUseCase) Get(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NotFound("movimento", id)
	}
	out := ToMovementResponse(m)
	return &out, nil
}

// ToMovementResponse convierte la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		Type:      string(m.Type),
		Quantity:  m.Quantity,
		SaleValue: m.SaleValue,
		MovedAt:   m.Timestamp,
		ProductID: m.ProductID,
		CreatedBy: m.CreatedBy,
	}
}
