package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/event"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	typeRepo     repository.ProductTypeRepository
	movementRepo repository.StockMovementRepository
	notifier     *inventory.Notifier
}

// NewProductUseCase construye el caso de uso. notifier puede ser nil.
func NewProductUseCase(
	repo repository.ProductRepository,
	typeRepo repository.ProductTypeRepository,
	movementRepo repository.StockMovementRepository,
	notifier *inventory.Notifier,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, typeRepo: typeRepo, movementRepo: movementRepo, notifier: notifier}
}

// Create crea un producto con la cantidad inicial indicada (0 por defecto).
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, domain.Invalid("descricao es obligatoria")
	}
	if !in.SupplierValue.IsPositive() {
		return nil, domain.Invalid("valorFornecedor debe ser mayor que cero")
	}
	if in.QuantityOnHand < 0 {
		return nil, domain.Invalid("quantidadeEmEstoque no puede ser negativa")
	}
	if in.QuantityOnHand > entity.MaxQuantity {
		return nil, domain.Invalid("quantidadeEmEstoque no puede superar %d", entity.MaxQuantity)
	}
	if err := uc.ensureType(ctx, in.ProductTypeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &entity.Product{
		ID:             uuid.New().String(),
		Description:    desc,
		SupplierValue:  in.SupplierValue.Round(2),
		QuantityOnHand: in.QuantityOnHand,
		ProductTypeID:  in.ProductTypeID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.publish(ctx, userID, event.ActionCreated, p)
	return toProductResponse(p), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("produto", id)
	}
	return toProductResponse(p), nil
}

// Update actualiza descripción, valor de proveedor y tipo. No modifica el stock.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("produto", id)
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			return nil, domain.Invalid("descricao no puede quedar vacía")
		}
		p.Description = desc
	}
	if in.SupplierValue != nil {
		if !in.SupplierValue.IsPositive() {
			return nil, domain.Invalid("valorFornecedor debe ser mayor que cero")
		}
		p.SupplierValue = in.SupplierValue.Round(2)
	}
	if in.ProductTypeID != nil && *in.ProductTypeID != p.ProductTypeID {
		if err := uc.ensureType(ctx, *in.ProductTypeID); err != nil {
			return nil, err
		}
		p.ProductTypeID = *in.ProductTypeID
	}
	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	// Releer: la cantidad pudo cambiar por un movimiento concurrente.
	if fresh, err := uc.repo.GetByID(ctx, id); err == nil && fresh != nil {
		p = fresh
	}
	uc.publish(ctx, userID, event.ActionUpdated, p)
	return toProductResponse(p), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Delete elimina un producto; conflicto si ya tiene movimientos.
func (uc *ProductUseCase) Delete(ctx context.Context, userID, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NotFound("produto", id)
	}
	hasMovements, err := uc.movementRepo.ExistsByProduct(ctx, id)
	if err != nil {
		return err
	}
	if hasMovements {
		return domain.Conflict("o produto %q possui movimentações de estoque", p.Description)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.publish(ctx, userID, event.ActionDeleted, p)
	return nil
}

func (uc *ProductUseCase) ensureType(ctx context.Context, typeID string) error {
	if strings.TrimSpace(typeID) == "" {
		return domain.Invalid("tipoProdutoId es obligatorio")
	}
	t, err := uc.typeRepo.GetByID(ctx, typeID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.NotFound("tipo de produto", typeID)
	}
	return nil
}

func (uc *ProductUseCase) publish(ctx context.Context, userID, action string, p *entity.Product) {
	uc.notifier.Notify(ctx, userID, event.ProductChanged{
		Action:         action,
		ProductID:      p.ID,
		Description:    p.Description,
		SupplierValue:  p.SupplierValue,
		QuantityOnHand: p.QuantityOnHand,
		ProductTypeID:  p.ProductTypeID,
	})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		Description:    p.Description,
		SupplierValue:  p.SupplierValue,
		QuantityOnHand: p.QuantityOnHand,
		ProductTypeID:  p.ProductTypeID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
