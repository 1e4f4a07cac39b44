package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// ProductTypeUseCase CRUD de tipos de producto.
type ProductTypeUseCase struct {
	repo        repository.ProductTypeRepository
	productRepo repository.ProductRepository
}

// NewProductTypeUseCase construye el caso de uso.
func NewProductTypeUseCase(repo repository.ProductTypeRepository, productRepo repository.ProductRepository) *ProductTypeUseCase {
	return &ProductTypeUseCase{repo: repo, productRepo: productRepo}
}

// Create crea un tipo. El nombre se recorta y debe ser único sin distinguir mayúsculas.
func (uc *ProductTypeUseCase) Create(ctx context.Context, in dto.ProductTypeRequest) (*dto.ProductTypeResponse, error) {
	name, err := uc.checkName(ctx, in.Name, "")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	t := &entity.ProductType{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toProductTypeResponse(t), nil
}

// GetByID obtiene un tipo por ID.
func (uc *ProductTypeUseCase) GetByID(ctx context.Context, id string) (*dto.ProductTypeResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFound("tipo de produto", id)
	}
	return toProductTypeResponse(t), nil
}

// List devuelve todos los tipos ordenados por nombre.
func (uc *ProductTypeUseCase) List(ctx context.Context) ([]dto.ProductTypeResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductTypeResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toProductTypeResponse(t))
	}
	return out, nil
}

// Update renombra el tipo.
func (uc *ProductTypeUseCase) Update(ctx context.Context, id string, in dto.ProductTypeRequest) (*dto.ProductTypeResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFound("tipo de produto", id)
	}
	name, err := uc.checkName(ctx, in.Name, id)
	if err != nil {
		return nil, err
	}
	t.Name = name
	t.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toProductTypeResponse(t), nil
}

// Delete elimina el tipo; conflicto mientras algún producto lo referencie.
func (uc *ProductTypeUseCase) Delete(ctx context.Context, id string) error {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.NotFound("tipo de produto", id)
	}
	inUse, err := uc.productRepo.ExistsByType(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.Conflict("o tipo de produto %q possui produtos associados", t.Name)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductTypeUseCase) checkName(ctx context.Context, raw, selfID string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", domain.Invalid("nome es obligatorio")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.ID != selfID {
		return "", domain.ErrDuplicate
	}
	return name, nil
}

func toProductTypeResponse(t *entity.ProductType) *dto.ProductTypeResponse {
	return &dto.ProductTypeResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}
