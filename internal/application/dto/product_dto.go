package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Description    string          `json:"descricao" validate:"required,max=255"`
	SupplierValue  decimal.Decimal `json:"valorFornecedor" validate:"gt=0"`
	QuantityOnHand int             `json:"quantidadeEmEstoque" validate:"min=0,lte=2147483647"`
	ProductTypeID  string          `json:"tipoProdutoId" validate:"required"`
}

// UpdateProductRequest entrada para actualizar un producto. La cantidad en stock no se modifica aquí.
type UpdateProductRequest struct {
	Description   *string          `json:"descricao" validate:"omitempty,min=1,max=255"`
	SupplierValue *decimal.Decimal `json:"valorFornecedor" validate:"omitempty,gt=0"`
	ProductTypeID *string          `json:"tipoProdutoId" validate:"omitempty,min=1"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Description    string          `json:"descricao"`
	SupplierValue  decimal.Decimal `json:"valorFornecedor"`
	QuantityOnHand int             `json:"quantidadeEmEstoque"`
	ProductTypeID  string          `json:"tipoProdutoId"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
