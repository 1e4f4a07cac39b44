package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxQuantity es el mayor stock representable; coincide con la columna INTEGER de PostgreSQL.
const MaxQuantity = math.MaxInt32

// Product representa un producto del catálogo con su stock disponible.
// QuantityOnHand solo se modifica a través del motor de movimientos; nunca es negativo.
type Product struct {
	ID             string
	Description    string
	SupplierValue  decimal.Decimal // valor del proveedor (siempre > 0)
	QuantityOnHand int
	ProductTypeID  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Fits indica si el resultado de aplicar el movimiento queda dentro de MaxQuantity.
func (p *Product) Fits(t MovementType, quantity int) bool {
	return t == MovementTypeExit || p.QuantityOnHand <= MaxQuantity-quantity
}

// Apply devuelve la cantidad resultante de aplicar un movimiento sin modificar el producto.
// El llamador valida con Fits y que el resultado no sea negativo.
func (p *Product) Apply(t MovementType, quantity int) int {
	if t == MovementTypeExit {
		return p.QuantityOnHand - quantity
	}
	return p.QuantityOnHand + quantity
}
