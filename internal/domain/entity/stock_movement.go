package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de stock.
type MovementType string

// Tipos de movimiento. Los valores son los del contrato HTTP (tipoMovimentacao).
const (
	MovementTypeEntry MovementType = "ENTRADA" // entrada: suma al stock
	MovementTypeExit  MovementType = "SAIDA"   // salida: resta del stock
)

// ParseMovementType acepta ENTRADA/SAIDA y los alias ENTRY/EXIT (sin distinguir mayúsculas).
func ParseMovementType(s string) (MovementType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ENTRADA", "ENTRY":
		return MovementTypeEntry, true
	case "SAIDA", "SAÍDA", "EXIT":
		return MovementTypeExit, true
	}
	return "", false
}

// StockMovement registro inmutable del libro de movimientos (append-only).
// SaleValue solo existe en salidas (valor unitario de venta).
type StockMovement struct {
	ID        string
	Timestamp time.Time
	Type      MovementType
	Quantity  int
	SaleValue *decimal.Decimal
	ProductID string
	CreatedBy string
}
