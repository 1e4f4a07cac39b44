package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductByTypeResult fila del reporte de productos por tipo.
type ProductByTypeResult struct {
	ProductID      string
	Description    string
	QuantityOnHand int
	TotalExits     int // cantidad de movimientos de salida
}

// ProfitResult fila del reporte de ganancia por producto.
type ProfitResult struct {
	ProductID   string
	Description string
	UnitsSold   int
	TotalProfit decimal.Decimal // Σ (valorVenda - valorFornecedor) * cantidad de las salidas
}

// ReportRepository consultas de solo lectura para reportes.
type ReportRepository interface {
	ProductsByType(ctx context.Context, productTypeID string) ([]ProductByTypeResult, error)
	ProfitByProduct(ctx context.Context) ([]ProfitResult, error)
}
