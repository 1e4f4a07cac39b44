package dto

import "github.com/shopspring/decimal"

// ProductByTypeDTO fila del reporte de productos por tipo.
type ProductByTypeDTO struct {
	ID             string `json:"id"`
	Description    string `json:"descricao"`
	QuantityOnHand int    `json:"quantidadeEmEstoque"`
	TotalExits     int    `json:"totalSaidas"`
}

// ProfitByProductDTO fila del reporte de ganancia por producto.
type ProfitByProductDTO struct {
	ID          string          `json:"id"`
	Description string          `json:"descricao"`
	UnitsSold   int             `json:"totalUnidadesVendidas"`
	TotalProfit decimal.Decimal `json:"lucroTotal"`
}

// ReplenishmentSuggestionDTO producto en nivel bajo con la cantidad sugerida de reposición.
type ReplenishmentSuggestionDTO struct {
	ProductID       string `json:"produtoId"`
	Description     string `json:"descricao"`
	CurrentStock    int    `json:"quantidadeAtual"`
	AlertType       string `json:"tipoAlerta"`
	Priority        string `json:"prioridade"`
	UnitsSold       int    `json:"totalUnidadesVendidas"`
	SuggestedQty    int    `json:"quantidadeSugerida"`
	ImmediateAction bool   `json:"acaoImediata"`
}
