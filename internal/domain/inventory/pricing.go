package inventory

import "github.com/shopspring/decimal"

// SaleMarkup margen aplicado al valor del proveedor en las salidas (35%).
var SaleMarkup = decimal.RequireFromString("1.35")

// SalePrice calcula el valor unitario de venta de una salida.
// ValorVenda = ValorFornecedor * 1.35, redondeado half-up a 2 decimales.
func SalePrice(supplierValue decimal.Decimal) decimal.Decimal {
	return supplierValue.Mul(SaleMarkup).Round(2)
}

// Profit ganancia de una salida: (valorVenda - valorFornecedor) * cantidad.
func Profit(saleValue, supplierValue decimal.Decimal, quantity int) decimal.Decimal {
	return saleValue.Sub(supplierValue).Mul(decimal.NewFromInt(int64(quantity)))
}
