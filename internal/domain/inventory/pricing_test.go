package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-api/internal/domain/inventory"
)

func TestSalePrice_AplicaMargenYRedondea(t *testing.T) {
	cases := []struct {
		supplier string
		want     string
	}{
		{"100", "135"},
		{"1500.00", "2025"},
		{"10.01", "13.51"}, // 13.5135 -> 13.51
		{"0.03", "0.04"},   // 0.0405 -> 0.04
		{"7.37", "9.95"},   // 9.9495 -> 9.95 (half-up)
	}
	for _, c := range cases {
		got := inventory.SalePrice(decimal.RequireFromString(c.supplier))
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)),
			"proveedor %s: esperado %s, obtenido %s", c.supplier, c.want, got)
	}
}

func TestProfit(t *testing.T) {
	got := inventory.Profit(decimal.RequireFromString("135"), decimal.RequireFromString("100"), 3)
	assert.True(t, got.Equal(decimal.NewFromInt(105)))
}

func TestThresholds_Classify(t *testing.T) {
	th := inventory.DefaultThresholds
	assert.Equal(t, inventory.AlertOutOfStock, th.Classify(0))
	assert.Equal(t, inventory.AlertCritical, th.Classify(1))
	assert.Equal(t, inventory.AlertCritical, th.Classify(5))
	assert.Equal(t, inventory.AlertLow, th.Classify(6))
	assert.Equal(t, inventory.AlertLow, th.Classify(10))
	assert.Equal(t, inventory.AlertNone, th.Classify(11))

	assert.Equal(t, "HIGH", inventory.AlertOutOfStock.Priority())
	assert.True(t, inventory.AlertCritical.ImmediateAction())
	assert.False(t, inventory.AlertLow.ImmediateAction())
	assert.Equal(t, 10, th.Threshold(inventory.AlertLow))
}
