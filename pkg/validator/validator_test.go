package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ProductID string          `json:"produtoId" validate:"required,uuid_str"`
	Quantity  int             `json:"quantidade" validate:"gt=0"`
	Value     decimal.Decimal `json:"valor" validate:"gte=0"`
}

func TestValidateStruct_Valido(t *testing.T) {
	s := sample{ProductID: "6f1c1e0a-2b1e-4b8c-9d3e-0f1a2b3c4d5e", Quantity: 1, Value: decimal.NewFromInt(3)}
	assert.Nil(t, ValidateStruct(s))
}

func TestValidateStruct_ReportaNombreJSON(t *testing.T) {
	s := sample{ProductID: "no-uuid", Quantity: 0, Value: decimal.NewFromInt(-1)}
	errs := ValidateStruct(s)
	require.Len(t, errs, 3)

	fields := map[string]string{}
	for _, e := range errs {
		fields[e.FailedField] = e.Tag
	}
	assert.Equal(t, "uuid_str", fields["produtoId"])
	assert.Equal(t, "gt", fields["quantidade"])
	assert.Equal(t, "gte", fields["valor"])
	assert.Contains(t, Message(errs), "quantidade (gt=0)")
}
