package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Product  *uint            `json:"producto" validate:"required"`
	Quantity *int             `json:"cantidad" validate:"required,gt=0"`
	Price    *decimal.Decimal `json:"precio_unitario" validate:"required,money"`
}

type order struct {
	Method *string `json:"metodo_pago" validate:"omitnil,min=1,max=50"`
	Items  []item  `json:"detalles" validate:"required,min=1,dive"`
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func ptr[T any](v T) *T { return &v }

func TestValidateStructMoney(t *testing.T) {
	tests := []struct {
		name  string
		price string
		valid bool
	}{
		{"two decimals", "75.00", true},
		{"integer", "150", true},
		{"zero", "0", true},
		{"one decimal", "32.5", true},
		{"three decimals", "10.005", false},
		{"negative", "-1.00", false},
		{"too large for decimal(10,2)", "100000000.00", false},
		{"largest that fits", "99999999.99", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := order{Items: []item{{Product: ptr(uint(1)), Quantity: ptr(1), Price: dec(tt.price)}}}
			errs := ValidateStruct(&o)
			if tt.valid {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, "detalles[0].precio_unitario", errs[0].FailedField)
			assert.Equal(t, "money", errs[0].Tag)
		})
	}
}

func TestValidateStructReportsJSONPaths(t *testing.T) {
	o := order{Items: []item{
		{Product: ptr(uint(1)), Quantity: ptr(2), Price: dec("75.00")},
		{Product: ptr(uint(2)), Price: dec("10.00")},
	}}

	errs := ValidateStruct(&o)

	require.Len(t, errs, 1)
	assert.Equal(t, "detalles[1].cantidad", errs[0].FailedField)
	assert.Equal(t, "required", errs[0].Tag)
}

func TestValidateStructRequiresItems(t *testing.T) {
	errs := ValidateStruct(&order{Items: []item{}})

	require.Len(t, errs, 1)
	assert.Equal(t, "detalles", errs[0].FailedField)
	assert.Equal(t, "min", errs[0].Tag)
	assert.Equal(t, "1", errs[0].Value)
}

func TestValidateStructOptionalPointers(t *testing.T) {
	valid := []item{{Product: ptr(uint(1)), Quantity: ptr(1), Price: dec("1")}}

	assert.Empty(t, ValidateStruct(&order{Items: valid}))
	assert.Empty(t, ValidateStruct(&order{Method: ptr("efectivo"), Items: valid}))

	errs := ValidateStruct(&order{Method: ptr(""), Items: valid})
	require.Len(t, errs, 1)
	assert.Equal(t, "metodo_pago", errs[0].FailedField)
}

func TestValidateStructQuantityMustBePositive(t *testing.T) {
	o := order{Items: []item{{Product: ptr(uint(1)), Quantity: ptr(0), Price: dec("1")}}}

	errs := ValidateStruct(&o)

	require.Len(t, errs, 1)
	assert.Equal(t, "gt", errs[0].Tag)
}
