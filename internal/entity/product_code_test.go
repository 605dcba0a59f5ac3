package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductCode(t *testing.T) {
	t.Run("widget", func(t *testing.T) {
		code, err := NewProductCode("ProductCode", "W1234")
		require.NoError(t, err)
		assert.IsType(t, WidgetCode{}, code)
		assert.Equal(t, "W1234", code.String())
	})

	t.Run("gizmo", func(t *testing.T) {
		code, err := NewProductCode("ProductCode", "G123")
		require.NoError(t, err)
		assert.IsType(t, GizmoCode{}, code)
	})

	t.Run("unknown prefix", func(t *testing.T) {
		_, err := NewProductCode("ProductCode", "X001")
		assert.EqualError(t, err, "ProductCode: format not recognized 'X001'")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewProductCode("ProductCode", "")
		assert.EqualError(t, err, "ProductCode: must not be null or empty")
	})

	t.Run("widget with bad digits", func(t *testing.T) {
		_, err := NewProductCode("ProductCode", "W12")
		assert.EqualError(t, err, `ProductCode: 'W12' must match the pattern '^W\d{4}$'`)
	})
}

func TestNewOrderQuantity(t *testing.T) {
	widget, _ := NewWidgetCode("ProductCode", "W1234")
	gizmo, _ := NewGizmoCode("ProductCode", "G123")

	tests := []struct {
		name    string
		code    ProductCode
		qty     string
		want    OrderQuantity
		wantErr string
	}{
		{name: "widget lower bound", code: widget, qty: "1", want: UnitQuantity{1}},
		{name: "widget upper bound", code: widget, qty: "1000", want: UnitQuantity{1000}},
		{name: "widget zero", code: widget, qty: "0", wantErr: "Quantity: must not be less than 1"},
		{name: "widget too many", code: widget, qty: "1001", wantErr: "Quantity: must not be greater than 1000"},
		{name: "widget huge", code: widget, qty: "5000000000", wantErr: "Quantity: must not be greater than 1000"},
		{name: "widget beyond int64", code: widget, qty: "1e20", wantErr: "Quantity: must not be greater than 1000"},
		{name: "widget hugely negative", code: widget, qty: "-1e20", wantErr: "Quantity: must not be less than 1"},
		{name: "widget fractional", code: widget, qty: "2.5", wantErr: "Quantity: must be a whole number"},
		{name: "gizmo lower bound", code: gizmo, qty: "0.05", want: KilogramQuantity{decimal.RequireFromString("0.05")}},
		{name: "gizmo fractional", code: gizmo, qty: "2.5", want: KilogramQuantity{decimal.RequireFromString("2.5")}},
		{name: "gizmo too light", code: gizmo, qty: "0.01", wantErr: "Quantity: must not be less than 0.05"},
		{name: "gizmo too heavy", code: gizmo, qty: "100.5", wantErr: "Quantity: must not be greater than 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewOrderQuantity("Quantity", tt.code, decimal.RequireFromString(tt.qty))
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
			assert.True(t, tt.want.Value().Equal(got.Value()), "got %s", got.Value())
		})
	}
}
