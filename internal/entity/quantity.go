package domain

import "github.com/shopspring/decimal"

var (
	minKilograms = decimal.RequireFromString("0.05")
	maxKilograms = decimal.NewFromInt(100)
)

// OrderQuantity is either a UnitQuantity or a KilogramQuantity.
type OrderQuantity interface {
	Value() decimal.Decimal
	orderQuantity()
}

// UnitQuantity is a whole number of units in [1, 1000].
type UnitQuantity struct{ v int }

// KilogramQuantity is a weight in [0.05, 100] kg.
type KilogramQuantity struct{ v decimal.Decimal }

func (UnitQuantity) orderQuantity()     {}
func (KilogramQuantity) orderQuantity() {}

func NewUnitQuantity(field string, n int) (UnitQuantity, error) {
	v, err := createInt(field, n, 1, 1000)
	return UnitQuantity{v}, err
}

func NewKilogramQuantity(field string, d decimal.Decimal) (KilogramQuantity, error) {
	v, err := createDecimal(field, d, minKilograms, maxKilograms)
	return KilogramQuantity{v}, err
}

func (u UnitQuantity) Int() int                    { return u.v }
func (u UnitQuantity) Value() decimal.Decimal      { return decimal.NewFromInt(int64(u.v)) }
func (k KilogramQuantity) Value() decimal.Decimal { return k.v }

// NewOrderQuantity builds the quantity variant matching the product code:
// units for widgets, kilograms for gizmos.
func NewOrderQuantity(field string, code ProductCode, qty decimal.Decimal) (OrderQuantity, error) {
	switch code.(type) {
	case WidgetCode:
		if !qty.Equal(qty.Truncate(0)) {
			return nil, violation(field, "must be a whole number")
		}
		// clamp before narrowing so out-of-range input still reports the right bound
		clamped := decimal.Max(decimal.Zero, decimal.Min(qty, decimal.NewFromInt(1001)))
		u, err := NewUnitQuantity(field, int(clamped.IntPart()))
		if err != nil {
			return nil, err
		}
		return u, nil
	case GizmoCode:
		k, err := NewKilogramQuantity(field, qty)
		if err != nil {
			return nil, err
		}
		return k, nil
	}
	panic("domain: unknown product code variant")
}
