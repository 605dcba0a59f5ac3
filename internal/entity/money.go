package domain

import "github.com/shopspring/decimal"

var (
	maxPrice         = decimal.NewFromInt(1000)
	maxBillingAmount = decimal.NewFromInt(10000)
)

// Price is a unit or line price in [0, 1000].
type Price struct{ v decimal.Decimal }

func NewPrice(d decimal.Decimal) (Price, error) {
	v, err := createDecimal("Price", d, decimal.Zero, maxPrice)
	return Price{v}, err
}

// MustPrice is for constants known to be in range.
func MustPrice(d decimal.Decimal) Price {
	p, err := NewPrice(d)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Price) Value() decimal.Decimal { return p.v }

// Multiply returns qty * p, failing when the product leaves the Price range.
func (p Price) Multiply(qty decimal.Decimal) (Price, error) {
	return NewPrice(qty.Mul(p.v))
}

// BillingAmount is the total to bill for an order, in [0, 10000].
type BillingAmount struct{ v decimal.Decimal }

func NewBillingAmount(d decimal.Decimal) (BillingAmount, error) {
	v, err := createDecimal("BillingAmount", d, decimal.Zero, maxBillingAmount)
	return BillingAmount{v}, err
}

func (b BillingAmount) Value() decimal.Decimal { return b.v }

func SumPrices(prices []Price) (BillingAmount, error) {
	total := decimal.Zero
	for _, p := range prices {
		total = total.Add(p.v)
	}
	return NewBillingAmount(total)
}
