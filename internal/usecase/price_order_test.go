package usecase

import (
	"errors"
	"testing"

	domain "github.com/aq2208/gorder-workflow/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceOrder_Standard(t *testing.T) {
	priced := mustPrice(t, givenOrder(), flatPrice("10.00"))

	assert.True(t, dec("20").Equal(priced.AmountToBill.Value()), "got %s", priced.AmountToBill.Value())
	require.Len(t, priced.Lines, 1)
	line, ok := priced.Lines[0].(PricedOrderProductLine)
	require.True(t, ok)
	assert.Equal(t, "line-1", line.OrderLineId.String())
	assert.True(t, dec("20").Equal(line.LinePrice.Value()))
}

func TestPriceOrder_PromotionAppendsCommentLine(t *testing.T) {
	in := givenOrder()
	in.PromotionCode = "SPRING25"
	in.Lines = append(in.Lines, givenLine("line-2", "G123", "0.5"))

	priced := mustPrice(t, in, flatPrice("10.00"))

	require.Len(t, priced.Lines, 3)
	assert.IsType(t, PricedOrderProductLine{}, priced.Lines[0])
	assert.IsType(t, PricedOrderProductLine{}, priced.Lines[1])
	assert.Equal(t, CommentLine("Applied promotion SPRING25"), priced.Lines[2])
	assert.True(t, dec("25").Equal(priced.AmountToBill.Value()), "comment line adds nothing")
}

func TestPriceOrder_LinePriceOutOfRange(t *testing.T) {
	in := givenOrder()
	in.Lines[0].Quantity = dec("200")

	_, err := PriceOrder(flatPrice("10.00"), mustValidate(t, in))

	var pe PricingError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, "Lines[0].Price", pe.Field)
}

func TestPriceOrder_BillingAmountOverflow(t *testing.T) {
	in := givenOrder()
	in.Lines = nil
	for i := 0; i < 11; i++ {
		in.Lines = append(in.Lines, givenLine("line", "W1234", "100"))
	}

	_, err := PriceOrder(flatPrice("10.00"), mustValidate(t, in))

	assert.Equal(t, PricingError{Field: "BillingAmount", Message: "must not be greater than 10000"}, err)
}

type priceTable map[string]string

func (p priceTable) StandardPrice(code domain.ProductCode) domain.Price {
	return domain.MustPrice(dec(p[code.String()]))
}

type promoTable map[domain.PromotionCode]priceTable

func (p promoTable) PromotionPrice(promo domain.PromotionCode, code domain.ProductCode) (domain.Price, bool) {
	s, ok := p[promo][code.String()]
	if !ok {
		return domain.Price{}, false
	}
	return domain.MustPrice(dec(s)), true
}

func TestNewPricingFunction(t *testing.T) {
	widget, _ := domain.NewProductCode("ProductCode", "W1234")
	gizmo, _ := domain.NewProductCode("ProductCode", "G123")

	pricing := NewPricingFunction(
		priceTable{"W1234": "10", "G123": "4"},
		promoTable{"HALFWIDGET": {"W1234": "5"}},
	)

	standard := pricing.PricingFunction(domain.StandardPricing{})
	assert.True(t, dec("10").Equal(standard(widget).Value()))

	promo := pricing.PricingFunction(domain.PromotionPricing{Code: "HALFWIDGET"})
	assert.True(t, dec("5").Equal(promo(widget).Value()))
	assert.True(t, dec("4").Equal(promo(gizmo).Value()), "uncovered product falls back to standard")

	unknown := pricing.PricingFunction(domain.PromotionPricing{Code: "EXPIRED"})
	assert.True(t, dec("10").Equal(unknown(widget).Value()))
}
