package usecase

import domain "github.com/aq2208/gorder-workflow/internal/entity"

type StandardPrices interface {
	StandardPrice(code domain.ProductCode) domain.Price
}

// PromotionPrices reports the promotional price of a product, if the
// promotion covers it.
type PromotionPrices interface {
	PromotionPrice(promo domain.PromotionCode, code domain.ProductCode) (domain.Price, bool)
}

type pricingFunction struct {
	standard   StandardPrices
	promotions PromotionPrices
}

// NewPricingFunction builds a PriceLister that falls back to the standard
// price for products a promotion does not cover.
func NewPricingFunction(standard StandardPrices, promotions PromotionPrices) PriceLister {
	return pricingFunction{standard: standard, promotions: promotions}
}

func (p pricingFunction) PricingFunction(method domain.PricingMethod) GetProductPrice {
	switch m := method.(type) {
	case domain.StandardPricing:
		return p.standard.StandardPrice
	case domain.PromotionPricing:
		return func(code domain.ProductCode) domain.Price {
			if price, ok := p.promotions.PromotionPrice(m.Code, code); ok {
				return price
			}
			return p.standard.StandardPrice(code)
		}
	}
	panic("usecase: unknown pricing method")
}
