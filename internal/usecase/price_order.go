package usecase

import (
	"fmt"

	domain "github.com/aq2208/gorder-workflow/internal/entity"
)

// PriceOrder prices every line with the lookup chosen by the order's pricing
// method, appends a comment line for promotions and totals the bill.
func PriceOrder(pricing PriceLister, order ValidatedOrder) (PricedOrder, error) {
	getPrice := pricing.PricingFunction(order.PricingMethod)

	lines := make([]PricedOrderLine, 0, len(order.Lines)+1)
	for i, line := range order.Lines {
		priced, err := toPricedOrderLine(getPrice, line)
		if err != nil {
			return PricedOrder{}, pricingFailure(fmt.Sprintf("Lines[%d]", i), err)
		}
		lines = append(lines, priced)
	}
	lines = addCommentLine(order.PricingMethod, lines)

	prices := make([]domain.Price, 0, len(lines))
	for _, line := range lines {
		prices = append(prices, linePrice(line))
	}
	amountToBill, err := domain.SumPrices(prices)
	if err != nil {
		return PricedOrder{}, pricingFailure("", err)
	}

	return PricedOrder{
		OrderId:         order.OrderId,
		CustomerInfo:    order.CustomerInfo,
		ShippingAddress: order.ShippingAddress,
		BillingAddress:  order.BillingAddress,
		AmountToBill:    amountToBill,
		Lines:           lines,
		PricingMethod:   order.PricingMethod,
	}, nil
}

func toPricedOrderLine(getPrice GetProductPrice, line ValidatedOrderLine) (PricedOrderLine, error) {
	linePrice, err := getPrice(line.ProductCode).Multiply(line.Quantity.Value())
	if err != nil {
		return nil, err
	}
	return PricedOrderProductLine{
		OrderLineId: line.OrderLineId,
		ProductCode: line.ProductCode,
		Quantity:    line.Quantity,
		LinePrice:   linePrice,
	}, nil
}

func addCommentLine(method domain.PricingMethod, lines []PricedOrderLine) []PricedOrderLine {
	switch m := method.(type) {
	case domain.StandardPricing:
		return lines
	case domain.PromotionPricing:
		return append(lines, CommentLine(fmt.Sprintf("Applied promotion %s", m.Code)))
	}
	panic("usecase: unknown pricing method")
}

func linePrice(line PricedOrderLine) domain.Price {
	switch l := line.(type) {
	case PricedOrderProductLine:
		return l.LinePrice
	case CommentLine:
		return domain.Price{}
	}
	panic("usecase: unknown priced order line")
}
