// Package letter renders the HTML acknowledgment sent to customers.
package letter

import (
	"bytes"
	"html/template"

	"github.com/aq2208/gorder-workflow/internal/usecase"
)

var ackTemplate = template.Must(template.New("ack").Parse(`<html><body>
<p>Dear {{.FirstName}} {{.LastName}},</p>
<p>Thank you for your order {{.OrderId}}.</p>
<table>
<tr><th>Product</th><th>Quantity</th><th>Price</th></tr>
{{- range .Lines}}
<tr><td>{{.ProductCode}}</td><td>{{.Quantity}}</td><td>{{.Price}}</td></tr>
{{- end}}
</table>
{{- range .Comments}}
<p class="comment">{{.}}</p>
{{- end}}
<p>Shipping ({{.ShippingMethod}}): {{.ShippingCost}}</p>
<p>Total to bill: {{.AmountToBill}}</p>
</body></html>`))

type lineView struct {
	ProductCode string
	Quantity    string
	Price       string
}

type letterView struct {
	FirstName      string
	LastName       string
	OrderId        string
	Lines          []lineView
	Comments       []string
	ShippingMethod string
	ShippingCost   string
	AmountToBill   string
}

func newView(order usecase.PricedOrderWithShippingMethod) letterView {
	po := order.PricedOrder
	v := letterView{
		FirstName:      po.CustomerInfo.Name.FirstName.String(),
		LastName:       po.CustomerInfo.Name.LastName.String(),
		OrderId:        po.OrderId.String(),
		ShippingMethod: order.ShippingInfo.ShippingMethod.String(),
		ShippingCost:   order.ShippingInfo.ShippingCost.Value().StringFixed(2),
		AmountToBill:   po.AmountToBill.Value().StringFixed(2),
	}
	for _, line := range po.Lines {
		switch l := line.(type) {
		case usecase.PricedOrderProductLine:
			v.Lines = append(v.Lines, lineView{
				ProductCode: l.ProductCode.String(),
				Quantity:    l.Quantity.Value().String(),
				Price:       l.LinePrice.Value().StringFixed(2),
			})
		case usecase.CommentLine:
			v.Comments = append(v.Comments, string(l))
		}
	}
	return v
}

// Writer implements usecase.AcknowledgmentLetterWriter.
type Writer struct{}

func NewWriter() Writer { return Writer{} }

func (Writer) CreateAcknowledgmentLetter(order usecase.PricedOrderWithShippingMethod) usecase.HTMLString {
	var buf bytes.Buffer
	if err := ackTemplate.Execute(&buf, newView(order)); err != nil {
		// the view only holds strings, so this is unreachable in practice
		return usecase.HTMLString("<p>" + template.HTMLEscapeString(order.PricedOrder.OrderId.String()) + "</p>")
	}
	return usecase.HTMLString(buf.String())
}

var _ usecase.AcknowledgmentLetterWriter = Writer{}
