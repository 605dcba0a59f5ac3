package domain

import (
	"fmt"
	"regexp"
)

var (
	widgetPattern = regexp.MustCompile(`^W\d{4}$`)
	gizmoPattern  = regexp.MustCompile(`^G\d{3}$`)
)

// ProductCode is either a WidgetCode or a GizmoCode.
type ProductCode interface {
	fmt.Stringer
	productCode()
}

// WidgetCode is "W" followed by four digits. Widgets are counted in units.
type WidgetCode struct{ v string }

// GizmoCode is "G" followed by three digits. Gizmos are weighed in kilograms.
type GizmoCode struct{ v string }

func (WidgetCode) productCode() {}
func (GizmoCode) productCode()  {}

func (w WidgetCode) String() string { return w.v }
func (g GizmoCode) String() string  { return g.v }

func NewWidgetCode(field, s string) (WidgetCode, error) {
	v, err := createLike(field, s, widgetPattern)
	return WidgetCode{v}, err
}

func NewGizmoCode(field, s string) (GizmoCode, error) {
	v, err := createLike(field, s, gizmoPattern)
	return GizmoCode{v}, err
}

// NewProductCode dispatches on the leading character of code.
func NewProductCode(field, code string) (ProductCode, error) {
	if code == "" {
		return nil, violation(field, "must not be null or empty")
	}
	switch code[0] {
	case 'W':
		w, err := NewWidgetCode(field, code)
		if err != nil {
			return nil, err
		}
		return w, nil
	case 'G':
		g, err := NewGizmoCode(field, code)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	return nil, violation(field, "format not recognized '%s'", code)
}
