package usecase

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/aq2208/gorder-workflow/internal/entity"
	"golang.org/x/sync/errgroup"
)

const addressCheckService = "AddressCheck"

// ValidateOrder turns an unvalidated order into a ValidatedOrder. Steps run in
// field order and the first failure is returned. The shipping and billing
// address checks run concurrently, but their outcomes are reported as if the
// shipping address were checked and built before the billing address.
func ValidateOrder(ctx context.Context, products ProductCatalog, addresses AddressChecker, in UnvalidatedOrder) (ValidatedOrder, error) {
	orderID, err := domain.NewOrderId("OrderId", in.OrderId)
	if err != nil {
		return ValidatedOrder{}, validationFailure("", err)
	}

	customer, err := toCustomerInfo(in.CustomerInfo)
	if err != nil {
		return ValidatedOrder{}, err
	}

	shipping, billing := checkAddresses(ctx, addresses, in.ShippingAddress, in.BillingAddress)
	if shipping.err != nil {
		return ValidatedOrder{}, shipping.err
	}
	shippingAddress, err := toAddress("ShippingAddress", shipping.address)
	if err != nil {
		return ValidatedOrder{}, err
	}
	if billing.err != nil {
		return ValidatedOrder{}, billing.err
	}
	billingAddress, err := toAddress("BillingAddress", billing.address)
	if err != nil {
		return ValidatedOrder{}, err
	}

	lines := make([]ValidatedOrderLine, 0, len(in.Lines))
	for i, line := range in.Lines {
		vl, err := toValidatedOrderLine(products, fmt.Sprintf("Lines[%d]", i), line)
		if err != nil {
			return ValidatedOrder{}, err
		}
		lines = append(lines, vl)
	}

	return ValidatedOrder{
		OrderId:         orderID,
		CustomerInfo:    customer,
		ShippingAddress: shippingAddress,
		BillingAddress:  billingAddress,
		Lines:           lines,
		PricingMethod:   domain.NewPricingMethod(in.PromotionCode),
	}, nil
}

func toCustomerInfo(in UnvalidatedCustomerInfo) (domain.CustomerInfo, error) {
	const path = "CustomerInfo"
	first, err := domain.NewString50("FirstName", in.FirstName)
	if err != nil {
		return domain.CustomerInfo{}, validationFailure(path, err)
	}
	last, err := domain.NewString50("LastName", in.LastName)
	if err != nil {
		return domain.CustomerInfo{}, validationFailure(path, err)
	}
	email, err := domain.NewEmailAddress("EmailAddress", in.EmailAddress)
	if err != nil {
		return domain.CustomerInfo{}, validationFailure(path, err)
	}
	vip, err := domain.NewVipStatus("VipStatus", in.VipStatus)
	if err != nil {
		return domain.CustomerInfo{}, validationFailure(path, err)
	}
	return domain.CustomerInfo{
		Name:         domain.PersonalName{FirstName: first, LastName: last},
		EmailAddress: email,
		VipStatus:    vip,
	}, nil
}

type addressCheck struct {
	address CheckedAddress
	err     error
}

// checkAddresses runs both existence checks concurrently and waits for both,
// so neither outcome depends on the other finishing first.
func checkAddresses(ctx context.Context, addresses AddressChecker, shipping, billing UnvalidatedAddress) (addressCheck, addressCheck) {
	var s, b addressCheck
	var g errgroup.Group
	g.Go(func() error {
		s.address, s.err = toCheckedAddress(ctx, addresses, "ShippingAddress", shipping)
		return nil
	})
	g.Go(func() error {
		b.address, b.err = toCheckedAddress(ctx, addresses, "BillingAddress", billing)
		return nil
	})
	_ = g.Wait()
	return s, b
}

func toCheckedAddress(ctx context.Context, addresses AddressChecker, field string, addr UnvalidatedAddress) (CheckedAddress, error) {
	checked, err := addresses.CheckAddressExists(ctx, addr)
	if err == nil {
		return checked, nil
	}

	var rejected AddressValidationError
	if errors.As(err, &rejected) {
		switch rejected {
		case AddressNotFound:
			return CheckedAddress{}, ValidationError{Field: field, Message: "Address not found"}
		case InvalidFormat:
			return CheckedAddress{}, ValidationError{Field: field, Message: "Address has bad format"}
		}
	}
	return CheckedAddress{}, RemoteServiceError{Service: ServiceInfo{Name: addressCheckService}, Err: err}
}

func toAddress(path string, in CheckedAddress) (domain.Address, error) {
	line1, err := domain.NewString50("AddressLine1", in.AddressLine1)
	if err != nil {
		return domain.Address{}, validationFailure(path, err)
	}
	line2, err := domain.NewString50Option("AddressLine2", in.AddressLine2)
	if err != nil {
		return domain.Address{}, validationFailure(path, err)
	}
	line3, err := domain.NewString50Option("AddressLine3", in.AddressLine3)
	if err != nil {
		return domain.Address{}, validationFailure(path, err)
	}
	line4, err := domain.NewString50Option("AddressLine4", in.AddressLine4)
	if err != nil {
		return domain.Address{}, validationFailure(path, err)
	}
	city, err := domain.NewString50("City", in.City)
	if err != nil {
		return domain.Address{}, validationFailure(path, err)
	}
	zip, err := domain.NewZipCode("ZipCode", in.ZipCode)
	if err != nil {
		return domain.Address{}, validationFailure(path, err)
	}
	state, err := domain.NewUsStateCode("State", in.State)
	if err != nil {
		return domain.Address{}, validationFailure(path, err)
	}
	country, err := domain.NewString50("Country", in.Country)
	if err != nil {
		return domain.Address{}, validationFailure(path, err)
	}
	return domain.Address{
		AddressLine1: line1,
		AddressLine2: line2,
		AddressLine3: line3,
		AddressLine4: line4,
		City:         city,
		ZipCode:      zip,
		State:        state,
		Country:      country,
	}, nil
}

func toValidatedOrderLine(products ProductCatalog, path string, in UnvalidatedOrderLine) (ValidatedOrderLine, error) {
	lineID, err := domain.NewOrderLineId("OrderLineId", in.OrderLineId)
	if err != nil {
		return ValidatedOrderLine{}, validationFailure(path, err)
	}
	code, err := domain.NewProductCode("ProductCode", in.ProductCode)
	if err != nil {
		return ValidatedOrderLine{}, validationFailure(path, err)
	}
	if !products.ProductCodeExists(code) {
		return ValidatedOrderLine{}, ValidationError{
			Field:   joinField(path, "ProductCode"),
			Message: fmt.Sprintf("unknown product code '%s'", code),
		}
	}
	qty, err := domain.NewOrderQuantity("Quantity", code, in.Quantity)
	if err != nil {
		return ValidatedOrderLine{}, validationFailure(path, err)
	}
	return ValidatedOrderLine{OrderLineId: lineID, ProductCode: code, Quantity: qty}, nil
}
