package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/aq2208/gorder-workflow/internal/usecase"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const checkAddressMethod = "/address.v1.AddressService/CheckAddress"

type addressMsg struct {
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	AddressLine3 string `json:"address_line3,omitempty"`
	AddressLine4 string `json:"address_line4,omitempty"`
	City         string `json:"city"`
	ZipCode      string `json:"zip_code"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

type checkAddressRequest struct {
	Address addressMsg `json:"address"`
}

// checkAddressResponse carries the address as the service normalized it.
type checkAddressResponse struct {
	Address *addressMsg `json:"address,omitempty"`
}

func toAddressMsg(a usecase.UnvalidatedAddress) addressMsg {
	return addressMsg{
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		AddressLine3: a.AddressLine3,
		AddressLine4: a.AddressLine4,
		City:         a.City,
		ZipCode:      a.ZipCode,
		State:        a.State,
		Country:      a.Country,
	}
}

func (m addressMsg) toChecked() usecase.CheckedAddress {
	return usecase.CheckedAddress{
		AddressLine1: m.AddressLine1,
		AddressLine2: m.AddressLine2,
		AddressLine3: m.AddressLine3,
		AddressLine4: m.AddressLine4,
		City:         m.City,
		ZipCode:      m.ZipCode,
		State:        m.State,
		Country:      m.Country,
	}
}

// AddressClient implements usecase.AddressChecker against the remote
// address-verification service.
type AddressClient struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
	caller  string
}

// NewAddressClient builds the client. caller is sent as x-caller metadata
// (user-agent is reserved by gRPC).
func NewAddressClient(conn grpc.ClientConnInterface, timeout time.Duration, caller string) *AddressClient {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &AddressClient{conn: conn, timeout: timeout, caller: caller}
}

// CheckAddressExists maps NotFound to usecase.AddressNotFound and
// InvalidArgument to usecase.InvalidFormat. Any other failure is returned
// wrapped and becomes a RemoteServiceError in the workflow.
func (c *AddressClient) CheckAddressExists(ctx context.Context, addr usecase.UnvalidatedAddress) (usecase.CheckedAddress, error) {
	// ensure per-call timeout if caller didn't set one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if c.caller != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "x-caller", c.caller)
	}

	req := checkAddressRequest{Address: toAddressMsg(addr)}
	var resp checkAddressResponse
	if err := c.conn.Invoke(ctx, checkAddressMethod, &req, &resp, grpc.ForceCodec(jsonCodec{})); err != nil {
		switch status.Code(err) {
		case codes.NotFound:
			return usecase.CheckedAddress{}, usecase.AddressNotFound
		case codes.InvalidArgument:
			return usecase.CheckedAddress{}, usecase.InvalidFormat
		}
		return usecase.CheckedAddress{}, fmt.Errorf("check address: %w", err)
	}

	if resp.Address == nil {
		return usecase.CheckedAddress(addr), nil
	}
	return resp.Address.toChecked(), nil
}

var _ usecase.AddressChecker = (*AddressClient)(nil)
