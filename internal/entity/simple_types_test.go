package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewString50(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{name: "single char", in: "a"},
		{name: "exactly 50", in: strings.Repeat("x", 50)},
		{name: "multibyte counts runes", in: strings.Repeat("é", 50)},
		{name: "empty", in: "", wantErr: "Name: must not be null or empty"},
		{name: "51 chars", in: strings.Repeat("x", 51), wantErr: "Name: must not be more than 50 chars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewString50("Name", tt.in)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestNewString50Option(t *testing.T) {
	got, err := NewString50Option("AddressLine2", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = NewString50Option("AddressLine2", "Suite 4")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Suite 4", OptionalString(got))

	_, err = NewString50Option("AddressLine2", strings.Repeat("x", 51))
	require.Error(t, err)

	var ce *ConstraintError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "AddressLine2", ce.Field)
}

func TestPatternTypes(t *testing.T) {
	_, err := NewEmailAddress("EmailAddress", "jane@example.com")
	assert.NoError(t, err)
	_, err = NewEmailAddress("EmailAddress", "jane.example.com")
	assert.EqualError(t, err, "EmailAddress: 'jane.example.com' must match the pattern '.+@.+'")
	_, err = NewEmailAddress("EmailAddress", "")
	assert.EqualError(t, err, "EmailAddress: must not be null or empty")

	_, err = NewZipCode("ZipCode", "90210")
	assert.NoError(t, err)
	for _, bad := range []string{"1234", "123456", "abcde"} {
		_, err = NewZipCode("ZipCode", bad)
		assert.Error(t, err, bad)
	}

	for _, ok := range []string{"CA", "NY", "DC", "WY"} {
		_, err = NewUsStateCode("State", ok)
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"ZZ", "ca", "CAL"} {
		_, err = NewUsStateCode("State", bad)
		assert.Error(t, err, bad)
	}
}

func TestNewVipStatus(t *testing.T) {
	for in, want := range map[string]VipStatus{"Normal": Normal, "normal": Normal, "VIP": Vip, "vip": Vip, "Vip": Vip} {
		got, err := NewVipStatus("VipStatus", in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := NewVipStatus("VipStatus", "gold")
	assert.EqualError(t, err, "VipStatus: must be one of 'Normal', 'VIP'")
}

func TestNewPricingMethod(t *testing.T) {
	assert.Equal(t, StandardPricing{}, NewPricingMethod(""))
	assert.Equal(t, StandardPricing{}, NewPricingMethod("   "))
	assert.Equal(t, PromotionPricing{Code: "SPRING25"}, NewPricingMethod("SPRING25"))
}
