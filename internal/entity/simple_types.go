package domain

import "regexp"

var (
	emailPattern   = regexp.MustCompile(`.+@.+`)
	zipPattern     = regexp.MustCompile(`^\d{5}$`)
	usStatePattern = regexp.MustCompile(`^(A[KLRZ]|C[AOT]|D[CE]|FL|GA|HI|I[ADLN]|K[SY]|LA|M[ADEINOST]|N[CDEHJMVY]|O[HKR]|P[AR]|RI|S[CD]|T[NX]|UT|V[AIT]|W[AIVY])$`)
)

// String50 is a non-empty string of at most 50 characters.
type String50 struct{ v string }

func NewString50(field, s string) (String50, error) {
	v, err := createString(field, s, 50)
	return String50{v}, err
}

// NewString50Option returns nil for empty input. Non-empty input must still fit in 50 chars.
func NewString50Option(field, s string) (*String50, error) {
	v, ok, err := createStringOption(field, s, 50)
	if err != nil || !ok {
		return nil, err
	}
	return &String50{v}, nil
}

func (s String50) String() string { return s.v }

// OptionalString unwraps an optional String50, yielding "" when absent.
func OptionalString(s *String50) string {
	if s == nil {
		return ""
	}
	return s.v
}

type EmailAddress struct{ v string }

func NewEmailAddress(field, s string) (EmailAddress, error) {
	v, err := createLike(field, s, emailPattern)
	return EmailAddress{v}, err
}

func (e EmailAddress) String() string { return e.v }

// ZipCode is a US zip code: exactly five digits.
type ZipCode struct{ v string }

func NewZipCode(field, s string) (ZipCode, error) {
	v, err := createLike(field, s, zipPattern)
	return ZipCode{v}, err
}

func (z ZipCode) String() string { return z.v }

// UsStateCode is a two letter US state (or DC) abbreviation.
type UsStateCode struct{ v string }

func NewUsStateCode(field, s string) (UsStateCode, error) {
	v, err := createLike(field, s, usStatePattern)
	return UsStateCode{v}, err
}

func (u UsStateCode) String() string { return u.v }

type VipStatus int

const (
	Normal VipStatus = iota
	Vip
)

func NewVipStatus(field, s string) (VipStatus, error) {
	switch s {
	case "normal", "Normal":
		return Normal, nil
	case "vip", "Vip", "VIP":
		return Vip, nil
	}
	return Normal, violation(field, "must be one of 'Normal', 'VIP'")
}

func (v VipStatus) String() string {
	switch v {
	case Normal:
		return "Normal"
	case Vip:
		return "VIP"
	}
	panic("domain: unknown vip status")
}
