package domain

type PersonalName struct {
	FirstName String50
	LastName  String50
}

type CustomerInfo struct {
	Name         PersonalName
	EmailAddress EmailAddress
	VipStatus    VipStatus
}

// Address is a postal address that has passed both the existence check
// and the per-field constraints. Optional lines are nil when absent.
type Address struct {
	AddressLine1 String50
	AddressLine2 *String50
	AddressLine3 *String50
	AddressLine4 *String50
	City         String50
	ZipCode      ZipCode
	State        UsStateCode
	Country      String50
}
