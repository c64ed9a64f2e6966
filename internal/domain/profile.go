package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
)

// Profile extends an identity-provider user with marketplace fields.
// One profile per user id.
type Profile struct {
	ID            int64
	UserID        string
	Role          Role
	PhoneNumber   string
	LicenseNumber string
	Bio           string
}

// ProfileUpdate carries the mutable profile fields. Nil means "leave as is".
type ProfileUpdate struct {
	Role          *Role
	PhoneNumber   *string
	LicenseNumber *string
	Bio           *string
}
