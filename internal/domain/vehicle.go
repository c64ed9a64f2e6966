package domain

import "time"

// OwnerName is the display name of a vehicle's owner, read from the
// identity provider's users table.
type OwnerName struct {
	FirstName string
	LastName  string
}

type Vehicle struct {
	ID           int64
	OwnerID      string
	Make         string
	Model        string
	Year         int
	LicensePlate string
	PriceCents   int64 // per day, KES minor units
	Location     string
	ImageURL     string
	Available    bool
	Features     []string
	GPSEnabled   bool
	Lat          *float64
	Lng          *float64
	Owner        *OwnerName
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VehicleFilter narrows a vehicle listing. Zero values mean "no filter".
type VehicleFilter struct {
	Search        string
	Location      string
	MinPriceCents int64
	MaxPriceCents int64
}

// VehicleUpdate carries the owner-mutable vehicle fields. Nil means "leave as is".
type VehicleUpdate struct {
	Make         *string
	Model        *string
	Year         *int
	LicensePlate *string
	PriceCents   *int64
	Location     *string
	ImageURL     *string
	Available    *bool
	Features     *[]string
	GPSEnabled   *bool
	Lat          *float64
	Lng          *float64
}
