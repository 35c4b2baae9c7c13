package domain

import (
	"math"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type VendorProfile struct {
	ID           string  `db:"id" json:"id"`
	UserID       string  `db:"user_id" json:"userId"`
	BusinessName string  `db:"business_name" json:"businessName"`
	Bio          *string `db:"bio" json:"bio"`
	ZipCode      string  `db:"zip_code" json:"zipCode"`

	AdminApproved          bool `db:"admin_approved" json:"adminApproved"`
	OffersVirtualServices  bool `db:"offers_virtual_services" json:"offersVirtualServices"`
	OffersInPersonServices bool `db:"offers_in_person_services" json:"offersInPersonServices"`

	Latitude      *float64 `db:"latitude" json:"latitude"`
	Longitude     *float64 `db:"longitude" json:"longitude"`
	ServiceRadius *float64 `db:"service_radius" json:"serviceRadius"`

	ServiceCategories pq.StringArray   `db:"service_categories" json:"serviceCategories"`
	HourlyRate        *decimal.Decimal `db:"hourly_rate" json:"hourlyRate"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// HasCategory reports whether the vendor lists the given category id.
func (v VendorProfile) HasCategory(categoryID string) bool {
	for _, id := range v.ServiceCategories {
		if id == categoryID {
			return true
		}
	}
	return false
}

// HasServiceArea reports whether the vendor has coordinates and a positive
// radius that qualify it for in-person distance evaluation. Records with
// missing or out-of-range coordinates do not qualify.
func (v VendorProfile) HasServiceArea() bool {
	if v.Latitude == nil || v.Longitude == nil || v.ServiceRadius == nil {
		return false
	}
	lat, lng := *v.Latitude, *v.Longitude
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return false
	}
	return *v.ServiceRadius > 0
}
