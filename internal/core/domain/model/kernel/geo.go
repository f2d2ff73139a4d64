package kernel

import (
	"fmt"

	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

const (
	// GeoMinLat and GeoMaxLat bound valid latitudes in degrees.
	GeoMinLat = -90.0
	GeoMaxLat = 90.0
	// GeoMinLng and GeoMaxLng bound valid longitudes in degrees.
	GeoMinLng = -180.0
	GeoMaxLng = 180.0
)

// ErrAddressIsNotConstructed is returned when using a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress")

// GeoPoint is a WGS84 coordinate pair. Distances are supplied by callers,
// never derived from points here.
type GeoPoint struct {
	lat float64
	lng float64
}

// NewGeoPoint creates a validated coordinate pair.
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	if lat < GeoMinLat || lat > GeoMaxLat {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", lat, GeoMinLat, GeoMaxLat)
	}
	if lng < GeoMinLng || lng > GeoMaxLng {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", lng, GeoMinLng, GeoMaxLng)
	}
	return GeoPoint{lat: lat, lng: lng}, nil
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// IsZero reports whether the point is the unset zero value.
func (p GeoPoint) IsZero() bool {
	return p.lat == 0 && p.lng == 0
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.lat, p.lng)
}

// Address is a postal address with an optional coordinate.
// Street text is required; the coordinate may be the zero point when the
// caller has not geocoded the address.
type Address struct {
	street string
	point  GeoPoint

	guard guard.ConstructorGuard
}

// NewAddress creates a validated address.
func NewAddress(street string, point GeoPoint) (Address, error) {
	if street == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}
	return Address{
		street: street,
		point:  point,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Street returns the address text.
func (a Address) Street() string {
	return a.street
}

// Point returns the geocoded coordinate, which may be zero.
func (a Address) Point() GeoPoint {
	return a.point
}

// IsEqual compares two addresses by street text and coordinate.
func (a Address) IsEqual(other Address) bool {
	return a.street == other.street && a.point == other.point
}

// Validate ensures the address was created via NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}
