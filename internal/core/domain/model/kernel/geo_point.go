package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// LatitudeMin is the southern bound of a WGS84 latitude.
	LatitudeMin = -90.0
	// LatitudeMax is the northern bound of a WGS84 latitude.
	LatitudeMax = 90.0
	// LongitudeMin is the western bound of a WGS84 longitude.
	LongitudeMin = -180.0
	// LongitudeMax is the eastern bound of a WGS84 longitude.
	LongitudeMax = 180.0

	earthRadiusKm = 6371.0
)

var (
	// ErrGeoPointIsNotConstructed is returned when a GeoPoint was not created via NewGeoPoint.
	ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
		"geo point must be created via NewGeoPoint constructor")

	// ErrCoordinateIsNotFinite is returned for NaN or infinite coordinates.
	ErrCoordinateIsNotFinite = errors.New("coordinate is not a finite number")

	// ErrCoordinateIsZero is returned for a zero latitude or longitude. Devices report 0/0
	// when they have no fix, so such coordinates are treated as garbage.
	ErrCoordinateIsZero = errors.New("coordinate is zero")
)

// GeoPoint is a validated WGS84 position. Both coordinates are finite, non-zero and
// within their bounds. The zero value is invalid.
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint validates latitude and longitude and returns the point.
//
// Example:
//
//	p, err := kernel.NewGeoPoint(41.0082, 28.9784)
//	if err != nil {
//	    // reject the fix
//	}
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate reports whether the point was built by NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// IsEqual compares two constructed points coordinate by coordinate.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}
	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// DistanceKm returns the great-circle (haversine) distance between two points in kilometres.
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := toRadians(p.latitude)
	lat2 := toRadians(other.latitude)
	dLat := lat2 - lat1
	dLng := toRadians(other.longitude - p.longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h))), nil
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if err := validateCoordinate("latitude", latitude, LatitudeMin, LatitudeMax); err != nil {
		return err
	}
	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if err := validateCoordinate("longitude", longitude, LongitudeMin, LongitudeMax); err != nil {
		return err
	}
	p.longitude = longitude
	return nil
}

func validateCoordinate(name string, value, minValue, maxValue float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return errs.NewValueIsInvalidErrorWithCause(name, ErrCoordinateIsNotFinite)
	}
	if value == 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, ErrCoordinateIsZero)
	}
	if value < minValue || value > maxValue {
		return errs.NewValueIsOutOfRangeError(name, value, minValue, maxValue)
	}
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
