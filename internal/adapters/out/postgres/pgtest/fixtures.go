package pgtest

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/restaurant"

	"github.com/stretchr/testify/mock"
)

// Now is a fixed instant with the microsecond precision Postgres keeps.
var Now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// Point builds a geo point and panics on invalid input.
func Point(lat, lng float64) kernel.GeoPoint {
	p, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		panic(err)
	}
	return p
}

// Money builds an amount and panics on invalid input.
func Money(amount float64) kernel.Money {
	m, err := kernel.NewMoneyFromFloat(amount)
	if err != nil {
		panic(err)
	}
	return m
}

func NewRestaurant() *restaurant.Restaurant {
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), "Pasta Place", Point(52.52, 13.405))
	if err != nil {
		panic(err)
	}
	return r
}

func NewOrder(restaurantID kernel.UUID) *order.Order {
	customer, err := order.NewCustomer("Ann", "+49 30 1234567")
	if err != nil {
		panic(err)
	}
	position := Point(52.53, 13.41)
	address, err := order.NewAddress("Main st. 1", &position)
	if err != nil {
		panic(err)
	}
	o, err := order.NewOrder(kernel.NewUUID(), restaurantID, customer, address, Money(24.5), Money(3.5), Now)
	if err != nil {
		panic(err)
	}
	return o
}

// NewAvailableCourier returns an active courier that is online.
func NewAvailableCourier(name string) *courier.Courier {
	vehicle, err := courier.NewVehicle(courier.VehicleBicycle, "")
	if err != nil {
		panic(err)
	}
	c, err := courier.NewCourier(kernel.NewUUID(), name, "+49 30 7654321", vehicle, Now)
	if err != nil {
		panic(err)
	}
	c.SetAvailability(true, Now)
	return c
}

// MockAggregateTracker records the aggregates a repository hands to its unit of work.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}
