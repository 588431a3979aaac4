package order

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrCustomerNameIsRequired is returned for a blank customer name.
	ErrCustomerNameIsRequired = errs.NewValueIsRequiredError("customer name")
	// ErrCustomerPhoneIsRequired is returned for a blank customer phone.
	ErrCustomerPhoneIsRequired = errs.NewValueIsRequiredError("customer phone")
	// ErrStreetIsRequired is returned for a blank delivery street.
	ErrStreetIsRequired = errs.NewValueIsRequiredError("street")
)

// Customer is the contact the courier calls on arrival.
type Customer struct {
	name  string
	phone string
}

// NewCustomer trims and validates the contact fields.
func NewCustomer(name, phone string) (Customer, error) {
	c := Customer{name: strings.TrimSpace(name), phone: strings.TrimSpace(phone)}

	var nameErr, phoneErr error
	if c.name == "" {
		nameErr = ErrCustomerNameIsRequired
	}
	if c.phone == "" {
		phoneErr = ErrCustomerPhoneIsRequired
	}
	if err := errors.Join(nameErr, phoneErr); err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Phone() string { return c.phone }

// Address is the delivery destination. The position is optional: only addresses
// verified by geocoding carry one.
type Address struct {
	street   string
	position *kernel.GeoPoint
}

// NewAddress validates the street and, when given, the verified position.
func NewAddress(street string, position *kernel.GeoPoint) (Address, error) {
	street = strings.TrimSpace(street)
	if street == "" {
		return Address{}, ErrStreetIsRequired
	}
	if position != nil {
		if err := position.Validate(); err != nil {
			return Address{}, err
		}
		p := *position
		position = &p
	}
	return Address{street: street, position: position}, nil
}

func (a Address) Street() string { return a.street }

// Position returns the verified position and whether one is known.
func (a Address) Position() (kernel.GeoPoint, bool) {
	if a.position == nil {
		return kernel.GeoPoint{}, false
	}
	return *a.position, true
}
