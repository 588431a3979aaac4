package courier

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Change kinds recorded by Courier for the outbox.
const (
	ChangeCreated       = "courier.created"
	ChangeStatusChanged = "courier.status_changed"
)

// Reasons reported by CourierUnavailableError.
const (
	ReasonInactive = "inactive"
	ReasonOffline  = "offline"
)

var (
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrPhoneIsRequired         = errs.NewValueIsRequiredError("phone")
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier is the aggregate root for a delivery courier.
//
// The status shown to dispatchers is derived, never set directly:
//   - inactive while the account is disabled
//   - busy while the courier holds live assignments none of which is picked up
//   - on_delivery once any held order is picked up
//   - available or offline, following the availability toggle, when nothing is held
//
// Going offline with live assignments keeps the working status; in-flight deliveries
// are never cancelled by the toggle.
//
// Position and last location update are written by the location tracker through a
// compare-and-set in storage; the aggregate only exposes them.
type Courier struct {
	kernel.ChangeLog

	id                 kernel.UUID
	name               string
	phone              string
	vehicle            Vehicle
	isActive           bool
	isAvailable        bool
	status             Status
	activeAssignments  int
	position           *kernel.GeoPoint
	lastLocationUpdate *time.Time
	updatedAt          time.Time

	guard guard.ConstructorGuard
}

// NewCourier creates an active courier that is offline until it toggles availability.
//
// Example:
//
//	vehicle, _ := courier.NewVehicle(courier.VehicleMotorcycle, "34 ABC 123")
//	c, err := courier.NewCourier(kernel.NewUUID(), "Mehmet", "+905551112233", vehicle, clock.Now())
func NewCourier(id kernel.UUID, name, phone string, vehicle Vehicle, now time.Time) (*Courier, error) {
	c := &Courier{
		isActive:  true,
		status:    StatusOffline,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
		c.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	c.RecordChange(ChangeCreated)
	return c, nil
}

// RestoreParams carries a persisted courier back into the domain.
type RestoreParams struct {
	ID                 kernel.UUID
	Name               string
	Phone              string
	Vehicle            Vehicle
	IsActive           bool
	IsAvailable        bool
	Status             Status
	ActiveAssignments  int
	Position           *kernel.GeoPoint
	LastLocationUpdate *time.Time
	UpdatedAt          time.Time
}

// RestoreCourier rebuilds a courier loaded from storage. No change is recorded.
func RestoreCourier(p RestoreParams) (*Courier, error) {
	c := &Courier{
		isActive:           p.IsActive,
		isAvailable:        p.IsAvailable,
		lastLocationUpdate: p.LastLocationUpdate,
		updatedAt:          p.UpdatedAt,
		guard:              guard.NewConstructorGuard(),
	}

	var counterErr error
	if p.ActiveAssignments < 0 {
		counterErr = errs.NewValueIsOutOfRangeError("active assignments", p.ActiveAssignments, 0, "unbounded")
	}

	if err := errors.Join(
		c.setID(p.ID),
		c.setName(p.Name),
		c.setPhone(p.Phone),
		c.setVehicle(p.Vehicle),
		p.Status.Validate(),
		counterErr,
	); err != nil {
		return nil, err
	}

	if p.Position != nil {
		if err := p.Position.Validate(); err != nil {
			return nil, err
		}
		pos := *p.Position
		c.position = &pos
	}

	c.status = p.Status
	c.activeAssignments = p.ActiveAssignments
	return c, nil
}

func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() kernel.UUID        { return c.id }
func (c *Courier) Name() string           { return c.name }
func (c *Courier) Phone() string          { return c.phone }
func (c *Courier) Vehicle() Vehicle       { return c.vehicle }
func (c *Courier) IsActive() bool         { return c.isActive }
func (c *Courier) IsAvailable() bool      { return c.isAvailable }
func (c *Courier) Status() Status         { return c.status }
func (c *Courier) ActiveAssignments() int { return c.activeAssignments }
func (c *Courier) UpdatedAt() time.Time   { return c.updatedAt }

// Position returns the last accepted position and whether one is known.
func (c *Courier) Position() (kernel.GeoPoint, bool) {
	if c.position == nil {
		return kernel.GeoPoint{}, false
	}
	return *c.position, true
}

// LastLocationUpdate returns the time of the last accepted position.
func (c *Courier) LastLocationUpdate() (time.Time, bool) {
	if c.lastLocationUpdate == nil {
		return time.Time{}, false
	}
	return *c.lastLocationUpdate, true
}

// ValidateCanTakeAssignment returns a CourierUnavailableError unless the account is
// active and the courier accepts work.
func (c *Courier) ValidateCanTakeAssignment() error {
	if !c.isActive {
		return errs.NewCourierUnavailableError(c.id.String(), ReasonInactive)
	}
	if !c.isAvailable {
		return errs.NewCourierUnavailableError(c.id.String(), ReasonOffline)
	}
	return nil
}

// AddAssignment counts a new live assignment.
func (c *Courier) AddAssignment(now time.Time) {
	c.activeAssignments++
	c.applyStatus(c.workingStatus(StatusBusy), now)
}

// MarkBusy reflects an accepted assignment. A courier already carrying an order stays on_delivery.
func (c *Courier) MarkBusy(now time.Time) {
	c.applyStatus(c.workingStatus(StatusBusy), now)
}

// MarkOnDelivery reflects a picked up order.
func (c *Courier) MarkOnDelivery(now time.Time) {
	c.applyStatus(c.workingStatus(StatusOnDelivery), now)
}

// ReleaseAssignment uncounts a live assignment that ended (delivered, rejected or cancelled).
// When nothing is left the status falls back to available or offline.
func (c *Courier) ReleaseAssignment(now time.Time) error {
	if c.activeAssignments == 0 {
		return errs.NewValueIsOutOfRangeErrorWithCause("active assignments", -1, 0, "unbounded",
			fmt.Errorf("courier %s has no live assignment to release", c.id))
	}
	c.activeAssignments--
	c.applyStatus(c.derivedStatus(), now)
	return nil
}

// SetAvailability toggles whether the courier accepts new work. It reports whether anything changed.
func (c *Courier) SetAvailability(available bool, now time.Time) bool {
	if c.isAvailable == available {
		return false
	}
	c.isAvailable = available
	c.applyStatus(c.derivedStatus(), now)
	return true
}

// SetActive enables or disables the account. It reports whether anything changed.
func (c *Courier) SetActive(active bool, now time.Time) bool {
	if c.isActive == active {
		return false
	}
	c.isActive = active
	c.applyStatus(c.derivedStatus(), now)
	return true
}

func (c *Courier) workingStatus(wanted Status) Status {
	if !c.isActive {
		return StatusInactive
	}
	if c.status == StatusOnDelivery && c.activeAssignments > 0 {
		return StatusOnDelivery
	}
	return wanted
}

func (c *Courier) derivedStatus() Status {
	switch {
	case !c.isActive:
		return StatusInactive
	case c.activeAssignments > 0 && c.status.IsWorking():
		return c.status
	case c.activeAssignments > 0:
		return StatusBusy
	case c.isAvailable:
		return StatusAvailable
	default:
		return StatusOffline
	}
}

func (c *Courier) applyStatus(status Status, now time.Time) {
	c.status = status
	c.touch(now)
}

func (c *Courier) touch(now time.Time) {
	c.updatedAt = now
	c.RecordChange(ChangeStatusChanged)
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrPhoneIsRequired
	}
	c.phone = phone
	return nil
}

func (c *Courier) setVehicle(v Vehicle) error {
	if v.kind == "" {
		return errs.NewValueIsRequiredError("vehicle")
	}
	c.vehicle = v
	return nil
}
