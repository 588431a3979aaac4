package services

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ErrStatusPairBroken is returned when a transition would leave an assignment and its order
// in statuses that may not coexist. It indicates corrupted state and is never retried.
var ErrStatusPairBroken = errors.New("assignment and order statuses do not pair")

// DeliverySynchronizer applies the cross-entity effects of assignment creation and
// transitions to the order and courier. It mutates aggregates only; the caller loads them
// under row locks and persists all three in one transaction.
//
// Effects per transition:
//
//	assigned  -> accepted     order confirmed (never regresses), courier busy
//	assigned  -> rejected     order unchanged, courier releases the assignment
//	accepted  -> picked_up    order out_for_delivery, courier on_delivery
//	picked_up -> on_the_way   order out_for_delivery, courier on_delivery
//	on_the_way -> delivered   order delivered, courier releases the assignment
//	any live  -> cancelled    order cancelled, courier releases the assignment
//
// Example:
//
//	sync := services.NewDeliverySynchronizer()
//	changed, err := sync.Transition(a, o, c, assignment.StatusAccepted, assignment.ActorCourier, now)
type DeliverySynchronizer struct{}

func NewDeliverySynchronizer() DeliverySynchronizer {
	return DeliverySynchronizer{}
}

// Assign creates an assignment of o to c, counts it on the courier and confirms a pending order.
//
// The caller has already established that o has no live assignment.
func (DeliverySynchronizer) Assign(
	id kernel.UUID,
	o *order.Order,
	c *courier.Courier,
	fee kernel.Money,
	now time.Time,
) (*assignment.Assignment, error) {
	if err := errors.Join(o.Validate(), c.Validate()); err != nil {
		return nil, err
	}
	if err := o.ValidateAssignable(); err != nil {
		return nil, err
	}
	if err := c.ValidateCanTakeAssignment(); err != nil {
		return nil, err
	}

	a, err := assignment.NewAssignment(id, o.ID(), c.ID(), o.RestaurantID(), fee, now)
	if err != nil {
		return nil, err
	}

	if _, err = o.Promote(order.Confirmed, now); err != nil {
		return nil, err
	}
	c.AddAssignment(now)

	if err = checkPair(a, o); err != nil {
		return nil, err
	}
	return a, nil
}

// Transition moves a to target and applies the matching order and courier effects.
// A target equal to the current status changes nothing and reports false.
func (DeliverySynchronizer) Transition(
	a *assignment.Assignment,
	o *order.Order,
	c *courier.Courier,
	target assignment.Status,
	actor assignment.Actor,
	now time.Time,
) (bool, error) {
	if err := errors.Join(a.Validate(), o.Validate(), c.Validate()); err != nil {
		return false, err
	}
	if !a.OrderID().IsEqual(o.ID()) || !a.CourierID().IsEqual(c.ID()) {
		return false, fmt.Errorf("assignment %s does not bind order %s and courier %s", a.ID(), o.ID(), c.ID())
	}

	changed, err := a.Transition(target, actor, now)
	if err != nil || !changed {
		return false, err
	}

	switch target {
	case assignment.StatusAccepted:
		_, err = o.Promote(order.Confirmed, now)
		c.MarkBusy(now)
	case assignment.StatusRejected:
		err = c.ReleaseAssignment(now)
	case assignment.StatusPickedUp, assignment.StatusOnTheWay:
		_, err = o.Promote(order.OutForDelivery, now)
		c.MarkOnDelivery(now)
	case assignment.StatusDelivered:
		_, err = o.Promote(order.Delivered, now)
		if err == nil {
			err = c.ReleaseAssignment(now)
		}
	case assignment.StatusCancelled:
		_, err = o.Cancel(now)
		if err == nil {
			err = c.ReleaseAssignment(now)
		}
	case assignment.StatusAssigned, assignment.StatusUnknown:
	}
	if err != nil {
		return false, err
	}

	if err = checkPair(a, o); err != nil {
		return false, err
	}
	return true, nil
}

func checkPair(a *assignment.Assignment, o *order.Order) error {
	if !a.Status().PairsWith(o.Status()) {
		return fmt.Errorf("%w: assignment %s is %s, order %s is %s",
			ErrStatusPairBroken, a.ID(), a.Status(), o.ID(), o.Status())
	}
	return nil
}
