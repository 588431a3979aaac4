package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Ayşe", "+905550000000")
	require.NoError(t, err)
	address, err := order.NewAddress("Istiklal Cd. 10", nil)
	require.NoError(t, err)
	subtotal, _ := kernel.NewMoneyFromFloat(120)
	fee, _ := kernel.NewMoneyFromFloat(15)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), customer, address, subtotal, fee, now)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with computed total", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "135.00", o.Total().String())
		assert.Equal(t, []string{order.ChangeCreated}, o.Changes())
		assert.Equal(t, now, o.CreatedAt())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, order.Customer{}, order.Address{},
			kernel.Money{}, kernel.ZeroMoney(), now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Contains(t, err.Error(), "restaurant id")
		assert.Contains(t, err.Error(), "customer")
		assert.ErrorIs(t, err, order.ErrStreetIsRequired)
		assert.ErrorIs(t, err, kernel.ErrMoneyIsNotConstructed)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var o *order.Order
		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
		assert.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestNewCustomerAndAddress(t *testing.T) {
	_, err := order.NewCustomer(" ", "")
	assert.ErrorIs(t, err, order.ErrCustomerNameIsRequired)
	assert.ErrorIs(t, err, order.ErrCustomerPhoneIsRequired)

	p, _ := kernel.NewGeoPoint(41.03, 28.98)
	a, err := order.NewAddress(" Istiklal Cd. 10 ", &p)
	require.NoError(t, err)
	assert.Equal(t, "Istiklal Cd. 10", a.Street())
	got, ok := a.Position()
	assert.True(t, ok)
	assert.InDelta(t, 41.03, got.Latitude(), 1e-9)

	_, err = order.NewAddress("x", &kernel.GeoPoint{})
	assert.ErrorIs(t, err, kernel.ErrGeoPointIsNotConstructed)
}

func TestOrder_Promote(t *testing.T) {
	later := now.Add(time.Minute)

	t.Run("should move forward and record change", func(t *testing.T) {
		o := newTestOrder(t)
		o.ClearChanges()

		changed, err := o.Promote(order.Confirmed, later)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, later, o.UpdatedAt())
		assert.Equal(t, []string{order.ChangeStatusChanged}, o.Changes())
	})

	t.Run("should never regress", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.Advance(order.Preparing, now)
		require.NoError(t, err)
		o.ClearChanges()

		changed, err := o.Promote(order.Confirmed, later)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, order.Preparing, o.Status())
		assert.Empty(t, o.Changes())
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		o := newTestOrder(t)
		changed, err := o.Promote(order.Pending, later)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("terminal order cannot move", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.Promote(order.Delivered, later)
		require.NoError(t, err)

		_, err = o.Promote(order.Cancelled, later)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	o := newTestOrder(t)

	changed, err := o.Cancel(now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, order.Cancelled, o.Status())

	changed, err = o.Cancel(now)
	require.NoError(t, err)
	assert.False(t, changed)

	delivered := newTestOrder(t)
	_, _ = delivered.Promote(order.Delivered, now)
	_, err = delivered.Cancel(now)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.Delivered, delivered.Status())
}

func TestOrder_Advance(t *testing.T) {
	tests := []struct {
		name    string
		from    []order.Status
		target  order.Status
		want    order.Status
		changed bool
		wantErr bool
	}{
		{name: "pending to confirmed", target: order.Confirmed, want: order.Confirmed, changed: true},
		{name: "skip to ready", target: order.ReadyForPickup, want: order.ReadyForPickup, changed: true},
		{name: "repeat is a no-op", from: []order.Status{order.Preparing}, target: order.Preparing,
			want: order.Preparing},
		{name: "backwards", from: []order.Status{order.ReadyForPickup}, target: order.Preparing,
			want: order.ReadyForPickup, wantErr: true},
		{name: "coordinator status", target: order.OutForDelivery, want: order.Pending, wantErr: true},
		{name: "cancel is not a kitchen step", target: order.Cancelled, want: order.Pending, wantErr: true},
		{name: "back to pending", from: []order.Status{order.Confirmed}, target: order.Pending,
			want: order.Confirmed, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrder(t)
			for _, s := range tt.from {
				_, err := o.Advance(s, now)
				require.NoError(t, err)
			}

			changed, err := o.Advance(tt.target, now)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.want, o.Status())
		})
	}

	t.Run("out for delivery blocks the kitchen", func(t *testing.T) {
		o := newTestOrder(t)
		_, _ = o.Promote(order.OutForDelivery, now)

		_, err := o.Advance(order.ReadyForPickup, now)
		var transitionErr *errs.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Empty(t, transitionErr.Allowed)
	})
}

func TestOrder_ValidateAssignable(t *testing.T) {
	for _, tt := range []struct {
		status order.Status
		ok     bool
	}{
		{order.Pending, true},
		{order.Confirmed, true},
		{order.ReadyForPickup, true},
		{order.OutForDelivery, false},
		{order.Delivered, false},
		{order.Cancelled, false},
	} {
		t.Run(tt.status.String(), func(t *testing.T) {
			o := newTestOrder(t)
			_, _ = o.Promote(tt.status, now)
			err := o.ValidateAssignable()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			}
		})
	}
}

func TestRestoreOrder(t *testing.T) {
	src := newTestOrder(t)

	restored, err := order.RestoreOrder(order.RestoreParams{
		ID:           src.ID(),
		RestaurantID: src.RestaurantID(),
		Customer:     src.Customer(),
		Address:      src.Address(),
		Subtotal:     src.Subtotal(),
		DeliveryFee:  src.DeliveryFee(),
		Status:       order.Preparing,
		CreatedAt:    src.CreatedAt(),
		UpdatedAt:    src.UpdatedAt(),
	})
	require.NoError(t, err)
	assert.True(t, restored.IsEqual(src))
	assert.Equal(t, order.Preparing, restored.Status())
	assert.Empty(t, restored.Changes())

	_, err = order.RestoreOrder(order.RestoreParams{})
	require.Error(t, err)
}
