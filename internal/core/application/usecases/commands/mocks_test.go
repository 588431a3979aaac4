package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/restaurant"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() kernel.Clock {
	return kernel.ClockFunc(func() time.Time { return fixedNow })
}

// noRetry keeps the tests fast: transient errors are retried immediately.
func noRetry(retries uint64) commands.RetryPolicy {
	return commands.RetryPolicy{Base: time.Millisecond, Cap: time.Millisecond, MaxRetries: retries}
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, restaurantID)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) GetOldestAwaitingCourier(ctx context.Context) (*order.Order, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockCourierRepository struct {
	mock.Mock
}

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}

func (m *MockCourierRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}

func (m *MockCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	couriers, _ := args.Get(0).([]*courier.Courier)
	return couriers, args.Error(1)
}

func (m *MockCourierRepository) GetAllAvailable(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	couriers, _ := args.Get(0).([]*courier.Courier)
	return couriers, args.Error(1)
}

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*assignment.Assignment)
	return a, args.Error(1)
}

func (m *MockAssignmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*assignment.Assignment)
	return a, args.Error(1)
}

func (m *MockAssignmentRepository) FindLiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*assignment.Assignment, bool, error) {
	args := m.Called(ctx, orderID)
	a, _ := args.Get(0).(*assignment.Assignment)
	return a, args.Bool(1), args.Error(2)
}

func (m *MockAssignmentRepository) ListByCourier(
	ctx context.Context,
	courierID kernel.UUID,
	liveOnly bool,
) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, courierID, liveOnly)
	list, _ := args.Get(0).([]*assignment.Assignment)
	return list, args.Error(1)
}

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Record(
	ctx context.Context,
	sample tracking.Sample,
	gate tracking.Gate,
	now time.Time,
) (tracking.Outcome, error) {
	args := m.Called(ctx, sample, gate, now)
	return args.Get(0).(tracking.Outcome), args.Error(1)
}

func (m *MockLocationRepository) Recent(ctx context.Context, courierID kernel.UUID, limit int) ([]tracking.Sample, error) {
	args := m.Called(ctx, courierID, limit)
	samples, _ := args.Get(0).([]tracking.Sample)
	return samples, args.Error(1)
}

type MockRestaurantRepository struct {
	mock.Mock
}

func (m *MockRestaurantRepository) Add(ctx context.Context, r *restaurant.Restaurant) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*restaurant.Restaurant)
	return r, args.Error(1)
}

// MockUoW satisfies every unit of work interface the handlers depend on.
type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	return m.Called().Get(0).(ports.CourierRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	return m.Called().Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) LocationRepository() ports.LocationRepository {
	return m.Called().Get(0).(ports.LocationRepository)
}

func (m *MockUoW) RestaurantRepository() ports.RestaurantRepository {
	return m.Called().Get(0).(ports.RestaurantRepository)
}

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct {
	mock.Mock
}

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockCourierUoWFactory struct {
	mock.Mock
}

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	return m.Called().Get(0).(commands.CourierUoW)
}

type MockRestaurantUoWFactory struct {
	mock.Mock
}

func (m *MockRestaurantUoWFactory) Create() commands.RestaurantUoW {
	return m.Called().Get(0).(commands.RestaurantUoW)
}

type MockLocationUoWFactory struct {
	mock.Mock
}

func (m *MockLocationUoWFactory) Create() commands.LocationUoW {
	return m.Called().Get(0).(commands.LocationUoW)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, e events.Envelope) error {
	return m.Called(ctx, e).Error(0)
}

func newTestOrder(t testing.TB) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Ann", "+49 30 1234567")
	require.NoError(t, err)
	position, err := kernel.NewGeoPoint(52.53, 13.41)
	require.NoError(t, err)
	address, err := order.NewAddress("Main st. 1", &position)
	require.NoError(t, err)
	subtotal, err := kernel.NewMoneyFromFloat(24.5)
	require.NoError(t, err)
	fee, err := kernel.NewMoneyFromFloat(3.5)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), customer, address, subtotal, fee, fixedNow)
	require.NoError(t, err)
	return o
}

func newAvailableCourier(t testing.TB, name string) *courier.Courier {
	t.Helper()

	vehicle, err := courier.NewVehicle(courier.VehicleBicycle, "")
	require.NoError(t, err)
	c, err := courier.NewCourier(kernel.NewUUID(), name, "+49 30 7654321", vehicle, fixedNow)
	require.NoError(t, err)
	c.SetAvailability(true, fixedNow)
	return c
}

func newCourierAt(t testing.TB, name string, lat, lng float64) *courier.Courier {
	t.Helper()

	c := newAvailableCourier(t, name)
	position, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	last := fixedNow.Add(-time.Minute)
	restored, err := courier.RestoreCourier(courier.RestoreParams{
		ID:                 c.ID(),
		Name:               c.Name(),
		Phone:              c.Phone(),
		Vehicle:            c.Vehicle(),
		IsActive:           true,
		IsAvailable:        true,
		Status:             c.Status(),
		Position:           &position,
		LastLocationUpdate: &last,
		UpdatedAt:          fixedNow,
	})
	require.NoError(t, err)
	return restored
}

// newLiveAssignment returns an assigned order/courier pair the way a committed
// CreateAssignment leaves them.
func newLiveAssignment(t testing.TB) (*assignment.Assignment, *order.Order, *courier.Courier) {
	t.Helper()

	o := newTestOrder(t)
	c := newAvailableCourier(t, "Bob")
	a, err := assignment.NewAssignment(kernel.NewUUID(), o.ID(), c.ID(), o.RestaurantID(), o.DeliveryFee(), fixedNow)
	require.NoError(t, err)
	_, err = o.Promote(order.Confirmed, fixedNow)
	require.NoError(t, err)
	c.AddAssignment(fixedNow)
	return a, o, c
}
