package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/restaurant"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T, restaurantID kernel.UUID) commands.CreateOrderCommand {
	t.Helper()

	customer, err := order.NewCustomer("Ann", "+49 30 1234567")
	require.NoError(t, err)
	address, err := order.NewAddress("Main st. 1", nil)
	require.NoError(t, err)
	subtotal, err := kernel.NewMoneyFromFloat(24.5)
	require.NoError(t, err)
	fee, err := kernel.NewMoneyFromFloat(3.5)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), restaurantID, customer, address, subtotal, fee)
	require.NoError(t, err)
	return cmd
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.UUID{},
		order.Customer{}, order.Address{}, kernel.Money{}, kernel.ZeroMoney())

	require.Error(t, err)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, order.ErrCustomerNameIsRequired)
	require.ErrorIs(t, err, order.ErrStreetIsRequired)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	position, err := kernel.NewGeoPoint(52.52, 13.40)
	require.NoError(t, err)
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), "Pasta Place", position)
	require.NoError(t, err)
	cmd := newCreateOrderCommand(t, r.ID())

	restaurants := new(MockRestaurantRepository)
	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restaurants).Once(),
		restaurants.On("Get", ctx, r.ID()).Return(r, nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, fixedClock())

	// Act
	o, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, cmd.OrderID(), o.ID())
	assert.Equal(t, order.Pending, o.Status())
	assert.Equal(t, "28.00", o.Total().String())
	assert.Equal(t, fixedNow, o.CreatedAt())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	restaurants.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownRestaurant(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	cmd := newCreateOrderCommand(t, restaurantID)

	restaurants := new(MockRestaurantRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restaurants).Once(),
		restaurants.On("Get", ctx, restaurantID).
			Return(nil, errs.NewObjectNotFoundError("restaurant", restaurantID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, fixedClock())

	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "OrderRepository")
}

func TestAdvanceOrderStatusCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		target  order.Status
		writes  bool
		wantErr error
	}{
		{name: "pending to preparing skips confirmed", from: order.Pending, target: order.Preparing, writes: true},
		{name: "repeat is a noop", from: order.Preparing, target: order.Preparing},
		{name: "going back fails", from: order.ReadyForPickup, target: order.Confirmed, wantErr: errs.ErrInvalidTransition},
		{name: "delivery statuses are not kitchen steps", from: order.Preparing, target: order.Delivered,
			wantErr: errs.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			o := newTestOrder(t)
			if tt.from != order.Pending {
				_, err := o.Advance(tt.from, fixedNow)
				require.NoError(t, err)
			}
			cmd, err := commands.NewAdvanceOrderStatusCommand(o.ID(), tt.target)
			require.NoError(t, err)

			orders := new(MockOrderRepository)
			uow := new(MockUoW)
			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(orders).Once()
			orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
			if tt.writes {
				orders.On("Update", ctx, o).Return(nil).Once()
				uow.On("Commit", ctx).Return(nil).Once()
			}

			handler := commands.NewAdvanceOrderStatusCommandHandler(factory, fixedClock(), noRetry(0))
			result, err := handler.Handle(ctx, cmd)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, o.Status())
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.target, result.Status())
			}
			uow.AssertExpectations(t)
			orders.AssertExpectations(t)
		})
	}
}

func TestCreateRestaurantCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	position, err := kernel.NewGeoPoint(52.52, 13.40)
	require.NoError(t, err)
	cmd, err := commands.NewCreateRestaurantCommand(kernel.NewUUID(), "Pasta Place", position)
	require.NoError(t, err)

	restaurants := new(MockRestaurantRepository)
	uow := new(MockUoW)
	factory := new(MockRestaurantUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restaurants).Once(),
		restaurants.On("Add", ctx, mock.AnythingOfType("*restaurant.Restaurant")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateRestaurantCommandHandler(factory)
	r, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, cmd.RestaurantID(), r.ID())
	assert.Equal(t, position, r.Position())
	uow.AssertExpectations(t)
	restaurants.AssertExpectations(t)
}

func TestNewCreateRestaurantCommand_EmptyName(t *testing.T) {
	position, err := kernel.NewGeoPoint(52.52, 13.40)
	require.NoError(t, err)

	_, err = commands.NewCreateRestaurantCommand(kernel.NewUUID(), "", position)

	require.ErrorIs(t, err, commands.ErrNameIsRequired)
}
