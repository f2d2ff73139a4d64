package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/vehicle"
	"fleetops/internal/pkg/errs"
)

func TestDeleteDeliveryCommandHandler_Handle_ReleasesHeldVehicle(t *testing.T) {
	ctx := t.Context()
	admin := fixtureAdmin(t)
	customer := fixtureCustomer(t)
	driverID := kernel.NewUUID()
	van := fixtureVehicle(t)
	require.NoError(t, van.MarkAssigned())

	assigned := fixtureBooking(t, customer.ID())
	require.NoError(t, assigned.Approve(admin.ID()))
	require.NoError(t, assigned.Assign(admin.ID(), driverID, van.ID(), 20, ""))

	cmd, err := commands.NewDeleteDeliveryCommand(assigned.ID(), admin.ID())
	require.NoError(t, err)

	users := new(MockUserRepository)
	deliveries := new(MockDeliveryRepository)
	vehicles := new(MockVehicleRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", mock.Anything, admin.ID()).Return(admin, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveries).Once(),
		deliveries.On("Get", mock.Anything, assigned.ID()).Return(assigned, nil).Once(),
		uow.On("VehicleRepository").Return(vehicles).Once(),
		vehicles.On("Get", mock.Anything, van.ID()).Return(van, nil).Once(),
		uow.On("VehicleRepository").Return(vehicles).Once(),
		vehicles.On("Update", mock.Anything, van).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveries).Once(),
		deliveries.On("Delete", mock.Anything, assigned.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteDeliveryCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, vehicle.StatusAvailable, van.Status())

	users.AssertExpectations(t)
	deliveries.AssertExpectations(t)
	vehicles.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteDeliveryCommandHandler_Handle_TerminalDeliveryNeedsNoRelease(t *testing.T) {
	ctx := t.Context()
	admin := fixtureAdmin(t)
	customer := fixtureCustomer(t)
	driverID := kernel.NewUUID()

	done := fixtureOnRoute(t, customer.ID(), driverID, kernel.NewUUID())
	require.NoError(t, done.Complete(driverID))

	cmd, err := commands.NewDeleteDeliveryCommand(done.ID(), admin.ID())
	require.NoError(t, err)

	users := new(MockUserRepository)
	deliveries := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", mock.Anything, admin.ID()).Return(admin, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveries).Once(),
		deliveries.On("Get", mock.Anything, done.ID()).Return(done, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveries).Once(),
		deliveries.On("Delete", mock.Anything, done.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteDeliveryCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	deliveries.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteDeliveryCommandHandler_Handle_NonAdmin(t *testing.T) {
	ctx := t.Context()
	customer := fixtureCustomer(t)
	booked := fixtureBooking(t, customer.ID())

	cmd, err := commands.NewDeleteDeliveryCommand(booked.ID(), customer.ID())
	require.NoError(t, err)

	users := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", mock.Anything, customer.ID()).Return(customer, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteDeliveryCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
}
