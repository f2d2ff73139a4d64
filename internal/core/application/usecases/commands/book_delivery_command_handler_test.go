package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

func bookCommand(t *testing.T, customerID kernel.UUID) commands.BookDeliveryCommand {
	t.Helper()
	cmd, err := commands.NewBookDeliveryCommand(
		kernel.NewUUID(), customerID,
		fixtureAddress(t, "12 Dock Rd"), fixtureAddress(t, "7 Harbour Ln"),
		delivery.PackageDetails{WeightKg: 10, Cluster: delivery.ClusterMedium},
		20, "+44 20 7946 0000", "")
	require.NoError(t, err)
	return cmd
}

func TestBookDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customer := fixtureCustomer(t)
	cmd := bookCommand(t, customer.ID())

	users := new(MockUserRepository)
	deliveries := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", mock.Anything, customer.ID()).Return(customer, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveries).Once(),
		deliveries.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	sink := new(recordingSink)
	h := commands.NewBookDeliveryCommandHandler(factory, sink)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, delivery.Pending, events[0].Status)
	assert.Equal(t, customer.ID(), events[0].Actor)

	deliveries.AssertExpectations(t)
	users.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestBookDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.BookDeliveryCommand{} // not constructed properly
	factory := new(MockUoWFactory)
	h := commands.NewBookDeliveryCommandHandler(factory, nil)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrBookDeliveryCommandIsNotConstructed)
}

func TestBookDeliveryCommandHandler_Handle_InactiveCustomer(t *testing.T) {
	ctx := t.Context()
	customer := fixtureCustomer(t)
	customer.Deactivate()
	cmd := bookCommand(t, customer.ID())

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

	sink := new(recordingSink)
	h := commands.NewBookDeliveryCommandHandler(factory, sink)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	assert.Empty(t, sink.Events())
}

func TestBookDeliveryCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	customer := fixtureCustomer(t)
	cmd := bookCommand(t, customer.ID())

	users := new(MockUserRepository)
	deliveries := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", mock.Anything, customer.ID()).Return(customer, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveries).Once(),
		deliveries.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).
			Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewBookDeliveryCommandHandler(factory, nil)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	deliveries.AssertExpectations(t)
}
