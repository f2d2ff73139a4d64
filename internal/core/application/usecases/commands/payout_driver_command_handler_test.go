package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/domain/model/account"
	"fleetops/internal/pkg/errs"
)

func TestPayoutDriverCommandHandler_Handle_TransfersFromPlatform(t *testing.T) {
	ctx := t.Context()
	admin := fixtureAdmin(t)
	driver := fixtureDriver(t)
	platformWallet := fixtureWallet(t, admin.ID(), account.KindPlatform, 500)
	driverWallet := fixtureWallet(t, driver.ID(), account.KindDriver, 0)

	cmd, err := commands.NewPayoutDriverCommand(admin.ID(), driver.ID(), 200)
	require.NoError(t, err)

	users := new(MockUserRepository)
	wallets := new(MockAccountRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", mock.Anything, admin.ID()).Return(admin, nil).Once(),
		uow.On("AccountRepository").Return(wallets).Once(),
		wallets.On("GetPlatform", mock.Anything).Return(platformWallet, nil).Once(),
		uow.On("AccountRepository").Return(wallets).Once(),
		wallets.On("GetByOwner", mock.Anything, driver.ID()).Return(driverWallet, nil).Once(),
		uow.On("AccountRepository").Return(wallets).Once(),
		wallets.On("Update", mock.Anything, platformWallet).Return(nil).Once(),
		uow.On("AccountRepository").Return(wallets).Once(),
		wallets.On("Update", mock.Anything, driverWallet).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPayoutDriverCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.InDelta(t, 300.0, platformWallet.Balance(), 1e-9)
	assert.InDelta(t, 200.0, driverWallet.Balance(), 1e-9)

	// Both sides carry a posting for the transfer.
	platformTxs := platformWallet.Transactions()
	require.NotEmpty(t, platformTxs)
	assert.Equal(t, account.TransactionDriverPayout, platformTxs[len(platformTxs)-1].Type())

	users.AssertExpectations(t)
	wallets.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPayoutDriverCommandHandler_Handle_InsufficientPlatformBalance(t *testing.T) {
	ctx := t.Context()
	admin := fixtureAdmin(t)
	driver := fixtureDriver(t)
	platformWallet := fixtureWallet(t, admin.ID(), account.KindPlatform, 50)

	cmd, err := commands.NewPayoutDriverCommand(admin.ID(), driver.ID(), 200)
	require.NoError(t, err)

	users := new(MockUserRepository)
	wallets := new(MockAccountRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", mock.Anything, admin.ID()).Return(admin, nil).Once(),
		uow.On("AccountRepository").Return(wallets).Once(),
		wallets.On("GetPlatform", mock.Anything).Return(platformWallet, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPayoutDriverCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInsufficientBalance)

	// Nothing moved on either side.
	assert.InDelta(t, 50.0, platformWallet.Balance(), 1e-9)

	wallets.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPayoutDriverCommandHandler_Handle_NonAdmin(t *testing.T) {
	ctx := t.Context()
	customer := fixtureCustomer(t)
	driver := fixtureDriver(t)

	cmd, err := commands.NewPayoutDriverCommand(customer.ID(), driver.ID(), 100)
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

	h := commands.NewPayoutDriverCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
}
