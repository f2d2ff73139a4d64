package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	httpin "fleetops/internal/adapters/in/http"
	"fleetops/internal/adapters/out/notify"
	"fleetops/internal/adapters/out/postgres"
	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/application/usecases/queries"
	"fleetops/internal/jobs"
)

// CompositionRoot wires adapters to use cases. Handlers are cheap value
// types, so each Create method builds a fresh one.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	hub        *notify.Hub
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        notify.NewHub(logger),
		logger:     logger,
	}
}

// Hub returns the websocket hub. Run it in its own goroutine before serving.
func (c *CompositionRoot) Hub() *notify.Hub {
	return c.hub
}

func (c *CompositionRoot) CreateBookDeliveryCommandHandler() commands.BookDeliveryCommandHandler {
	return commands.NewBookDeliveryCommandHandler(c.createUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateApproveDeliveryCommandHandler() commands.ApproveDeliveryCommandHandler {
	return commands.NewApproveDeliveryCommandHandler(c.createUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(c.createUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	return commands.NewAcceptDeliveryCommandHandler(c.createUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateRejectDeliveryCommandHandler() commands.RejectDeliveryCommandHandler {
	return commands.NewRejectDeliveryCommandHandler(c.createUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	return commands.NewStartDeliveryCommandHandler(c.createUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.createUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.createUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateRateDeliveryCommandHandler() commands.RateDeliveryCommandHandler {
	return commands.NewRateDeliveryCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreatePayDeliveryCommandHandler() commands.PayDeliveryCommandHandler {
	return commands.NewPayDeliveryCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateUpdateDeliveryLocationCommandHandler() commands.UpdateDeliveryLocationCommandHandler {
	return commands.NewUpdateDeliveryLocationCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateDeleteDeliveryCommandHandler() commands.DeleteDeliveryCommandHandler {
	return commands.NewDeleteDeliveryCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateAddFundsCommandHandler() commands.AddFundsCommandHandler {
	return commands.NewAddFundsCommandHandler(c.createLedgerUoWFactory())
}

func (c *CompositionRoot) CreateWithdrawEarningsCommandHandler() commands.WithdrawEarningsCommandHandler {
	return commands.NewWithdrawEarningsCommandHandler(c.createLedgerUoWFactory())
}

func (c *CompositionRoot) CreatePayoutDriverCommandHandler() commands.PayoutDriverCommandHandler {
	return commands.NewPayoutDriverCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateReconcileRefundsCommandHandler() commands.ReconcileRefundsCommandHandler {
	return commands.NewReconcileRefundsCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryStatsQueryHandler() queries.GetDeliveryStatsQueryHandler {
	return queries.NewGetDeliveryStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWalletStatementQueryHandler() queries.GetWalletStatementQueryHandler {
	return queries.NewGetWalletStatementQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the inbound HTTP adapter with every handler wired.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateBookDeliveryCommandHandler(),
		c.CreateApproveDeliveryCommandHandler(),
		c.CreateAssignDeliveryCommandHandler(),
		c.CreateAcceptDeliveryCommandHandler(),
		c.CreateRejectDeliveryCommandHandler(),
		c.CreateStartDeliveryCommandHandler(),
		c.CreateCompleteDeliveryCommandHandler(),
		c.CreateCancelDeliveryCommandHandler(),
		c.CreateRateDeliveryCommandHandler(),
		c.CreatePayDeliveryCommandHandler(),
		c.CreateUpdateDeliveryLocationCommandHandler(),
		c.CreateDeleteDeliveryCommandHandler(),
		c.CreateAddFundsCommandHandler(),
		c.CreateWithdrawEarningsCommandHandler(),
		c.CreatePayoutDriverCommandHandler(),
		c.CreateReconcileRefundsCommandHandler(),
		c.CreateGetActiveDeliveriesQueryHandler(),
		c.CreateGetDeliveryStatsQueryHandler(),
		c.CreateGetWalletStatementQueryHandler(),
		c.hub,
	)
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReconcileRefundsCommandHandler(),
		c.config.RefundSweepSchedule,
		c.logger,
	)
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createLedgerUoWFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
