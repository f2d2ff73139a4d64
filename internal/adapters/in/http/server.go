// Package http exposes the delivery lifecycle, wallet and reporting
// operations over a REST API and forwards status streams to websocket
// subscribers.
package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"fleetops/internal/adapters/out/notify"
	"fleetops/internal/core/application/usecases/commands"
	"fleetops/internal/core/application/usecases/queries"
	"fleetops/internal/core/domain/model/account"
	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	bookDeliveryHandler     commands.BookDeliveryCommandHandler
	approveDeliveryHandler  commands.ApproveDeliveryCommandHandler
	assignDeliveryHandler   commands.AssignDeliveryCommandHandler
	acceptDeliveryHandler   commands.AcceptDeliveryCommandHandler
	rejectDeliveryHandler   commands.RejectDeliveryCommandHandler
	startDeliveryHandler    commands.StartDeliveryCommandHandler
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler
	cancelDeliveryHandler   commands.CancelDeliveryCommandHandler
	rateDeliveryHandler     commands.RateDeliveryCommandHandler
	payDeliveryHandler      commands.PayDeliveryCommandHandler
	updateLocationHandler   commands.UpdateDeliveryLocationCommandHandler
	deleteDeliveryHandler   commands.DeleteDeliveryCommandHandler
	addFundsHandler         commands.AddFundsCommandHandler
	withdrawEarningsHandler commands.WithdrawEarningsCommandHandler
	payoutDriverHandler     commands.PayoutDriverCommandHandler
	reconcileRefundsHandler commands.ReconcileRefundsCommandHandler

	getActiveDeliveriesHandler queries.GetActiveDeliveriesQueryHandler
	getDeliveryStatsHandler    queries.GetDeliveryStatsQueryHandler
	getWalletStatementHandler  queries.GetWalletStatementQueryHandler

	hub      *notify.Hub
	validate *validator.Validate
}

// NewServer creates an HTTP server wired to the application handlers and the
// websocket hub.
func NewServer(
	bookDeliveryHandler commands.BookDeliveryCommandHandler,
	approveDeliveryHandler commands.ApproveDeliveryCommandHandler,
	assignDeliveryHandler commands.AssignDeliveryCommandHandler,
	acceptDeliveryHandler commands.AcceptDeliveryCommandHandler,
	rejectDeliveryHandler commands.RejectDeliveryCommandHandler,
	startDeliveryHandler commands.StartDeliveryCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	cancelDeliveryHandler commands.CancelDeliveryCommandHandler,
	rateDeliveryHandler commands.RateDeliveryCommandHandler,
	payDeliveryHandler commands.PayDeliveryCommandHandler,
	updateLocationHandler commands.UpdateDeliveryLocationCommandHandler,
	deleteDeliveryHandler commands.DeleteDeliveryCommandHandler,
	addFundsHandler commands.AddFundsCommandHandler,
	withdrawEarningsHandler commands.WithdrawEarningsCommandHandler,
	payoutDriverHandler commands.PayoutDriverCommandHandler,
	reconcileRefundsHandler commands.ReconcileRefundsCommandHandler,
	getActiveDeliveriesHandler queries.GetActiveDeliveriesQueryHandler,
	getDeliveryStatsHandler queries.GetDeliveryStatsQueryHandler,
	getWalletStatementHandler queries.GetWalletStatementQueryHandler,
	hub *notify.Hub,
) *Server {
	return &Server{
		bookDeliveryHandler:        bookDeliveryHandler,
		approveDeliveryHandler:     approveDeliveryHandler,
		assignDeliveryHandler:      assignDeliveryHandler,
		acceptDeliveryHandler:      acceptDeliveryHandler,
		rejectDeliveryHandler:      rejectDeliveryHandler,
		startDeliveryHandler:       startDeliveryHandler,
		completeDeliveryHandler:    completeDeliveryHandler,
		cancelDeliveryHandler:      cancelDeliveryHandler,
		rateDeliveryHandler:        rateDeliveryHandler,
		payDeliveryHandler:         payDeliveryHandler,
		updateLocationHandler:      updateLocationHandler,
		deleteDeliveryHandler:      deleteDeliveryHandler,
		addFundsHandler:            addFundsHandler,
		withdrawEarningsHandler:    withdrawEarningsHandler,
		payoutDriverHandler:        payoutDriverHandler,
		reconcileRefundsHandler:    reconcileRefundsHandler,
		getActiveDeliveriesHandler: getActiveDeliveriesHandler,
		getDeliveryStatsHandler:    getDeliveryStatsHandler,
		getWalletStatementHandler:  getWalletStatementHandler,
		hub:                        hub,
		validate:                   validator.New(),
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/deliveries", s.BookDelivery)
	api.GET("/deliveries/active", s.GetActiveDeliveries)
	api.POST("/deliveries/:id/approve", s.ApproveDelivery)
	api.POST("/deliveries/:id/assign", s.AssignDelivery)
	api.POST("/deliveries/:id/accept", s.AcceptDelivery)
	api.POST("/deliveries/:id/reject", s.RejectDelivery)
	api.POST("/deliveries/:id/start", s.StartDelivery)
	api.POST("/deliveries/:id/complete", s.CompleteDelivery)
	api.POST("/deliveries/:id/cancel", s.CancelDelivery)
	api.POST("/deliveries/:id/rate", s.RateDelivery)
	api.POST("/deliveries/:id/pay", s.PayDelivery)
	api.POST("/deliveries/:id/location", s.UpdateDeliveryLocation)
	api.DELETE("/deliveries/:id", s.DeleteDelivery)

	api.POST("/wallets/deposit", s.AddFunds)
	api.POST("/wallets/withdraw", s.WithdrawEarnings)
	api.POST("/wallets/payout", s.PayoutDriver)
	api.GET("/wallets/:ownerId/statement", s.GetWalletStatement)

	api.POST("/reconciliation/refunds", s.ReconcileRefunds)
	api.GET("/stats", s.GetDeliveryStats)

	e.GET("/ws/deliveries", s.WatchAllDeliveries)
	e.GET("/ws/deliveries/:reference", s.WatchDelivery)
}

// BookDelivery handles POST /api/v1/deliveries.
func (s *Server) BookDelivery(ctx echo.Context) error {
	var req bookDeliveryRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, err)
	}
	pickup, err := req.Pickup.toAddress()
	if err != nil {
		return badRequest(ctx, err)
	}
	drop, err := req.Drop.toAddress()
	if err != nil {
		return badRequest(ctx, err)
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewBookDeliveryCommand(
		deliveryID, customerID,
		pickup, drop,
		delivery.PackageDetails{
			WeightKg:    req.Package.WeightKg,
			Description: req.Package.Description,
			Cluster:     delivery.ParseCluster(req.Package.Cluster),
		},
		req.DistanceKm,
		req.Contact, req.Notes,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.bookDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, bookDeliveryResponse{ID: deliveryID.String()})
}

// ApproveDelivery handles POST /api/v1/deliveries/:id/approve.
func (s *Server) ApproveDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err)
	}

	var req approveDeliveryRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	adminID, err := kernel.UUIDFromString(req.AdminID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewApproveDeliveryCommand(deliveryID, adminID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.approveDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AssignDelivery handles POST /api/v1/deliveries/:id/assign.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err)
	}

	var req assignDeliveryRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	adminID, err := kernel.UUIDFromString(req.AdminID)
	if err != nil {
		return badRequest(ctx, err)
	}
	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return badRequest(ctx, err)
	}
	vehicleID, err := kernel.UUIDFromString(req.VehicleID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAssignDeliveryCommand(
		deliveryID, adminID, driverID, vehicleID, req.DistanceKm, req.Note)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.assignDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AcceptDelivery handles POST /api/v1/deliveries/:id/accept.
func (s *Server) AcceptDelivery(ctx echo.Context) error {
	deliveryID, driverID, err := s.deliveryAndDriver(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAcceptDeliveryCommand(deliveryID, driverID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.acceptDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RejectDelivery handles POST /api/v1/deliveries/:id/reject.
func (s *Server) RejectDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err)
	}

	var req rejectDeliveryRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRejectDeliveryCommand(deliveryID, driverID, req.Reason)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.rejectDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StartDelivery handles POST /api/v1/deliveries/:id/start.
func (s *Server) StartDelivery(ctx echo.Context) error {
	deliveryID, driverID, err := s.deliveryAndDriver(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewStartDeliveryCommand(deliveryID, driverID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.startDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/deliveries/:id/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	deliveryID, driverID, err := s.deliveryAndDriver(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(deliveryID, driverID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err)
	}

	var req cancelDeliveryRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, actorID, req.Reason)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.cancelDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RateDelivery handles POST /api/v1/deliveries/:id/rate.
func (s *Server) RateDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err)
	}

	var req rateDeliveryRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRateDeliveryCommand(deliveryID, customerID, req.Stars, req.Feedback)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.rateDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// PayDelivery handles POST /api/v1/deliveries/:id/pay.
func (s *Server) PayDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err)
	}

	var req payDeliveryRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, err)
	}
	method, err := delivery.ParsePaymentMethod(req.Method)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewPayDeliveryCommand(deliveryID, customerID, method)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.payDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// UpdateDeliveryLocation handles POST /api/v1/deliveries/:id/location.
func (s *Server) UpdateDeliveryLocation(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err)
	}

	var req updateLocationRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewUpdateDeliveryLocationCommand(deliveryID, driverID, req.Lat, req.Lng)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteDelivery handles DELETE /api/v1/deliveries/:id.
func (s *Server) DeleteDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err)
	}
	adminID, err := kernel.UUIDFromString(ctx.QueryParam("actorId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewDeleteDeliveryCommand(deliveryID, adminID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.deleteDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AddFunds handles POST /api/v1/wallets/deposit.
func (s *Server) AddFunds(ctx echo.Context) error {
	var req addFundsRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return badRequest(ctx, err)
	}
	kind, err := account.ParseKind(req.Kind)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAddFundsCommand(ownerID, kind, req.Amount)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.addFundsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// WithdrawEarnings handles POST /api/v1/wallets/withdraw.
func (s *Server) WithdrawEarnings(ctx echo.Context) error {
	var req withdrawEarningsRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewWithdrawEarningsCommand(ownerID, req.Amount)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.withdrawEarningsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// PayoutDriver handles POST /api/v1/wallets/payout.
func (s *Server) PayoutDriver(ctx echo.Context) error {
	var req payoutDriverRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	adminID, err := kernel.UUIDFromString(req.AdminID)
	if err != nil {
		return badRequest(ctx, err)
	}
	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewPayoutDriverCommand(adminID, driverID, req.Amount)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.payoutDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ReconcileRefunds handles POST /api/v1/reconciliation/refunds. The same
// sweep the cron job runs, triggered on demand.
func (s *Server) ReconcileRefunds(ctx echo.Context) error {
	settled, err := s.reconcileRefundsHandler.Handle(
		ctx.Request().Context(), commands.NewReconcileRefundsCommand())
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, reconcileRefundsResponse{Settled: settled})
}

// GetActiveDeliveries handles GET /api/v1/deliveries/active.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	items, err := s.getActiveDeliveriesHandler.Handle(
		ctx.Request().Context(), queries.NewGetActiveDeliveriesQuery())
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]activeDeliveryResponse, len(items))
	for i, item := range items {
		response[i] = toActiveDeliveryResponse(item)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetDeliveryStats handles GET /api/v1/stats.
func (s *Server) GetDeliveryStats(ctx echo.Context) error {
	stats, err := s.getDeliveryStatsHandler.Handle(
		ctx.Request().Context(), queries.NewGetDeliveryStatsQuery())
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toDeliveryStatsResponse(stats))
}

// GetWalletStatement handles GET /api/v1/wallets/:ownerId/statement.
func (s *Server) GetWalletStatement(ctx echo.Context) error {
	ownerID, err := pathUUID(ctx, "ownerId")
	if err != nil {
		return badRequest(ctx, err)
	}

	limit := defaultStatementLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, parseErr := parsePositiveInt(raw)
		if parseErr != nil {
			return badRequest(ctx, parseErr)
		}
		limit = parsed
	}

	query, err := queries.NewGetWalletStatementQuery(ownerID, limit)
	if err != nil {
		return badRequest(ctx, err)
	}

	statement, err := s.getWalletStatementHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toWalletStatementResponse(statement))
}

// WatchDelivery handles GET /ws/deliveries/:reference.
func (s *Server) WatchDelivery(ctx echo.Context) error {
	s.hub.ServeDelivery(ctx.Response(), ctx.Request(), ctx.Param("reference"))
	return nil
}

// WatchAllDeliveries handles GET /ws/deliveries.
func (s *Server) WatchAllDeliveries(ctx echo.Context) error {
	s.hub.ServeFirehose(ctx.Response(), ctx.Request())
	return nil
}

func (s *Server) bind(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return err
	}
	return s.validate.Struct(req)
}

func (s *Server) deliveryAndDriver(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	var req driverActionRequest
	if err := s.bind(ctx, &req); err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return deliveryID, driverID, nil
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

func fail(ctx echo.Context, err error) error {
	status := statusOf(err)
	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
