package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fleetops/internal/core/application/usecases/queries"
	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

// defaultStatementLimit caps the statement size when the client does not ask
// for a specific number of postings.
const defaultStatementLimit = 20

func parsePositiveInt(raw string) (int, error) {
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return 0, errs.NewValueIsInvalidError("limit")
	}
	return parsed, nil
}

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// addressPayload carries a street address with its geo point.
type addressPayload struct {
	Street string  `json:"street" validate:"required"`
	Lat    float64 `json:"lat" validate:"latitude"`
	Lng    float64 `json:"lng" validate:"longitude"`
}

func (p addressPayload) toAddress() (kernel.Address, error) {
	point, err := kernel.NewGeoPoint(p.Lat, p.Lng)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(p.Street, point)
}

type packagePayload struct {
	WeightKg    float64 `json:"weightKg" validate:"gt=0"`
	Description string  `json:"description"`
	Cluster     string  `json:"cluster" validate:"omitempty,oneof=Small Medium Large ExtraLarge"`
}

type bookDeliveryRequest struct {
	CustomerID string         `json:"customerId" validate:"required,uuid"`
	Pickup     addressPayload `json:"pickup" validate:"required"`
	Drop       addressPayload `json:"drop" validate:"required"`
	Package    packagePayload `json:"package" validate:"required"`
	DistanceKm float64        `json:"distanceKm" validate:"gt=0"`
	Contact    string         `json:"contact" validate:"required"`
	Notes      string         `json:"notes"`
}

type approveDeliveryRequest struct {
	AdminID string `json:"adminId" validate:"required,uuid"`
}

type assignDeliveryRequest struct {
	AdminID    string  `json:"adminId" validate:"required,uuid"`
	DriverID   string  `json:"driverId" validate:"required,uuid"`
	VehicleID  string  `json:"vehicleId" validate:"required,uuid"`
	DistanceKm float64 `json:"distanceKm" validate:"gt=0"`
	Note       string  `json:"note"`
}

type driverActionRequest struct {
	DriverID string `json:"driverId" validate:"required,uuid"`
}

type rejectDeliveryRequest struct {
	DriverID string `json:"driverId" validate:"required,uuid"`
	Reason   string `json:"reason" validate:"required"`
}

type cancelDeliveryRequest struct {
	ActorID string `json:"actorId" validate:"required,uuid"`
	Reason  string `json:"reason" validate:"required"`
}

type rateDeliveryRequest struct {
	CustomerID string `json:"customerId" validate:"required,uuid"`
	Stars      int    `json:"stars" validate:"gte=1,lte=5"`
	Feedback   string `json:"feedback"`
}

type payDeliveryRequest struct {
	CustomerID string `json:"customerId" validate:"required,uuid"`
	Method     string `json:"method" validate:"required,oneof=Cash Card Wallet UPI"`
}

type updateLocationRequest struct {
	DriverID string  `json:"driverId" validate:"required,uuid"`
	Lat      float64 `json:"lat" validate:"latitude"`
	Lng      float64 `json:"lng" validate:"longitude"`
}

type addFundsRequest struct {
	OwnerID string  `json:"ownerId" validate:"required,uuid"`
	Kind    string  `json:"kind" validate:"required,oneof=Customer Driver Platform"`
	Amount  float64 `json:"amount" validate:"gt=0"`
}

type withdrawEarningsRequest struct {
	OwnerID string  `json:"ownerId" validate:"required,uuid"`
	Amount  float64 `json:"amount" validate:"gt=0"`
}

type payoutDriverRequest struct {
	AdminID  string  `json:"adminId" validate:"required,uuid"`
	DriverID string  `json:"driverId" validate:"required,uuid"`
	Amount   float64 `json:"amount" validate:"gt=0"`
}

type bookDeliveryResponse struct {
	ID string `json:"id"`
}

type reconcileRefundsResponse struct {
	Settled int `json:"settled"`
}

type positionPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type activeDeliveryResponse struct {
	ID              string           `json:"id"`
	Reference       string           `json:"reference"`
	Status          string           `json:"status"`
	CustomerID      string           `json:"customerId"`
	DriverID        *string          `json:"driverId,omitempty"`
	VehicleID       *string          `json:"vehicleId,omitempty"`
	TotalPrice      float64          `json:"totalPrice"`
	CurrentPosition *positionPayload `json:"currentPosition,omitempty"`
	StartTime       *time.Time       `json:"startTime,omitempty"`
}

func toActiveDeliveryResponse(item queries.GetActiveDeliveriesQueryResponse) activeDeliveryResponse {
	resp := activeDeliveryResponse{
		ID:         item.ID.String(),
		Reference:  item.Reference,
		Status:     item.Status.String(),
		CustomerID: item.CustomerID.String(),
		TotalPrice: item.TotalPrice,
		StartTime:  item.StartTime,
	}
	if item.DriverID != nil {
		id := item.DriverID.String()
		resp.DriverID = &id
	}
	if item.VehicleID != nil {
		id := item.VehicleID.String()
		resp.VehicleID = &id
	}
	if item.CurrentPosition != nil {
		resp.CurrentPosition = &positionPayload{
			Lat: item.CurrentPosition.Lat(),
			Lng: item.CurrentPosition.Lng(),
		}
	}
	return resp
}

type deliveryStatsResponse struct {
	TotalDeliveries    int     `json:"totalDeliveries"`
	Pending            int     `json:"pending"`
	Approved           int     `json:"approved"`
	Active             int     `json:"active"`
	Delivered          int     `json:"delivered"`
	Cancelled          int     `json:"cancelled"`
	Rejected           int     `json:"rejected"`
	TotalRevenue       float64 `json:"totalRevenue"`
	DriverEarnings     float64 `json:"driverEarnings"`
	PlatformCommission float64 `json:"platformCommission"`
	AverageRating      float64 `json:"averageRating"`
}

func toDeliveryStatsResponse(stats queries.GetDeliveryStatsQueryResponse) deliveryStatsResponse {
	return deliveryStatsResponse(stats)
}

type statementLinePayload struct {
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	Description  string    `json:"description"`
	DeliveryRef  *string   `json:"deliveryRef,omitempty"`
	BalanceAfter float64   `json:"balanceAfter"`
	At           time.Time `json:"at"`
}

type walletStatementResponse struct {
	WalletID      string                 `json:"walletId"`
	OwnerID       string                 `json:"ownerId"`
	Kind          string                 `json:"kind"`
	Balance       float64                `json:"balance"`
	TotalEarnings float64                `json:"totalEarnings"`
	TotalRevenue  float64                `json:"totalRevenue"`
	Transactions  []statementLinePayload `json:"transactions"`
}

func toWalletStatementResponse(statement queries.GetWalletStatementQueryResponse) walletStatementResponse {
	lines := make([]statementLinePayload, len(statement.Transactions))
	for i, line := range statement.Transactions {
		lines[i] = statementLinePayload{
			Type:         line.Type.String(),
			Amount:       line.Amount,
			Description:  line.Description,
			BalanceAfter: line.BalanceAfter,
			At:           line.At,
		}
		if line.DeliveryRef != nil {
			ref := line.DeliveryRef.String()
			lines[i].DeliveryRef = &ref
		}
	}

	return walletStatementResponse{
		WalletID:      statement.WalletID.String(),
		OwnerID:       statement.OwnerID.String(),
		Kind:          statement.Kind.String(),
		Balance:       statement.Balance,
		TotalEarnings: statement.TotalEarnings,
		TotalRevenue:  statement.TotalRevenue,
		Transactions:  lines,
	}
}

// statusOf maps domain and application errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrResourceConflict),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, delivery.ErrAlreadyRated),
		errors.Is(err, delivery.ErrAlreadyPaid),
		errors.Is(err, delivery.ErrNotApproved):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
