package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

// Domain errors for delivery operations.
var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery bypassed NewDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
	// ErrNotApproved is returned when assigning a delivery an admin has not approved.
	ErrNotApproved = errors.New("delivery must be approved before assignment")
	// ErrNoDriverAssigned is returned when a driver-only transition runs on an
	// unassigned delivery.
	ErrNoDriverAssigned = errors.New("delivery has no assigned driver")
	// ErrAlreadyRated is returned when rating a delivery a second time.
	ErrAlreadyRated = errors.New("delivery already rated")
	// ErrAlreadyPaid is returned when paying for an already-paid delivery.
	ErrAlreadyPaid = errors.New("delivery already paid")
	// ErrWeightIsInvalid is returned for non-positive package weights.
	ErrWeightIsInvalid = errors.New("package weight must be greater than 0")
	// ErrDistanceIsInvalid is returned for non-positive estimated distances.
	ErrDistanceIsInvalid = errors.New("estimated distance must be greater than 0")
	// ErrContactNumberIsRequired is returned when booking without a contact number.
	ErrContactNumberIsRequired = errors.New("contact number is required")
)

// PackageDetails describes what is being shipped.
type PackageDetails struct {
	WeightKg    float64
	Description string
	Cluster     Cluster
}

// TrackPoint is the last reported live position of a delivery in transit.
type TrackPoint struct {
	Point     kernel.GeoPoint
	UpdatedAt time.Time
}

// Delivery is the aggregate root for one booked shipment, tracked from
// booking through assignment, transit, completion or cancellation, and
// rating. All lifecycle mutations go through the transition methods, each of
// which validates its precondition, appends a status history entry, and
// leaves the aggregate untouched on failure.
type Delivery struct {
	id         kernel.UUID
	reference  string
	customerID kernel.UUID

	pickup  kernel.Address
	drop    kernel.Address
	pkg     PackageDetails
	contact string
	notes   string

	estimatedDistanceKm  float64
	estimatedDurationMin int

	assignedDriverID  *kernel.UUID
	assignedVehicleID *kernel.UUID

	status               Status
	adminApproved        bool
	driverAccepted       bool
	driverRejectedReason string

	pricing  Pricing
	payment  PaymentStatus
	method   PaymentMethod
	paidAt   *time.Time
	earnings Earnings

	rating       *Rating
	cancellation *Cancellation

	current   *TrackPoint
	startTime *time.Time
	endTime   *time.Time

	history []StatusUpdate

	version int
	guard   guard.ConstructorGuard
}

// NewDelivery books a new delivery for a customer. It validates all booking
// input, computes the initial pricing from weight, distance and cluster, and
// starts the lifecycle in Pending with one history entry.
func NewDelivery(
	id kernel.UUID,
	customerID kernel.UUID,
	pickup kernel.Address,
	drop kernel.Address,
	pkg PackageDetails,
	estimatedDistanceKm float64,
	contact string,
	notes string,
) (*Delivery, error) {
	d := &Delivery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setCustomerID(customerID),
		d.setPickup(pickup),
		d.setDrop(drop),
		d.setPackage(pkg),
		d.setDistance(estimatedDistanceKm),
		d.setContact(contact),
	); err != nil {
		return nil, err
	}

	now := time.Now()
	d.reference = newReference(now)
	d.notes = notes
	d.status = Pending
	d.recalculatePricing()
	d.appendHistory(Pending, customerID, "Booking created", now)

	return d, nil
}

// Snapshot carries every persisted field of a delivery for rehydration.
type Snapshot struct {
	ID                   kernel.UUID
	Reference            string
	CustomerID           kernel.UUID
	Pickup               kernel.Address
	Drop                 kernel.Address
	Package              PackageDetails
	Contact              string
	Notes                string
	EstimatedDistanceKm  float64
	EstimatedDurationMin int
	AssignedDriverID     *kernel.UUID
	AssignedVehicleID    *kernel.UUID
	Status               Status
	AdminApproved        bool
	DriverAccepted       bool
	DriverRejectedReason string
	Pricing              Pricing
	Payment              PaymentStatus
	Method               PaymentMethod
	PaidAt               *time.Time
	Earnings             Earnings
	Rating               *Rating
	Cancellation         *Cancellation
	Current              *TrackPoint
	StartTime            *time.Time
	EndTime              *time.Time
	History              []StatusUpdate
	Version              int
}

// RestorePricing rehydrates a price breakdown from persistence.
func RestorePricing(base, weight, distance, cluster, total float64) Pricing {
	return Pricing{
		basePrice:      base,
		weightCharge:   weight,
		distanceCharge: distance,
		clusterCharge:  cluster,
		totalPrice:     total,
	}
}

// RestoreDelivery reconstructs a delivery aggregate from persistent storage.
// Unlike NewDelivery it accepts any persisted lifecycle state, but still
// rejects snapshots with invalid identity or status.
func RestoreDelivery(s Snapshot) (*Delivery, error) {
	if err := errors.Join(s.ID.Validate(), s.CustomerID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}

	return &Delivery{
		id:                   s.ID,
		reference:            s.Reference,
		customerID:           s.CustomerID,
		pickup:               s.Pickup,
		drop:                 s.Drop,
		pkg:                  s.Package,
		contact:              s.Contact,
		notes:                s.Notes,
		estimatedDistanceKm:  s.EstimatedDistanceKm,
		estimatedDurationMin: s.EstimatedDurationMin,
		assignedDriverID:     s.AssignedDriverID,
		assignedVehicleID:    s.AssignedVehicleID,
		status:               s.Status,
		adminApproved:        s.AdminApproved,
		driverAccepted:       s.DriverAccepted,
		driverRejectedReason: s.DriverRejectedReason,
		pricing:              s.Pricing,
		payment:              s.Payment,
		method:               s.Method,
		paidAt:               s.PaidAt,
		earnings:             s.Earnings,
		rating:               s.Rating,
		cancellation:         s.Cancellation,
		current:              s.Current,
		startTime:            s.StartTime,
		endTime:              s.EndTime,
		history:              s.History,
		version:              s.Version,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the delivery was constructed through NewDelivery or
// RestoreDelivery.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by identity.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// Accessors.

func (d *Delivery) ID() kernel.UUID                 { return d.id }
func (d *Delivery) Reference() string               { return d.reference }
func (d *Delivery) CustomerID() kernel.UUID         { return d.customerID }
func (d *Delivery) Pickup() kernel.Address          { return d.pickup }
func (d *Delivery) Drop() kernel.Address            { return d.drop }
func (d *Delivery) Package() PackageDetails         { return d.pkg }
func (d *Delivery) Contact() string                 { return d.contact }
func (d *Delivery) Notes() string                   { return d.notes }
func (d *Delivery) EstimatedDistanceKm() float64    { return d.estimatedDistanceKm }
func (d *Delivery) EstimatedDurationMin() int       { return d.estimatedDurationMin }
func (d *Delivery) AssignedDriver() *kernel.UUID    { return d.assignedDriverID }
func (d *Delivery) AssignedVehicle() *kernel.UUID   { return d.assignedVehicleID }
func (d *Delivery) Status() Status                  { return d.status }
func (d *Delivery) AdminApproved() bool             { return d.adminApproved }
func (d *Delivery) DriverAccepted() bool            { return d.driverAccepted }
func (d *Delivery) DriverRejectedReason() string    { return d.driverRejectedReason }
func (d *Delivery) Pricing() Pricing                { return d.pricing }
func (d *Delivery) PaymentStatus() PaymentStatus    { return d.payment }
func (d *Delivery) PaymentMethod() PaymentMethod    { return d.method }
func (d *Delivery) PaidAt() *time.Time              { return d.paidAt }
func (d *Delivery) Earnings() Earnings              { return d.earnings }
func (d *Delivery) Rating() *Rating                 { return d.rating }
func (d *Delivery) Cancellation() *Cancellation     { return d.cancellation }
func (d *Delivery) CurrentLocation() *TrackPoint    { return d.current }
func (d *Delivery) StartTime() *time.Time           { return d.startTime }
func (d *Delivery) EndTime() *time.Time             { return d.endTime }
func (d *Delivery) History() []StatusUpdate         { return d.history }
func (d *Delivery) Version() int                    { return d.version }

// IsActive reports whether the delivery currently holds its driver and
// vehicle: statuses Assigned, Accepted and On Route.
func (d *Delivery) IsActive() bool {
	return d.status == Assigned || d.status == Accepted || d.status == OnRoute
}

// Approve marks the booking approved by an admin: Pending -> Approved.
func (d *Delivery) Approve(actor kernel.UUID) error {
	newStatus, err := d.status.Approve()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.adminApproved = true
	d.appendHistory(newStatus, actor, "Approved by admin", time.Now())
	return nil
}

// Assign allocates a driver and vehicle and moves the delivery to Assigned.
// The revised distance triggers a full pricing recomputation. Assignment
// requires prior admin approval; a rejected delivery may be re-assigned, and
// an assigned delivery may be reassigned to a different driver or vehicle.
// Driver acceptance is reset on every assignment.
func (d *Delivery) Assign(actor, driverID, vehicleID kernel.UUID, estimatedDistanceKm float64, note string) error {
	if err := errors.Join(driverID.Validate(), vehicleID.Validate()); err != nil {
		return err
	}
	if estimatedDistanceKm <= 0 {
		return ErrDistanceIsInvalid
	}
	if !d.adminApproved {
		return ErrNotApproved
	}

	newStatus, err := d.status.Assign()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.assignedDriverID = &driverID
	d.assignedVehicleID = &vehicleID
	d.estimatedDistanceKm = estimatedDistanceKm
	d.driverAccepted = false
	d.driverRejectedReason = ""
	d.recalculatePricing()
	d.appendHistory(newStatus, actor, note, time.Now())
	return nil
}

// Accept records the assigned driver taking the job: Assigned -> Accepted.
func (d *Delivery) Accept(actor kernel.UUID) error {
	if err := d.authorizeDriver(actor, "accept delivery"); err != nil {
		return err
	}

	newStatus, err := d.status.Accept()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.driverAccepted = true
	d.appendHistory(newStatus, actor, "Accepted by driver", time.Now())
	return nil
}

// Reject records the assigned driver declining the job. The delivery returns
// to the unassigned pool: driver and vehicle references are cleared and the
// reason is kept for the admin.
func (d *Delivery) Reject(actor kernel.UUID, reason string) error {
	if err := d.authorizeDriver(actor, "reject delivery"); err != nil {
		return err
	}

	newStatus, err := d.status.Reject()
	if err != nil {
		return err
	}

	if reason == "" {
		reason = "No reason provided"
	}

	d.status = newStatus
	d.driverAccepted = false
	d.driverRejectedReason = reason
	d.assignedDriverID = nil
	d.assignedVehicleID = nil
	d.appendHistory(newStatus, actor, "Rejected: "+reason, time.Now())
	return nil
}

// Start records the driver beginning the trip: Accepted -> On Route.
func (d *Delivery) Start(actor kernel.UUID) error {
	if err := d.authorizeDriver(actor, "start delivery"); err != nil {
		return err
	}

	newStatus, err := d.status.Start()
	if err != nil {
		return err
	}

	now := time.Now()
	d.status = newStatus
	d.startTime = &now
	d.appendHistory(newStatus, actor, "Driver started the delivery", now)
	return nil
}

// Complete records the driver finishing the trip: On Route -> Delivered.
// Payment is marked Paid if still pending, and the earnings record is
// stamped as paid; the caller posts the matching wallet credit.
func (d *Delivery) Complete(actor kernel.UUID) error {
	if err := d.authorizeDriver(actor, "complete delivery"); err != nil {
		return err
	}

	newStatus, err := d.status.Complete()
	if err != nil {
		return err
	}

	now := time.Now()
	d.status = newStatus
	d.endTime = &now
	if d.payment == PaymentPending {
		d.payment = PaymentPaid
		d.paidAt = &now
	}
	d.earnings.markPaid(now)
	d.appendHistory(newStatus, actor, "Delivery completed successfully", now)
	return nil
}

// Cancel moves any non-terminal delivery to Cancelled and records the refund
// owed according to the status at cancellation time. refundable controls
// whether a refund is owed at all: unpaid bookings cancel without one.
// The refund posting itself is the caller's job; until it succeeds the
// refund stays Pending so the reconciliation job can find it.
func (d *Delivery) Cancel(actor kernel.UUID, reason string, refundable bool) error {
	priorStatus := d.status

	newStatus, err := d.status.Cancel()
	if err != nil {
		return err
	}

	if reason == "" {
		reason = "No reason provided"
	}

	refundAmount := 0.0
	refundStatus := RefundNone
	if refundable {
		refundAmount = d.pricing.TotalPrice() * RefundPercentage(priorStatus)
		if refundAmount > 0 {
			refundStatus = RefundPending
		}
	}

	now := time.Now()
	d.status = newStatus
	d.cancellation = &Cancellation{
		cancelledBy:  actor,
		cancelledAt:  now,
		reason:       reason,
		refundAmount: refundAmount,
		refundStatus: refundStatus,
	}
	d.appendHistory(newStatus, actor, "Cancelled: "+reason, now)
	return nil
}

// MarkRefundProcessed records that the cancellation refund was posted to the
// customer wallet.
func (d *Delivery) MarkRefundProcessed() error {
	if d.cancellation == nil {
		return errs.NewInvalidStateError("mark refund processed", d.status.String())
	}
	d.cancellation.refundStatus = RefundProcessed
	return nil
}

// MarkRefundFailed records that the refund posting failed and needs
// reconciliation.
func (d *Delivery) MarkRefundFailed() error {
	if d.cancellation == nil {
		return errs.NewInvalidStateError("mark refund failed", d.status.String())
	}
	d.cancellation.refundStatus = RefundFailed
	return nil
}

// Rate stores the customer's one-time rating of a delivered shipment.
func (d *Delivery) Rate(actor kernel.UUID, stars int, feedback string) error {
	if !actor.IsEqual(d.customerID) {
		return errs.NewNotAuthorizedError(actor.String(), "rate delivery")
	}
	if d.status != Delivered {
		return errs.NewInvalidStateError("rate", d.status.String())
	}
	if d.rating != nil {
		return ErrAlreadyRated
	}

	rating, err := NewRating(stars, feedback, time.Now())
	if err != nil {
		return err
	}

	d.rating = &rating
	return nil
}

// MarkPaid records a successful customer payment.
func (d *Delivery) MarkPaid(method PaymentMethod) error {
	if d.payment == PaymentPaid {
		return ErrAlreadyPaid
	}

	now := time.Now()
	d.payment = PaymentPaid
	d.method = method
	d.paidAt = &now
	return nil
}

// UpdateLocation records the driver's live position. Lifecycle status is not
// touched; location updates are lock-free with respect to transitions.
func (d *Delivery) UpdateLocation(actor kernel.UUID, point kernel.GeoPoint) error {
	if err := d.authorizeDriver(actor, "update location"); err != nil {
		return err
	}

	d.current = &TrackPoint{Point: point, UpdatedAt: time.Now()}
	return nil
}

func (d *Delivery) authorizeDriver(actor kernel.UUID, action string) error {
	if d.assignedDriverID == nil {
		return ErrNoDriverAssigned
	}
	if !actor.IsEqual(*d.assignedDriverID) {
		return errs.NewNotAuthorizedError(actor.String(), action)
	}
	return nil
}

// recalculatePricing replaces the full breakdown and the derived earnings
// from the current weight, distance and cluster. Never patches fields.
func (d *Delivery) recalculatePricing() {
	d.pricing = CalculatePricing(d.pkg.WeightKg, d.estimatedDistanceKm, d.pkg.Cluster)
	d.earnings, _ = NewEarnings(d.pricing, DefaultCommissionRate)
}

func (d *Delivery) appendHistory(status Status, actor kernel.UUID, note string, at time.Time) {
	d.history = append(d.history, StatusUpdate{
		status: status,
		actor:  actor,
		note:   note,
		at:     at,
	})
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.customerID = id
	return nil
}

func (d *Delivery) setPickup(a kernel.Address) error {
	if err := a.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("pickupLocation", err)
	}
	d.pickup = a
	return nil
}

func (d *Delivery) setDrop(a kernel.Address) error {
	if err := a.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("dropLocation", err)
	}
	d.drop = a
	return nil
}

func (d *Delivery) setPackage(pkg PackageDetails) error {
	if pkg.WeightKg <= 0 {
		return ErrWeightIsInvalid
	}
	d.pkg = pkg
	return nil
}

func (d *Delivery) setDistance(km float64) error {
	if km <= 0 {
		return ErrDistanceIsInvalid
	}
	d.estimatedDistanceKm = km
	return nil
}

func (d *Delivery) setContact(contact string) error {
	if contact == "" {
		return ErrContactNumberIsRequired
	}
	d.contact = contact
	return nil
}

// newReference builds the human-readable delivery reference, e.g.
// DEL-1719476400000-9F3A2C.
func newReference(now time.Time) string {
	raw := strings.ToUpper(strings.ReplaceAll(kernel.NewUUID().String(), "-", ""))
	return fmt.Sprintf("DEL-%d-%s", now.UnixMilli(), raw[:6])
}
