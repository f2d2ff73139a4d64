// Package user contains the User aggregate: platform identity, role and the
// driver performance profile. Wallets are separate account aggregates keyed
// by owner id, never embedded here.
package user

import (
	"errors"
	"strings"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

// Domain errors for user operations.
var (
	// ErrUserIsNotConstructed is returned when a User bypassed NewUser.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
	// ErrNotADriver is returned when a driver-only operation runs on a
	// non-driver user.
	ErrNotADriver = errors.New("user is not a driver")
)

// Performance holds a driver's historical trip counters and rating.
// averageRating is the plain arithmetic mean of every rating ever received.
type Performance struct {
	TotalTrips     int
	CompletedTrips int
	CancelledTrips int
	AverageRating  float64
}

// DriverProfile is the driver-specific part of a user.
type DriverProfile struct {
	status      DriverStatus
	performance Performance
	ratings     []int
}

// RestoreDriverProfile rehydrates a driver profile from persistence.
func RestoreDriverProfile(status DriverStatus, performance Performance, ratings []int) *DriverProfile {
	return &DriverProfile{
		status:      status,
		performance: performance,
		ratings:     ratings,
	}
}

// Status returns the driver's working state.
func (p *DriverProfile) Status() DriverStatus { return p.status }

// Performance returns the historical counters.
func (p *DriverProfile) Performance() Performance { return p.performance }

// Ratings returns every star rating the driver has received, oldest first.
func (p *DriverProfile) Ratings() []int { return p.ratings }

// IsAssignable reports whether the driver can take new deliveries.
func (p *DriverProfile) IsAssignable() bool {
	return p.status == DriverActive
}

// User is the aggregate root for one platform identity.
type User struct {
	id       kernel.UUID
	name     string
	email    string
	phone    string
	role     Role
	isActive bool

	// driver is nil unless role is RoleDriver.
	driver *DriverProfile

	version int
	guard   guard.ConstructorGuard
}

// NewUser registers a platform user. Drivers start with an empty Active
// profile.
func NewUser(id kernel.UUID, name, email, phone string, role Role) (*User, error) {
	u := &User{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	u.phone = phone
	u.isActive = true
	if role == RoleDriver {
		u.driver = &DriverProfile{status: DriverActive}
	}

	return u, nil
}

// RestoreUser reconstructs a user from persistent storage.
func RestoreUser(
	id kernel.UUID,
	name, email, phone string,
	role Role,
	isActive bool,
	driver *DriverProfile,
	version int,
) (*User, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return nil, err
	}

	return &User{
		id:       id,
		name:     name,
		email:    email,
		phone:    phone,
		role:     role,
		isActive: isActive,
		driver:   driver,
		version:  version,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the user was constructed through NewUser or RestoreUser.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// IsEqual compares two users by identity.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// Accessors.

func (u *User) ID() kernel.UUID        { return u.id }
func (u *User) Name() string           { return u.name }
func (u *User) Email() string          { return u.email }
func (u *User) Phone() string          { return u.phone }
func (u *User) Role() Role             { return u.role }
func (u *User) IsActive() bool         { return u.isActive }
func (u *User) Driver() *DriverProfile { return u.driver }
func (u *User) Version() int           { return u.version }

// IsAssignableDriver reports whether the user can be assigned a delivery:
// an active user with the Driver role whose profile allows new work.
func (u *User) IsAssignableDriver() bool {
	return u.isActive && u.role == RoleDriver && u.driver != nil && u.driver.IsAssignable()
}

// Deactivate blocks the user from the platform without deleting history.
func (u *User) Deactivate() {
	u.isActive = false
}

// Activate re-enables a deactivated user.
func (u *User) Activate() {
	u.isActive = true
}

// SetDriverStatus changes the driver's working state.
func (u *User) SetDriverStatus(status DriverStatus) error {
	if u.driver == nil {
		return ErrNotADriver
	}
	if err := status.Validate(); err != nil {
		return err
	}
	u.driver.status = status
	return nil
}

// RecordCompletedTrip bumps the driver's trip counters after a delivery.
func (u *User) RecordCompletedTrip() error {
	if u.driver == nil {
		return ErrNotADriver
	}
	u.driver.performance.TotalTrips++
	u.driver.performance.CompletedTrips++
	return nil
}

// RecordCancelledTrip bumps the driver's counters after a cancellation of a
// delivery the driver held.
func (u *User) RecordCancelledTrip() error {
	if u.driver == nil {
		return ErrNotADriver
	}
	u.driver.performance.TotalTrips++
	u.driver.performance.CancelledTrips++
	return nil
}

// AddRating appends a delivery rating and recomputes the average over the
// full history.
func (u *User) AddRating(stars int) error {
	if u.driver == nil {
		return ErrNotADriver
	}
	if stars < 1 || stars > 5 {
		return errs.NewValueIsOutOfRangeError("stars", stars, 1, 5)
	}

	u.driver.ratings = append(u.driver.ratings, stars)
	sum := 0
	for _, r := range u.driver.ratings {
		sum += r
	}
	u.driver.performance.AverageRating = float64(sum) / float64(len(u.driver.ratings))
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidError("email")
	}
	u.email = email
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
