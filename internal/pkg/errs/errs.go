package errs

import (
	"fmt"
	"strings"
)

// Sentinel errors for classification via errors.Is.
var (
	ErrValueIsRequired      = fmt.Errorf("value is required")
	ErrValueIsInvalid       = fmt.Errorf("value is invalid")
	ErrValueIsOutOfRange    = fmt.Errorf("value is out of range")
	ErrObjectNotFound       = fmt.Errorf("object not found")
	ErrVersionIsInvalid     = fmt.Errorf("version is invalid")
	ErrInvalidState         = fmt.Errorf("invalid state")
	ErrNotAuthorized        = fmt.Errorf("not authorized")
	ErrInsufficientBalance  = fmt.Errorf("insufficient balance")
	ErrResourceConflict     = fmt.Errorf("resource conflict")
	ErrLedgerInconsistent   = fmt.Errorf("ledger inconsistent")
)

// sanitize strips newlines from values embedded in error messages.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\r", " ")
}

// ValueIsRequiredError indicates a required value was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a value was present but malformed or out of contract.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates a numeric value fell outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError indicates a referenced aggregate or entity is absent.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// VersionIsInvalidError indicates an optimistic concurrency check failed:
// the aggregate changed between read and write.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName))
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// InvalidStateError indicates an operation was attempted from a status that
// does not allow it. The target aggregate is left unchanged.
type InvalidStateError struct {
	Operation string
	Current   string
	Cause     error
}

func NewInvalidStateError(operation, current string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Current: current}
}

func NewInvalidStateErrorWithCause(operation, current string, cause error) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Current: current, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: cannot %s from %s (cause: %s)",
			ErrInvalidState, e.Operation, e.Current, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: cannot %s from %s", ErrInvalidState, e.Operation, e.Current))
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// NotAuthorizedError indicates the acting identity lacks permission for the operation.
type NotAuthorizedError struct {
	Actor  string
	Action string
	Cause  error
}

func NewNotAuthorizedError(actor, action string) *NotAuthorizedError {
	return &NotAuthorizedError{Actor: actor, Action: action}
}

func NewNotAuthorizedErrorWithCause(actor, action string, cause error) *NotAuthorizedError {
	return &NotAuthorizedError{Actor: actor, Action: action, Cause: cause}
}

func (e *NotAuthorizedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s may not %s (cause: %s)",
			ErrNotAuthorized, e.Actor, e.Action, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s may not %s", ErrNotAuthorized, e.Actor, e.Action))
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}

// InsufficientBalanceError indicates a debit or withdrawal exceeded the wallet
// balance. No partial posting is made.
type InsufficientBalanceError struct {
	Available float64
	Requested float64
}

func NewInsufficientBalanceError(available, requested float64) *InsufficientBalanceError {
	return &InsufficientBalanceError{Available: available, Requested: requested}
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: available %.2f, requested %.2f",
		ErrInsufficientBalance, e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// ResourceConflictError indicates a vehicle or driver is already held by
// another active delivery.
type ResourceConflictError struct {
	Resource string
	ID       any
	Cause    error
}

func NewResourceConflictError(resource string, id any) *ResourceConflictError {
	return &ResourceConflictError{Resource: resource, ID: id}
}

func NewResourceConflictErrorWithCause(resource string, id any, cause error) *ResourceConflictError {
	return &ResourceConflictError{Resource: resource, ID: id, Cause: cause}
}

func (e *ResourceConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s %v is already held (cause: %s)",
			ErrResourceConflict, e.Resource, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s %v is already held", ErrResourceConflict, e.Resource, e.ID))
}

func (e *ResourceConflictError) Unwrap() error {
	return ErrResourceConflict
}

// LedgerInconsistencyError indicates a multi-posting sequence partially
// completed. It is surfaced for reconciliation, never retried silently.
type LedgerInconsistencyError struct {
	DeliveryRef string
	Detail      string
	Cause       error
}

func NewLedgerInconsistencyError(deliveryRef, detail string) *LedgerInconsistencyError {
	return &LedgerInconsistencyError{DeliveryRef: deliveryRef, Detail: detail}
}

func NewLedgerInconsistencyErrorWithCause(deliveryRef, detail string, cause error) *LedgerInconsistencyError {
	return &LedgerInconsistencyError{DeliveryRef: deliveryRef, Detail: detail, Cause: cause}
}

func (e *LedgerInconsistencyError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: delivery %s: %s (cause: %s)",
			ErrLedgerInconsistent, e.DeliveryRef, e.Detail, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: delivery %s: %s", ErrLedgerInconsistent, e.DeliveryRef, e.Detail))
}

func (e *LedgerInconsistencyError) Unwrap() error {
	return ErrLedgerInconsistent
}
