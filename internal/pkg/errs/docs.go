// Package errs provides standardized error types for the logistics backend.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error kind follows the same shape:
//   - A sentinel error variable (e.g. ErrInsufficientBalance)
//   - A struct type carrying the error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() to the sentinel
//
// Callers classify errors with errors.Is against the sentinels, so every
// failure remains distinguishable by kind: validation, invalid state,
// authorization, missing object, stale version, insufficient balance,
// resource conflict, and ledger inconsistency.
package errs
