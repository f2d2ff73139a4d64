// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the delivery system. It
// implements business workflows that don't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - ResourceCoordinator: a domain service enforcing exclusive driver and
//     vehicle holds across active deliveries
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
