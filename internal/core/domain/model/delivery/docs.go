// Package delivery provides the Delivery aggregate root and its supporting
// value objects: the status state machine, the pricing breakdown, driver
// earnings, payment state, the append-only status history, cancellation
// records with refund calculation, and customer ratings.
//
// Key business rules:
//   - A delivery is booked in Pending and moves through
//     Approved -> Assigned -> Accepted -> On Route -> Delivered.
//     Rejected returns it to the unassigned pool; Cancelled and Delivered
//     are terminal.
//   - Pricing is always recomputed in full from the current weight, distance
//     and cluster, never adjusted incrementally; driver earnings are derived
//     from pricing on every recomputation.
//   - Every status change appends exactly one entry to the status history,
//     so the last history entry always matches the current status.
//   - Violating a transition precondition fails with a distinguishable
//     error and leaves the aggregate untouched; nothing silently no-ops.
package delivery
