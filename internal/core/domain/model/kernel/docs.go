// Package kernel provides shared value objects used across all aggregates:
// UUID identity, geographic points, and postal addresses. All types are
// immutable and constructed through validating factory functions.
package kernel
