// Package service implements the use-case facades for Player Connector.
//
// Each facade (UserService, GamesService, AvailabilityService) composes the
// repositories into one use case per method: load or create entities,
// reconcile membership links, persist, and map to transfer representations.
//
// # Membership Reconciliation
//
// The User-Game relation is symmetric. Services never mutate both sides ad
// hoc: membership changes go through DiffMembership, which computes the
// minimal additions and removals between the current and desired member
// sets, and the repositories apply that diff as a single atomic edge batch.
// Every referenced id is resolved before any mutation, so a bad id fails
// the whole operation with a not-found error and no partial links.
//
// # Error Handling
//
// Services return the sentinel errors defined in errors.go; handlers map
// them to HTTP problem responses with errors.Is.
package service
