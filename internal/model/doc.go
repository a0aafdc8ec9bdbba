// Package model defines domain entities and data structures for Player Connector.
//
// The model package contains all struct definitions for domain objects,
// request/response types, and error definitions. Models are used across all
// layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - User: Player profile owning availability records and holding game memberships
//   - Game: Game with player-count bounds and a member set of users
//   - Availability: Weekly time slot owned by exactly one user
//
// # Transfer Representations
//
// Each entity has a Data type (UserData, GameData, AvailabilityData) that is
// the outward representation. Entities never cross the API boundary with
// internal-only fields: the password hash is write-only and a user's
// multi-valued availability collection collapses to a single representative
// id in UserData.
//
// # Request Types
//
// Patch requests model partial updates with pointer fields: a nil field is
// a no-op, a non-nil field overwrites.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
