// Package handler contains the HTTP handlers for the Player Connector API.
//
// Handlers are thin adapters: they decode requests, call the service layer,
// and encode responses. All error translation goes through MapServiceError
// so that service sentinel errors map to consistent RFC 9457 problem
// responses across the API.
package handler
