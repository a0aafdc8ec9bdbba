// Package middleware provides HTTP middleware for the Player Connector API.
//
// The middleware here is purely ambient: request identification, structured
// request logging, panic recovery, CORS, and response compression. Handlers
// compose them with Chain:
//
//	wrapped := middleware.Chain(mux,
//		middleware.RequestID,
//		middleware.Logger,
//		middleware.Recovery,
//	)
//
// # Context Values
//
// RequestID stores a per-request identifier retrievable with
// GetRequestID(ctx); the same value is echoed in the X-Request-ID header.
package middleware
