// Package middleware provides HTTP middleware for the interactions endpoint.
//
// # Available Middleware
//
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: structured access log through zap
//   - Recovery: converts panics into a Problem Details 500
//   - VerifySignature: Ed25519 verification of platform-signed requests
//
// RateLimiter is a token bucket keyed by an arbitrary string. The interaction
// endpoint applies it per user after decoding the payload.
//
// # Example
//
//	handler := middleware.Chain(endpoint,
//	    middleware.RequestID,
//	    middleware.Logger(log),
//	    middleware.Recovery(log),
//	    middleware.VerifySignature(publicKey, log),
//	)
package middleware
