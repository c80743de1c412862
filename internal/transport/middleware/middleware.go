// Package middleware holds the HTTP middleware wrapped around the dictionary
// API: panic recovery, request ids, client address resolution, access
// logging, CORS and per-client rate limits.
package middleware

import (
	"net/http"
	"slices"
)

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines mws into a single Middleware. The first one given is the
// outermost: Chain(a, b)(h) is a(b(h)).
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for _, mw := range slices.Backward(mws) {
			final = mw(final)
		}
		return final
	}
}
