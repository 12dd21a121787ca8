// Package middleware holds the HTTP middleware shared by every route.
package middleware

import "net/http"

// Chain applies middlewares so they execute in the order given.
//
//	handler := Chain(mux, Recover, RequestLogging, CSRF(false))
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
