package middleware

import "github.com/permitpath/permitpath/pkg/ports"

// Middleware allows wrapping a SessionStore to add behavior.
type Middleware func(ports.SessionStore) ports.SessionStore

// Chain applies middlewares to a store, outermost first.
func Chain(store ports.SessionStore, middlewares ...Middleware) ports.SessionStore {
	for i := len(middlewares) - 1; i >= 0; i-- {
		store = middlewares[i](store)
	}
	return store
}
