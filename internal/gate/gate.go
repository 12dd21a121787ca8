// Package gate is a small Gate/Policy authorization registry.
// A Gate maps resource names ("news", "upload") to the Policy that decides whether a
// subject may perform an Action on a loaded resource. It knows nothing about models.
//
// U is the subject type; the application uses Gate[uint] keyed by the session user id.
package gate

import (
	"context"
	"fmt"
	"sync"
)

// Gate is the central authorization checkpoint.
type Gate[U comparable] struct {
	mu       sync.RWMutex
	policies map[string]Policy[U]
}

// NewGate creates an empty Gate ready to register policies.
func NewGate[U comparable]() *Gate[U] {
	return &Gate[U]{policies: make(map[string]Policy[U])}
}

// Register adds the policy for resource, replacing any previous one.
func (g *Gate[U]) Register(resource string, p Policy[U]) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.policies[resource] = p
}

// Authorize returns nil when user may perform action on target.
// The zero subject (anonymous) is always refused.
func (g *Gate[U]) Authorize(ctx context.Context, user U, action Action, resource string, target any) error {
	var zero U
	if user == zero {
		return fmt.Errorf("%w: anonymous %s on %s", ErrUnauthorized, action, resource)
	}
	g.mu.RLock()
	p, ok := g.policies[resource]
	g.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoPolicyDefined, resource)
	}
	if !p.Can(ctx, user, action, target) {
		return fmt.Errorf("%w: %s on %s", ErrUnauthorized, action, resource)
	}
	return nil
}

// Can is Authorize as a bool, handy in templates and tests.
func (g *Gate[U]) Can(ctx context.Context, user U, action Action, resource string, target any) bool {
	return g.Authorize(ctx, user, action, resource, target) == nil
}
