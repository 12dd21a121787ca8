// Package policy holds the application's authorization rules for the gate.
package policy

import (
	"context"

	"github.com/diewo77/go-blogs/internal/gate"
)

// Resource names registered on the gate.
const (
	News   = "news"
	Upload = "upload"
)

// Ownable is implemented by models that belong to a user.
type Ownable interface {
	GetUserID() uint
}

// OwnershipPolicy allows an action only on resources owned by the user.
type OwnershipPolicy struct{}

func NewOwnershipPolicy() *OwnershipPolicy {
	return &OwnershipPolicy{}
}

// Can checks if the user owns the resource. For list/create (nil resource) any
// authenticated user is allowed; resources that are not Ownable are denied.
func (p *OwnershipPolicy) Can(_ context.Context, userID uint, _ gate.Action, resource any) bool {
	if resource == nil {
		return true
	}
	ownable, ok := resource.(Ownable)
	if !ok {
		return false
	}
	return ownable.GetUserID() == userID
}

// AuthenticatedPolicy allows any signed-in user. The gate already refuses anonymous subjects.
type AuthenticatedPolicy struct{}

func (AuthenticatedPolicy) Can(_ context.Context, userID uint, _ gate.Action, _ any) bool {
	return userID != 0
}

// NewGate returns the gate used by the services.
func NewGate() *gate.Gate[uint] {
	g := gate.NewGate[uint]()
	g.Register(News, NewOwnershipPolicy())
	g.Register(Upload, AuthenticatedPolicy{})
	return g
}
