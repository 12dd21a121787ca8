package policy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/diewo77/go-blogs/internal/gate"
	"github.com/diewo77/go-blogs/internal/models"
	"github.com/diewo77/go-blogs/internal/policy"
)

// mockNonOwnable is a resource that does NOT implement Ownable.
type mockNonOwnable struct {
	ID uint
}

func TestOwnershipPolicy_NilResource(t *testing.T) {
	p := policy.NewOwnershipPolicy()
	if !p.Can(context.Background(), 1, gate.ActionCreate, nil) {
		t.Error("expected create without a resource to be allowed")
	}
}

func TestOwnershipPolicy_OwnerOnly(t *testing.T) {
	p := policy.NewOwnershipPolicy()
	ctx := context.Background()
	n := &models.News{ID: 3, UserID: 42}

	for _, a := range []gate.Action{gate.ActionView, gate.ActionUpdate, gate.ActionDelete, gate.ActionDownload} {
		if !p.Can(ctx, 42, a, n) {
			t.Errorf("owner denied %s", a)
		}
		if p.Can(ctx, 99, a, n) {
			t.Errorf("non-owner allowed %s", a)
		}
	}
}

func TestOwnershipPolicy_NonOwnableDenied(t *testing.T) {
	p := policy.NewOwnershipPolicy()
	if p.Can(context.Background(), 1, gate.ActionView, &mockNonOwnable{ID: 1}) {
		t.Error("expected non-ownable resource to be denied")
	}
}

func TestNewGate(t *testing.T) {
	g := policy.NewGate()
	ctx := context.Background()
	n := &models.News{UserID: 5}

	if err := g.Authorize(ctx, 5, gate.ActionUpdate, policy.News, n); err != nil {
		t.Errorf("owner update: %v", err)
	}
	if err := g.Authorize(ctx, 6, gate.ActionUpdate, policy.News, n); !errors.Is(err, gate.ErrUnauthorized) {
		t.Errorf("foreign update: %v", err)
	}
	if err := g.Authorize(ctx, 6, gate.ActionDownload, policy.Upload, nil); err != nil {
		t.Errorf("authenticated upload download: %v", err)
	}
	if err := g.Authorize(ctx, 0, gate.ActionDownload, policy.Upload, nil); !errors.Is(err, gate.ErrUnauthorized) {
		t.Errorf("anonymous upload download: %v", err)
	}
}
