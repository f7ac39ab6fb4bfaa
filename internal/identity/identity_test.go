package identity

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/focusd/internal/model"
)

func TestResolvePrefersExplicitOwner(t *testing.T) {
	t.Setenv(EnvOwner, "alice")
	t.Setenv("USER", "machine-login")

	owner, err := Resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if owner != "alice" {
		t.Fatalf("owner = %q, want alice", owner)
	}
}

func TestResolveFallsBackToLoginUser(t *testing.T) {
	t.Setenv(EnvOwner, "")
	t.Setenv("USER", "bob")

	owner, err := Resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if owner != "bob" {
		t.Fatalf("owner = %q, want bob", owner)
	}
}

func TestResolveUnauthorizedWithoutIdentity(t *testing.T) {
	t.Setenv(EnvOwner, "   ")
	t.Setenv("USER", "")

	if _, err := Resolve(); !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got: %v", err)
	}
}
