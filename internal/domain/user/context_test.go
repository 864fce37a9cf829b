package user

import (
	"context"
	"testing"
)

func TestPrincipalContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("expected no principal on a bare context")
	}

	admin := Principal{UserID: "admin-1", Email: "admin@league.example.org", Role: "admin"}
	ctx := NewContext(context.Background(), admin)
	got, ok := FromContext(ctx)
	if !ok || got != admin {
		t.Fatalf("expected %+v, got %+v (ok=%v)", admin, got, ok)
	}

	// A string key with the same text must not collide.
	type otherKey string
	shadowed := context.WithValue(context.Background(), otherKey("auth_principal"), admin)
	if _, ok := FromContext(shadowed); ok {
		t.Fatalf("principal must only be read from its own key")
	}
}
