package authz

import (
	"context"
	"errors"
	"testing"
)

func TestUserFromContext(t *testing.T) {
	user := &AuthUser{ID: "u-1", Email: "scout@example.com"}
	ctx := ContextWithUser(context.Background(), user)

	got := UserFromContext(ctx)
	if got == nil || got.ID != "u-1" {
		t.Fatalf("UserFromContext = %+v, want %+v", got, user)
	}
}

func TestUserFromContextMissing(t *testing.T) {
	if got := UserFromContext(context.Background()); got != nil {
		t.Fatalf("expected nil user, got %+v", got)
	}
	if got := UserFromContext(nil); got != nil {
		t.Fatalf("expected nil user for nil context, got %+v", got)
	}
}

func TestRequireUser(t *testing.T) {
	_, err := RequireUser(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	ctx := ContextWithUser(context.Background(), &AuthUser{ID: "u-2"})
	user, err := RequireUser(ctx)
	if err != nil {
		t.Fatalf("RequireUser: %v", err)
	}
	if user.ID != "u-2" {
		t.Fatalf("user ID = %s, want u-2", user.ID)
	}
}
