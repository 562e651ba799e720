package auth

import (
	"context"
	"testing"

	"github.com/dukerupert/listkeeper/internal/model"
)

func TestWithAuthAndFromContext(t *testing.T) {
	ctx := WithAuth(context.Background(), AuthContext{UserID: "u1", Email: "ana@example.com", Admin: true})

	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected AuthContext in context")
	}
	if got.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", got.UserID)
	}
	if UserID(ctx) != "u1" {
		t.Errorf("UserID(ctx) = %q, want u1", UserID(ctx))
	}
	if !IsAdmin(ctx) {
		t.Error("expected admin")
	}
}

func TestEmptyContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := FromContext(ctx); ok {
		t.Error("expected no AuthContext")
	}
	if UserID(ctx) != "" {
		t.Errorf("UserID = %q, want empty", UserID(ctx))
	}
	if IsAdmin(ctx) {
		t.Error("empty context should not be admin")
	}
}

func TestFromSession(t *testing.T) {
	if _, ok := FromSession(model.Session{}); ok {
		t.Error("signed-out session should not authenticate")
	}
	if _, ok := FromSession(model.Session{Token: "t"}); ok {
		t.Error("session without user should not authenticate")
	}

	ac, ok := FromSession(model.Session{Token: "t", User: &model.User{ID: "u1", RoleID: "admin"}})
	if !ok {
		t.Fatal("expected authenticated session")
	}
	if ac.UserID != "u1" || !ac.Admin {
		t.Errorf("got %+v", ac)
	}
}
