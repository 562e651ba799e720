package auth

import (
	"context"

	"github.com/dukerupert/listkeeper/internal/model"
)

type contextKey struct{}

// AuthContext is the signed-in user as seen by one gateway request.
type AuthContext struct {
	UserID string
	Email  string
	Admin  bool
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

// FromSession builds the request view of a session.
func FromSession(s model.Session) (AuthContext, bool) {
	if !s.Authenticated() {
		return AuthContext{}, false
	}
	return AuthContext{UserID: s.User.ID, Email: s.User.Email, Admin: s.User.IsAdmin()}, true
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

func UserID(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.UserID
}

func IsAdmin(ctx context.Context) bool {
	ac, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return ac.Admin
}
