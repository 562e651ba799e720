package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/listkeeper/internal/auth"
	"github.com/dukerupert/listkeeper/internal/model"
)

// SessionReader is the read side of the session manager.
type SessionReader interface {
	Current() model.Session
}

// RequireSession rejects requests while signed out and populates AuthContext.
// Screens get 401 with the route they should go to.
func RequireSession(sessions SessionReader, route func() model.Route) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac, ok := auth.FromSession(sessions.Current())
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "not signed in",
					"route": string(route()),
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithAuth(r.Context(), ac)))
		})
	}
}

// RequireAdmin checks that the signed-in user is an admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsAdmin(r.Context()) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
