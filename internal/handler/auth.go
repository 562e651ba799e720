package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/auth"
	"github.com/dukerupert/listkeeper/internal/model"
	"github.com/dukerupert/listkeeper/internal/notice"
	"github.com/dukerupert/listkeeper/internal/validate"
	"github.com/dukerupert/listkeeper/internal/websocket"
)

// Sessions is the session manager as the auth screens use it.
type Sessions interface {
	Current() model.Session
	Route() model.Route
	OnboardingSeen() bool
	Login(ctx context.Context, creds model.Credentials) (model.Session, error)
	Register(ctx context.Context, reg model.Registration) (model.Session, error)
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, user model.User) error
	CompleteOnboarding(ctx context.Context) error
}

// Profiles reads and edits user records on the backend.
type Profiles interface {
	User(ctx context.Context, id string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, u model.UserUpdate) (*model.User, error)
}

type AuthHandler struct {
	base
	sessions Sessions
	profiles Profiles
}

func NewAuthHandler(sessions Sessions, profiles Profiles, hub *websocket.Hub, notices *notice.Catalog, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		base:     base{hub: hub, notices: notices, logger: logger},
		sessions: sessions,
		profiles: profiles,
	}
}

// sessionView is what screens learn about the session. The token stays in
// the gateway.
type sessionView struct {
	Authenticated  bool        `json:"authenticated"`
	User           *model.User `json:"user,omitempty"`
	Admin          bool        `json:"admin"`
	OnboardingSeen bool        `json:"onboardingSeen"`
	Route          model.Route `json:"route"`
}

func (h *AuthHandler) view() sessionView {
	sess := h.sessions.Current()
	v := sessionView{
		Authenticated:  sess.Authenticated(),
		OnboardingSeen: h.sessions.OnboardingSeen(),
		Route:          h.sessions.Route(),
	}
	if v.Authenticated {
		v.User = sess.User
		v.Admin = sess.User.IsAdmin()
	}
	return v
}

// Session is public: a signed-out screen uses it to pick its first route.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	h.ok(w, http.StatusOK, h.view(), "")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := decode(r, &creds); err != nil {
		h.fail(w, r, notice.SignedIn, err)
		return
	}

	if _, err := h.sessions.Login(r.Context(), creds); err != nil {
		h.fail(w, r, notice.SignedIn, err)
		return
	}
	h.ok(w, http.StatusOK, h.view(), notice.SignedIn)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg model.Registration
	if err := decode(r, &reg); err != nil {
		h.fail(w, r, notice.Registered, err)
		return
	}

	if _, err := h.sessions.Register(r.Context(), reg); err != nil {
		h.fail(w, r, notice.Registered, err)
		return
	}
	h.ok(w, http.StatusCreated, h.view(), notice.Registered)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		h.fail(w, r, notice.SignedOut, err)
		return
	}
	h.ok(w, http.StatusOK, h.view(), notice.SignedOut)
}

func (h *AuthHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.CompleteOnboarding(r.Context()); err != nil {
		h.fail(w, r, notice.OnboardingDone, err)
		return
	}
	h.ok(w, http.StatusOK, h.view(), notice.OnboardingDone)
}

// Profile refreshes the signed-in user from the backend and keeps the
// session copy in step.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	user, err := h.profiles.User(r.Context(), userID)
	if err != nil {
		h.fail(w, r, notice.ProfileUpdated, err)
		return
	}
	if user == nil {
		h.fail(w, r, notice.ProfileUpdated, apperr.NotFound("user not found"))
		return
	}
	if err := h.sessions.UpdateUser(r.Context(), *user); err != nil {
		h.logger.Warn("failed to refresh session user", "user_id", userID, "error", err)
	}
	h.ok(w, http.StatusOK, user, "")
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var u model.UserUpdate
	if err := decode(r, &u); err != nil {
		h.fail(w, r, notice.ProfileUpdated, err)
		return
	}
	if err := validate.Struct(u); err != nil {
		h.fail(w, r, notice.ProfileUpdated, err)
		return
	}

	user, err := h.profiles.UpdateUser(r.Context(), userID, u)
	if err != nil {
		h.fail(w, r, notice.ProfileUpdated, err)
		return
	}
	if err := h.sessions.UpdateUser(r.Context(), *user); err != nil {
		h.fail(w, r, notice.ProfileUpdated, err)
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntitySession, websocket.ActionUpdated, userID))
	h.ok(w, http.StatusOK, user, notice.ProfileUpdated)
}
