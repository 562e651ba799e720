// Package session owns the signed-in user and token. Manager is the only
// writer; everything else reads through Current or Token.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/model"
	"github.com/dukerupert/listkeeper/internal/secret"
	"github.com/dukerupert/listkeeper/internal/store"
	"github.com/dukerupert/listkeeper/internal/validate"
)

// Authenticator is the backend side of login and registration.
type Authenticator interface {
	Login(ctx context.Context, creds model.Credentials) (model.AuthResult, error)
	Register(ctx context.Context, reg model.Registration) (model.AuthResult, error)
}

type Manager struct {
	state  *store.StateStore
	auth   Authenticator
	sealer *secret.Sealer
	logger *slog.Logger
	now    func() time.Time

	// writeMu serializes transitions; mu guards the fields below.
	writeMu        sync.Mutex
	mu             sync.RWMutex
	current        model.Session
	onboardingSeen bool
	listeners      []func(model.Session)
}

// NewManager builds a signed-out manager. sealer may be nil, in which case
// the session is stored as plain JSON.
func NewManager(state *store.StateStore, auth Authenticator, sealer *secret.Sealer, logger *slog.Logger) *Manager {
	return &Manager{
		state:  state,
		auth:   auth,
		sealer: sealer,
		logger: logger,
		now:    time.Now,
	}
}

// OnChange registers fn to run after every login or logout.
func (m *Manager) OnChange(fn func(model.Session)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

func (m *Manager) Current() model.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.current
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Token is the bearer token for outgoing requests, empty when signed out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Token
}

func (m *Manager) OnboardingSeen() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.onboardingSeen
}

// Route picks the first screen: tabs when signed in, otherwise login once
// onboarding has been seen.
func (m *Manager) Route() model.Route {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch {
	case m.current.Authenticated():
		return model.RouteTabs
	case m.onboardingSeen:
		return model.RouteLogin
	default:
		return model.RouteOnboarding
	}
}

// Restore loads the persisted session and onboarding flag. A token that has
// already expired is discarded.
func (m *Manager) Restore(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	var seen bool
	if _, err := m.state.GetJSON(ctx, store.KeyOnboardingSeen, &seen); err != nil {
		return fmt.Errorf("restore onboarding flag: %w", err)
	}

	sess, err := m.load(ctx)
	if err != nil {
		m.logger.Warn("discarding unreadable session", "error", err)
		sess = model.Session{}
		if err := m.state.Delete(ctx, store.KeySession); err != nil {
			return err
		}
	}
	if sess.Authenticated() && TokenExpired(sess.Token, m.now()) {
		m.logger.Info("stored session expired")
		sess = model.Session{}
		if err := m.state.Delete(ctx, store.KeySession); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.onboardingSeen = seen
	m.current = sess
	m.mu.Unlock()

	if sess.Authenticated() {
		m.logger.Info("session restored", "user_id", sess.User.ID)
	}
	return nil
}

func (m *Manager) load(ctx context.Context) (model.Session, error) {
	var sess model.Session
	rec, err := m.state.Get(ctx, store.KeySession)
	if err != nil || rec == nil {
		return sess, err
	}
	raw := []byte(rec.Value)
	if rec.Sealed {
		if m.sealer == nil {
			return sess, fmt.Errorf("session is sealed and no state key is configured")
		}
		if raw, err = m.sealer.Open(rec.Value); err != nil {
			return sess, err
		}
	}
	if err := json.Unmarshal(raw, &sess); err != nil {
		return sess, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (m *Manager) persist(ctx context.Context, sess model.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if m.sealer == nil {
		return m.state.Put(ctx, store.KeySession, string(b), false)
	}
	sealed, err := m.sealer.Seal(b)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}
	return m.state.Put(ctx, store.KeySession, sealed, true)
}

func (m *Manager) Login(ctx context.Context, creds model.Credentials) (model.Session, error) {
	if err := validate.Struct(creds); err != nil {
		return model.Session{}, err
	}
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	res, err := m.auth.Login(ctx, creds)
	if err != nil {
		return model.Session{}, fmt.Errorf("login: %w", err)
	}
	return m.signIn(ctx, res)
}

func (m *Manager) Register(ctx context.Context, reg model.Registration) (model.Session, error) {
	if err := validate.Struct(reg); err != nil {
		return model.Session{}, err
	}
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	res, err := m.auth.Register(ctx, reg)
	if err != nil {
		return model.Session{}, fmt.Errorf("register: %w", err)
	}
	return m.signIn(ctx, res)
}

func (m *Manager) signIn(ctx context.Context, res model.AuthResult) (model.Session, error) {
	user := res.User
	sess := model.Session{User: &user, Token: res.Token}
	if err := m.persist(ctx, sess); err != nil {
		return model.Session{}, err
	}
	m.set(sess)
	m.logger.Info("signed in", "user_id", user.ID, "admin", user.IsAdmin())
	return m.Current(), nil
}

// Logout clears the session. It is safe to call when already signed out.
func (m *Manager) Logout(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if !m.Current().Authenticated() {
		return nil
	}
	// The in-memory session goes first so no request leaves with the old
	// token even if the store write fails.
	m.set(model.Session{})
	if err := m.state.Delete(ctx, store.KeySession); err != nil {
		return err
	}
	m.logger.Info("signed out")
	return nil
}

// HandleUnauthorized is the backend 401 hook. It runs detached from the
// failing request's context so a cancelled request still logs out.
func (m *Manager) HandleUnauthorized(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if err := m.Logout(ctx); err != nil {
		m.logger.Error("logout after 401", "error", err)
	}
}

// UpdateUser replaces the signed-in user's profile, keeping the token.
func (m *Manager) UpdateUser(ctx context.Context, user model.User) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	cur := m.Current()
	if !cur.Authenticated() {
		return apperr.Auth("not signed in")
	}
	if user.ID != cur.User.ID {
		return apperr.Validation("profile belongs to another user")
	}
	cur.User = &user
	if err := m.persist(ctx, cur); err != nil {
		return err
	}
	m.mu.Lock()
	m.current = cur
	m.mu.Unlock()
	return nil
}

func (m *Manager) CompleteOnboarding(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if err := m.state.SetJSON(ctx, store.KeyOnboardingSeen, true); err != nil {
		return err
	}
	m.mu.Lock()
	m.onboardingSeen = true
	m.mu.Unlock()
	return nil
}

func (m *Manager) set(sess model.Session) {
	m.mu.Lock()
	m.current = sess
	listeners := append([]func(model.Session){}, m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(sess)
	}
}

// TokenExpired reports whether a JWT's exp claim is at or before now. The
// signature is not checked; tokens that are not JWTs or carry no exp never
// expire client-side.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
