package session

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/database"
	"github.com/dukerupert/listkeeper/internal/model"
	"github.com/dukerupert/listkeeper/internal/secret"
	"github.com/dukerupert/listkeeper/internal/store"
)

type fakeAuth struct {
	result model.AuthResult
	err    error
	calls  int
}

func (f *fakeAuth) Login(_ context.Context, _ model.Credentials) (model.AuthResult, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeAuth) Register(_ context.Context, _ model.Registration) (model.AuthResult, error) {
	f.calls++
	return f.result, f.err
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func newStateStore(t *testing.T) *store.StateStore {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store.NewStateStore(db)
}

func newManager(t *testing.T, state *store.StateStore, auth Authenticator, sealer *secret.Sealer) *Manager {
	t.Helper()
	return NewManager(state, auth, sealer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRouteGuard(t *testing.T) {
	state := newStateStore(t)
	auth := &fakeAuth{result: model.AuthResult{Token: "opaque", User: model.User{ID: "u1"}}}
	m := newManager(t, state, auth, nil)
	ctx := context.Background()

	require.NoError(t, m.Restore(ctx))
	assert.Equal(t, model.RouteOnboarding, m.Route())

	require.NoError(t, m.CompleteOnboarding(ctx))
	assert.Equal(t, model.RouteLogin, m.Route())

	_, err := m.Login(ctx, model.Credentials{Email: "ana@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, model.RouteTabs, m.Route())

	require.NoError(t, m.Logout(ctx))
	assert.Equal(t, model.RouteLogin, m.Route())
}

func TestLoginPersistsAcrossRestart(t *testing.T) {
	state := newStateStore(t)
	token := signedToken(t, time.Now().Add(time.Hour))
	auth := &fakeAuth{result: model.AuthResult{Token: token, User: model.User{ID: "u1", Email: "ana@example.com"}}}
	ctx := context.Background()

	first := newManager(t, state, auth, nil)
	sess, err := first.Login(ctx, model.Credentials{Email: "ana@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.User.ID)

	second := newManager(t, state, auth, nil)
	require.NoError(t, second.Restore(ctx))
	assert.Equal(t, token, second.Token())
	assert.Equal(t, "ana@example.com", second.Current().User.Email)
}

func TestRestoreDropsExpiredToken(t *testing.T) {
	state := newStateStore(t)
	ctx := context.Background()
	auth := &fakeAuth{result: model.AuthResult{
		Token: signedToken(t, time.Now().Add(-time.Minute)),
		User:  model.User{ID: "u1"},
	}}

	first := newManager(t, state, auth, nil)
	_, err := first.Login(ctx, model.Credentials{Email: "ana@example.com", Password: "pw"})
	require.NoError(t, err)

	second := newManager(t, state, auth, nil)
	require.NoError(t, second.Restore(ctx))
	assert.False(t, second.Current().Authenticated())

	rec, err := state.Get(ctx, store.KeySession)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSealedSession(t *testing.T) {
	state := newStateStore(t)
	sealer, err := secret.NewSealer("passphrase")
	require.NoError(t, err)
	auth := &fakeAuth{result: model.AuthResult{Token: "opaque-token", User: model.User{ID: "u1"}}}
	ctx := context.Background()

	_, err = newManager(t, state, auth, sealer).Login(ctx, model.Credentials{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)

	rec, err := state.Get(ctx, store.KeySession)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Sealed)
	assert.NotContains(t, rec.Value, "opaque-token")

	restored := newManager(t, state, auth, sealer)
	require.NoError(t, restored.Restore(ctx))
	assert.Equal(t, "opaque-token", restored.Token())

	// Without the key the sealed session cannot be read and is discarded.
	unkeyed := newManager(t, state, auth, nil)
	require.NoError(t, unkeyed.Restore(ctx))
	assert.False(t, unkeyed.Current().Authenticated())
}

func TestLoginValidationSkipsBackend(t *testing.T) {
	auth := &fakeAuth{}
	m := newManager(t, newStateStore(t), auth, nil)

	_, err := m.Login(context.Background(), model.Credentials{Email: "not-an-email", Password: ""})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, 0, auth.calls)
}

func TestRegisterConfirmMismatch(t *testing.T) {
	auth := &fakeAuth{}
	m := newManager(t, newStateStore(t), auth, nil)

	_, err := m.Register(context.Background(), model.Registration{
		FirstName: "Ana", LastName: "Ruiz", Email: "ana@example.com",
		Password: "secret1", ConfirmPassword: "secret2",
	})
	require.Error(t, err)
	assert.Equal(t, "does not match", apperr.As(err).Details["confirmPassword"])
	assert.Equal(t, 0, auth.calls)
}

func TestLoginFailureKeepsSignedOut(t *testing.T) {
	auth := &fakeAuth{err: apperr.Server(401, "Invalid credentials")}
	m := newManager(t, newStateStore(t), auth, nil)

	_, err := m.Login(context.Background(), model.Credentials{Email: "ana@example.com", Password: "bad"})
	assert.True(t, apperr.Is(err, apperr.KindAuth))
	assert.False(t, m.Current().Authenticated())
}

func TestHandleUnauthorizedLogsOutAndNotifies(t *testing.T) {
	auth := &fakeAuth{result: model.AuthResult{Token: "t", User: model.User{ID: "u1"}}}
	m := newManager(t, newStateStore(t), auth, nil)
	var events []bool
	m.OnChange(func(s model.Session) { events = append(events, s.Authenticated()) })

	_, err := m.Login(context.Background(), model.Credentials{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m.HandleUnauthorized(ctx)

	assert.Empty(t, m.Token())
	assert.Equal(t, []bool{true, false}, events)

	// A second 401 while signed out is a no-op.
	m.HandleUnauthorized(context.Background())
	assert.Len(t, events, 2)
}

func TestUpdateUser(t *testing.T) {
	auth := &fakeAuth{result: model.AuthResult{Token: "t", User: model.User{ID: "u1", FirstName: "Ana"}}}
	m := newManager(t, newStateStore(t), auth, nil)
	ctx := context.Background()

	assert.True(t, apperr.Is(m.UpdateUser(ctx, model.User{ID: "u1"}), apperr.KindAuth))

	_, err := m.Login(ctx, model.Credentials{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, m.UpdateUser(ctx, model.User{ID: "u1", FirstName: "Anita"}))
	assert.Equal(t, "Anita", m.Current().User.FirstName)
	assert.Equal(t, "t", m.Token())

	err = m.UpdateUser(ctx, model.User{ID: "u2"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCurrentReturnsCopy(t *testing.T) {
	auth := &fakeAuth{result: model.AuthResult{Token: "t", User: model.User{ID: "u1", FirstName: "Ana"}}}
	m := newManager(t, newStateStore(t), auth, nil)
	_, err := m.Login(context.Background(), model.Credentials{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)

	s := m.Current()
	s.User.FirstName = "changed"
	assert.Equal(t, "Ana", m.Current().User.FirstName)
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	assert.True(t, TokenExpired(signedToken(t, now.Add(-time.Second)), now))
	assert.False(t, TokenExpired(signedToken(t, now.Add(time.Hour)), now))
	assert.False(t, TokenExpired("opaque", now))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"}).SignedString([]byte("k"))
	require.NoError(t, err)
	assert.False(t, TokenExpired(noExp, now))
}

