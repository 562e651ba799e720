package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/model"
	"github.com/dukerupert/listkeeper/internal/notice"
	"github.com/dukerupert/listkeeper/internal/store"
	"github.com/dukerupert/listkeeper/internal/websocket"
)

type PreferencesHandler struct {
	base
	state *store.StateStore
}

func NewPreferencesHandler(state *store.StateStore, hub *websocket.Hub, notices *notice.Catalog, logger *slog.Logger) *PreferencesHandler {
	return &PreferencesHandler{base: base{hub: hub, notices: notices, logger: logger}, state: state}
}

// LoadPreferences reads the stored theme. A missing or unknown value means
// the system theme.
func LoadPreferences(ctx context.Context, state *store.StateStore) (model.Preferences, error) {
	var prefs model.Preferences
	found, err := state.GetJSON(ctx, store.KeyTheme, &prefs)
	if err != nil {
		return model.Preferences{Theme: model.ThemeSystem}, err
	}
	if !found || !prefs.Theme.Valid() {
		prefs.Theme = model.ThemeSystem
	}
	return prefs, nil
}

func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	prefs, err := LoadPreferences(r.Context(), h.state)
	if err != nil {
		// A corrupt record is not worth an error screen.
		h.logger.Warn("unreadable preferences, using defaults", "error", err)
	}
	h.ok(w, http.StatusOK, prefs, "")
}

func (h *PreferencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var prefs model.Preferences
	if err := decode(r, &prefs); err != nil {
		h.fail(w, r, notice.ThemeUpdated, err)
		return
	}
	if !prefs.Theme.Valid() {
		h.fail(w, r, notice.ThemeUpdated, apperr.Validation("theme must be light, dark or system").
			WithDetails(map[string]string{"theme": "is invalid"}))
		return
	}

	if err := h.state.SetJSON(r.Context(), store.KeyTheme, prefs); err != nil {
		h.fail(w, r, notice.ThemeUpdated, err)
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityPreferences, websocket.ActionUpdated, ""))
	h.ok(w, http.StatusOK, prefs, notice.ThemeUpdated)
}
