package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/notice"
	"github.com/dukerupert/listkeeper/internal/websocket"
)

// base carries what every gateway handler needs to answer a screen.
type base struct {
	hub     *websocket.Hub
	notices *notice.Catalog
	logger  *slog.Logger
}

func (b base) broadcast(msg websocket.Message) {
	if b.hub != nil {
		b.hub.Broadcast(msg)
	}
}

type envelope struct {
	Data   any            `json:"data,omitempty"`
	Notice *notice.Notice `json:"notice,omitempty"`
}

type errorBody struct {
	Error   string            `json:"error"`
	Kind    apperr.Kind       `json:"kind"`
	Details map[string]string `json:"details,omitempty"`
	Retry   bool              `json:"retryable"`
	Notice  notice.Notice     `json:"notice"`
}

// ok writes data with the success notice of key. Pass an empty key for
// reads that should not toast.
func (b base) ok(w http.ResponseWriter, status int, data any, key notice.Key, args ...any) {
	body := envelope{Data: data}
	if key != "" {
		n := b.notices.Success(key, args...)
		body.Notice = &n
	}
	writeJSON(w, status, body)
}

// fail maps err to a status and writes the failure notice of key.
func (b base) fail(w http.ResponseWriter, r *http.Request, key notice.Key, err error) {
	if r.Context().Err() != nil && errors.Is(err, r.Context().Err()) {
		// The screen went away; nobody is left to read the answer.
		b.logger.Debug("request cancelled", "path", r.URL.Path)
		return
	}
	kind := apperr.KindOf(err)
	meta := apperr.MetadataFor(kind)
	body := errorBody{
		Error:  err.Error(),
		Kind:   kind,
		Retry:  meta.Retryable,
		Notice: b.notices.Failure(key, err),
	}
	if e := apperr.As(err); e != nil {
		body.Error = e.Message
		body.Details = e.Details
	}
	if meta.HTTPStatus >= 500 || kind == apperr.KindServer {
		b.logger.Error("request failed", "path", r.URL.Path, "kind", kind, "error", err)
	} else {
		b.logger.Warn("request failed", "path", r.URL.Path, "kind", kind, "error", err)
	}
	writeJSON(w, meta.HTTPStatus, body)
}

// decode reads a JSON body into v, reporting bad JSON as a validation error.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.KindValidation, err, "invalid JSON")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
