package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope is the one response shape the backend is expected to use.
// Bodies that do not carry it are rejected rather than guessed at.
type Envelope struct {
	Success   *bool           `json:"success"`
	Status    int             `json:"status,omitempty"`
	Message   string          `json:"message,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Meta      json.RawMessage `json:"meta,omitempty"`
}

var errNotEnvelope = errors.New("response is not an envelope")

// decodeEnvelope parses body strictly: it must be a JSON object with a
// boolean "success" field.
func decodeEnvelope(body []byte) (Envelope, error) {
	var env Envelope
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return env, errNotEnvelope
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return env, fmt.Errorf("%w: %v", errNotEnvelope, err)
	}
	if env.Success == nil {
		return env, errNotEnvelope
	}
	return env, nil
}

// hasData reports whether the envelope carries a non-null payload.
func (e Envelope) hasData() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}
