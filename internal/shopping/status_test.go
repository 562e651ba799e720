package shopping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/model"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"open", "closed", " OPEN "} {
		_, err := ParseStatus(raw)
		assert.NoError(t, err, raw)
	}
	for _, raw := range []string{"", "archived", "deleted", "done"} {
		_, err := ParseStatus(raw)
		assert.True(t, apperr.Is(err, apperr.KindValidation), "ParseStatus(%q) err = %v", raw, err)
	}
}

func TestTransitionClose(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.FixedZone("CET", 3600))

	u, err := Transition(model.StatusOpen, model.StatusClosed, "u1", now)
	require.NoError(t, err)
	require.NotNil(t, u.Status)
	assert.Equal(t, model.StatusClosed, *u.Status)
	require.NotNil(t, u.ClosedAt)
	assert.Equal(t, time.UTC, u.ClosedAt.Location())
	assert.True(t, u.ClosedAt.Equal(now))
	require.NotNil(t, u.PurchasedBy)
	assert.Equal(t, "u1", *u.PurchasedBy)
	assert.False(t, u.ClearClosure)
}

func TestTransitionReopenClearsClosure(t *testing.T) {
	u, err := Transition(model.StatusClosed, model.StatusOpen, "u1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.StatusOpen, *u.Status)
	assert.True(t, u.ClearClosure)
	assert.Nil(t, u.ClosedAt)

	body, err := u.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"open","closedAt":null,"purchasedBy":null}`, string(body))
}

func TestTransitionRejects(t *testing.T) {
	_, err := Transition(model.StatusOpen, model.StatusOpen, "u1", time.Now())
	assert.True(t, apperr.Is(err, apperr.KindState))

	_, err = Transition(model.StatusOpen, "archived", "u1", time.Now())
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestTransitionLegacyStatusTreatedAsOpen(t *testing.T) {
	u, err := Transition("", model.StatusClosed, "u1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.StatusClosed, *u.Status)
}

func TestToggled(t *testing.T) {
	assert.Equal(t, model.StatusClosed, Toggled(model.StatusOpen))
	assert.Equal(t, model.StatusOpen, Toggled(model.StatusClosed))
	assert.Equal(t, model.StatusClosed, Toggled(""))
}
