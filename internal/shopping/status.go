package shopping

import (
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/model"
)

// ParseStatus accepts only the two lifecycle states.
func ParseStatus(raw string) (model.Status, error) {
	s := model.Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", apperr.Validation(fmt.Sprintf("invalid status %q", raw))
	}
	return s, nil
}

// Toggled returns the other lifecycle state.
func Toggled(s model.Status) model.Status {
	if s == model.StatusClosed {
		return model.StatusOpen
	}
	return model.StatusClosed
}

// Transition validates from -> to and returns the list update that performs
// it. Closing stamps closedAt and purchasedBy; reopening clears both.
func Transition(from, to model.Status, by string, now time.Time) (model.ListUpdate, error) {
	if !to.Valid() {
		return model.ListUpdate{}, apperr.Validation(fmt.Sprintf("invalid status %q", to))
	}
	if !from.Valid() {
		// Lists created before status existed are open.
		from = model.StatusOpen
	}
	if from == to {
		return model.ListUpdate{}, apperr.State(fmt.Sprintf("list is already %s", to))
	}

	next := to
	u := model.ListUpdate{Status: &next}
	switch to {
	case model.StatusClosed:
		at := now.UTC()
		u.ClosedAt = &at
		if by != "" {
			u.PurchasedBy = &by
		}
	case model.StatusOpen:
		u.ClearClosure = true
	}
	return u, nil
}
