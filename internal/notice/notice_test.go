package notice

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dukerupert/listkeeper/internal/apperr"
)

func TestNewFallsBackToSpanish(t *testing.T) {
	assert.Equal(t, Spanish, New("").Locale())
	assert.Equal(t, Spanish, New("fr").Locale())
	assert.Equal(t, English, New(" EN ").Locale())
}

func TestSuccess(t *testing.T) {
	n := New("es").Success(ItemAdded)
	assert.Equal(t, LevelSuccess, n.Level)
	assert.Equal(t, "Éxito", n.Title)
	assert.Equal(t, "Producto agregado", n.Message)

	n = New("en").Success(ListCreated, "Party")
	assert.Equal(t, `List "Party" created`, n.Message)
}

func TestFailureByKind(t *testing.T) {
	es := New("es")

	n := es.Failure(ItemAdded, apperr.Server(500, "boom"))
	assert.Equal(t, LevelError, n.Level)
	assert.Equal(t, "No se pudo agregar el producto", n.Message)
	assert.Equal(t, apperr.KindServer, n.Kind)

	n = es.Failure(ItemAdded, fmt.Errorf("add: %w", apperr.Network(errors.New("dial tcp"))))
	assert.Equal(t, apperr.KindNetwork, n.Kind)
	assert.Contains(t, n.Message, "Intenta de nuevo")

	n = es.Failure(ListCreated, apperr.Validation("name is required"))
	assert.Equal(t, "name is required", n.Message)

	n = New("en").Failure(ItemToggled, apperr.State("list is closed"))
	assert.Equal(t, "The list is closed", n.Message)
}

func TestEveryKeyIsTranslated(t *testing.T) {
	for key := range messages[Spanish] {
		en, ok := messages[English][key]
		if !assert.True(t, ok, "missing english text for %s", key) {
			continue
		}
		assert.NotEmpty(t, en.ok)
		assert.NotEmpty(t, en.fail)
	}
	assert.Equal(t, len(messages[Spanish]), len(messages[English]))
}
