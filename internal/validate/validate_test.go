package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/model"
)

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(model.Registration{Email: "not-an-email", Password: "abc", ConfirmPassword: "abd"})
	require.Error(t, err)

	typed := apperr.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperr.KindValidation, typed.Kind)
	assert.Equal(t, "is required", typed.Details["firstName"])
	assert.Equal(t, "must be a valid email", typed.Details["email"])
	assert.Equal(t, "must be at least 6", typed.Details["password"])
	assert.Equal(t, "does not match", typed.Details["confirmPassword"])
}

func TestStructValid(t *testing.T) {
	err := Struct(model.Credentials{Email: "ana@example.com", Password: "secret"})
	assert.NoError(t, err)
}

func TestStructPointerRules(t *testing.T) {
	zero := 0.0
	err := Struct(model.ItemUpdate{Quantity: &zero})
	require.Error(t, err)
	assert.Contains(t, apperr.As(err).Details, "quantity")

	assert.NoError(t, Struct(model.ItemUpdate{}))
}
