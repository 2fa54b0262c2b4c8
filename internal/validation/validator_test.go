package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/readnextapp/readnext-server/internal/errors"
)

type signupInput struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidator_Valid(t *testing.T) {
	v := New()

	err := v.Validate(&signupInput{Username: "reader1", Password: "longenough"})
	assert.NoError(t, err)
}

func TestValidator_MissingFields(t *testing.T) {
	v := New()

	err := v.Validate(&signupInput{})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	// Field names come from JSON tags, messages are human readable.
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["username"])
	assert.Equal(t, "is required", details["password"])
}

func TestValidator_TooShort(t *testing.T) {
	v := New()

	err := v.Validate(&signupInput{Username: "ab", Password: "short"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be at least 3 characters", details["username"])
	assert.Equal(t, "must be at least 8 characters", details["password"])
}
