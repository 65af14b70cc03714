package dto

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationTarget struct {
	Topic string `validate:"required,max=100"`
	Email string `validate:"required,email"`
	Role  string `validate:"omitempty,oneof=user admin"`
}

func validate(t *testing.T, target validationTarget) error {
	t.Helper()
	return validator.New().Struct(target)
}

func TestHandleValidationErrorRequired(t *testing.T) {
	err := validate(t, validationTarget{Email: "somchai@sut.ac.th"})
	require.Error(t, err)

	detail := HandleValidationError(err)

	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "Topic is required", detail.Message)
	assert.Equal(t, "Topic", detail.Field)
	assert.Nil(t, detail.Details)
}

func TestHandleValidationErrorMultiple(t *testing.T) {
	err := validate(t, validationTarget{Email: "not-an-email", Role: "moderator"})
	require.Error(t, err)

	detail := HandleValidationError(err)

	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "Topic is required", detail.Message)

	messages, ok := detail.Details.([]string)
	require.True(t, ok)
	assert.Contains(t, messages, "Email must be a valid email address")
	assert.Contains(t, messages, "Role must be one of: user admin")
}

func TestHandleValidationErrorNonValidatorError(t *testing.T) {
	detail := HandleValidationError(errors.New("unexpected EOF"))

	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "Validation failed", detail.Message)
	assert.Empty(t, detail.Field)
}

func TestNewErrorDetailBuilders(t *testing.T) {
	detail := NewErrorDetail(ErrorCodeInvalidRequest, "Unknown category").
		WithField("categoryId").
		WithDetails("category 99 does not exist")

	assert.Equal(t, ErrorCodeInvalidRequest, detail.Code)
	assert.Equal(t, "Unknown category", detail.Message)
	assert.Equal(t, "categoryId", detail.Field)
	assert.Equal(t, "category 99 does not exist", detail.Details)
}
