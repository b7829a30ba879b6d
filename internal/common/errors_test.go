package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsKindAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapError(ErrStorage, "failed to register user", cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, "failed to register user: disk full", err.Error())
}

func TestError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("register: %w", NewError(ErrConflict, "username already in use"))

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "username already in use", Message(err, "fallback"))
}

func TestMessage_Fallback(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("raw"), "fallback"))
	assert.Equal(t, "fallback", Message(nil, "fallback"))
}
