package secrets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	withName := NewError("get_parameter", "API_KEY", errors.New("boom"))
	assert.Equal(t, "secrets get_parameter on parameter API_KEY: boom", withName.Error())

	withoutName := NewError("init", "", errors.New("boom"))
	assert.Equal(t, "secrets init: boom", withoutName.Error())
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := NewError("get_parameter", "API_KEY", cause)
	assert.ErrorIs(t, err, cause)
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFound(NewError("get_parameter", "API_KEY", ErrParameterNotFound)))
	assert.False(t, IsNotFound(NewError("get_parameter", "API_KEY", errors.New("boom"))))
	assert.False(t, IsNotFound(nil))
}
