package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigErrorMessages(t *testing.T) {
	assert.Equal(t, "config error: SHOP2_URL: is required", MissingField("SHOP2_URL").Error())
	assert.Equal(t, `config error: weighting: unknown policy "x"`, NewConfigError("weighting", "unknown policy %q", "x").Error())
	assert.Equal(t, "config error: bad", (&ConfigError{Message: "bad"}).Error())

	cause := errors.New("boom")
	err := &ConfigError{Field: "env_file", Err: cause}
	assert.Equal(t, "config error: env_file: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestClassification(t *testing.T) {
	cfg := fmt.Errorf("task t1: %w", MissingField("correct_answer.answers"))
	unsupported := fmt.Errorf("route: %w", &UnsupportedTypeError{Type: "wishlist"})
	other := errors.New("page fetch failed")

	assert.True(t, IsConfigError(cfg))
	assert.False(t, IsConfigError(unsupported))
	assert.True(t, IsUnsupportedType(unsupported))
	assert.Equal(t, `unsupported checkpoint type "wishlist"`, (&UnsupportedTypeError{Type: "wishlist"}).Error())

	assert.True(t, IsFatal(cfg))
	assert.True(t, IsFatal(unsupported))
	assert.False(t, IsFatal(other))
	assert.False(t, IsFatal(nil))
}
