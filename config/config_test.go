package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Validate(Config{Env: "production"}), ErrMissingJWTSecret)
	assert.NoError(t, Validate(Config{Env: "production", JWTSecret: "s3cret"}))
	assert.NoError(t, Validate(Config{Env: "development"}))
}
