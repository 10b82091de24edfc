package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development", "test"} {
		t.Run(env, func(t *testing.T) {
			logger := NewLogger(env)
			assert.NotNil(t, logger)
			logger.Info("hello")
		})
	}
}
