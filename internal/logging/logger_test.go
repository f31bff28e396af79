package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_LevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	log := NewLogger("api")
	assert.Equal(t, logrus.DebugLevel, log.Logger.GetLevel())
	assert.Equal(t, "api", log.Data["service"])
}

func TestNewLogger_DefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "not-a-level")
	log := NewLogger("api")
	assert.Equal(t, logrus.InfoLevel, log.Logger.GetLevel())
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, OrDiscard(nil))
	log := NewLogger("x")
	assert.Same(t, log, OrDiscard(log))
}
