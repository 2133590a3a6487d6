package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest-api/internal/config"
)

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	for _, level := range []string{"debug", "info", "warn", "error", "WARN", "", "nonsense"} {
		log, err := Setup(config.ServerConfig{LogLevel: level})
		require.NoError(t, err, "level=%q", level)
		require.NotNil(t, log, "level=%q", level)

		// Setup installs the logger as the process default.
		assert.Same(t, log, slog.Default(), "level=%q", level)
	}
}
