package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Run("overlays set variables", func(t *testing.T) {
		t.Setenv("MRISCAN_INFERENCE_URL", "http://env/predict")
		t.Setenv("MRISCAN_REQUEST_TIMEOUT", "15s")
		t.Setenv("MRISCAN_PROFILE", "env.db")
		t.Setenv("MRISCAN_MAX_UPLOAD_SIZE", "2048")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "http://env/predict", cfg.InferenceURL)
		assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "env.db", cfg.ProfilePath)
		assert.Equal(t, int64(2048), cfg.MaxUploadSize)
		assert.Equal(t, "reports", cfg.ExportDir)
	})

	t.Run("empty variable is ignored", func(t *testing.T) {
		t.Setenv("MRISCAN_EXPORT_DIR", "")

		cfg := &Config{ExportDir: "keep"}
		parseEnv(cfg)

		assert.Equal(t, "keep", cfg.ExportDir)
	})

	t.Run("bad duration panics", func(t *testing.T) {
		t.Setenv("MRISCAN_REQUEST_TIMEOUT", "soon")

		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
