package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "MRISCAN_"

// parseEnv overlays Config with MRISCAN_* environment variables. A .env file
// in the working directory is loaded first when present; variables already
// set in the process environment win over it. Malformed values panic, like
// the other startup sources.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := lookup("INFERENCE_URL"); ok {
		cfg.InferenceURL = v
	}
	if v, ok := lookup("REQUEST_TIMEOUT"); ok {
		cfg.RequestTimeout = mustDuration(v)
	}
	if v, ok := lookup("ONLINE_CHECK_INTERVAL"); ok {
		cfg.OnlineCheckInterval = mustDuration(v)
	}
	if v, ok := lookup("PROFILE"); ok {
		cfg.ProfilePath = v
	}
	if v, ok := lookup("EXPORT_DIR"); ok {
		cfg.ExportDir = v
	}
	if v, ok := lookup("MAX_UPLOAD_SIZE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			panic(err)
		}
		cfg.MaxUploadSize = n
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func mustDuration(v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	return d
}
