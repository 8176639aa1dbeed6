package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dmitrijs2005/mriscan/internal/flagx"
	"github.com/dmitrijs2005/mriscan/internal/timex"
)

// FileConfig is a DTO used exclusively for file decoding. Pointer-free zero
// values mean "not set" and leave the current Config value untouched.
type FileConfig struct {
	InferenceURL        string         `json:"inference_url" toml:"inference_url"`
	RequestTimeout      timex.Duration `json:"request_timeout" toml:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" toml:"online_check_interval"`
	ProfilePath         string         `json:"profile_path" toml:"profile_path"`
	ExportDir           string         `json:"export_dir" toml:"export_dir"`
	MaxUploadSize       int64          `json:"max_upload_size" toml:"max_upload_size"`
	LogLevel            string         `json:"log_level" toml:"log_level"`
}

// parseFile overlays Config with values loaded from the file named by -c or
// -config. Files with a .toml extension are decoded as TOML, anything else as
// JSON. Read or decode errors panic (caller should recover if desired).
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &fc); err != nil {
			panic(err)
		}
	} else {
		if err := json.Unmarshal(data, &fc); err != nil {
			panic(err)
		}
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.InferenceURL != "" {
		cfg.InferenceURL = fc.InferenceURL
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.ProfilePath != "" {
		cfg.ProfilePath = fc.ProfilePath
	}
	if fc.ExportDir != "" {
		cfg.ExportDir = fc.ExportDir
	}
	if fc.MaxUploadSize > 0 {
		cfg.MaxUploadSize = fc.MaxUploadSize
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
