// Package config loads runtime configuration for the MRI scan CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, after loading an optional .env file from the
//     working directory (see parseEnv).
//  3. Optional config file selected with -c or -config. Files ending in
//     .toml are decoded as TOML, everything else as JSON (see parseFile).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   inference endpoint URL
//	-i int      online status check interval (seconds)
//	-t int      inference request timeout (seconds)
//	-d string   profile database path
//	-o string   report export directory
//	-l string   log level
//
// Environment
//
//	MRISCAN_INFERENCE_URL, MRISCAN_REQUEST_TIMEOUT ("45s"),
//	MRISCAN_ONLINE_CHECK_INTERVAL, MRISCAN_PROFILE, MRISCAN_EXPORT_DIR,
//	MRISCAN_MAX_UPLOAD_SIZE (bytes), MRISCAN_LOG_LEVEL
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "inference_url": "http://127.0.0.1:8000/predict",
//	  "request_timeout": "45s",
//	  "online_check_interval": "10s",
//	  "profile_path": "profile.db",
//	  "export_dir": "reports",
//	  "max_upload_size": 10485760,
//	  "log_level": "debug"
//	}
//
// The TOML form uses the same keys.
package config
