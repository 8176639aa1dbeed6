package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/mriscan/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   inference endpoint URL
//	-i int      online check interval in seconds
//	-t int      request timeout in seconds
//	-d string   profile database path
//	-o string   export directory
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config and other
// components' flags do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-t", "-d", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.InferenceURL, "a", cfg.InferenceURL, "inference endpoint URL")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "inference request timeout (in seconds)")
	fs.StringVar(&cfg.ProfilePath, "d", cfg.ProfilePath, "profile database path")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "report export directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// durations are whole seconds on the command line; only touch them when
	// given so finer values from env or file survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
}
