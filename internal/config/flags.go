package config

import (
	"flag"
	"os"

	"github.com/padips/padips-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   base URL of the backend HTTP API
//	-w string   websocket URL of the realtime channel
//	-d string   path to the local session database
//	-q int      per-question time budget in seconds
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, so it does not interfere with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-w", "-d", "-q"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "b", cfg.BaseURL, "base URL of the backend HTTP API")
	fs.StringVar(&cfg.RealtimeURL, "w", cfg.RealtimeURL, "websocket URL of the realtime channel")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local session database")
	fs.IntVar(&cfg.SecondsPerQuestion, "q", cfg.SecondsPerQuestion, "per-question time budget (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
