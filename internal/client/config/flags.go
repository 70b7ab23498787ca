package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/healthplanner/internal/client/credentials"
	"github.com/dmitrijs2005/healthplanner/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only the flags listed in doc.go are considered; os.Args is filtered with
// flagx.FilterArgs so other layers' flags (-c, -e) do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBase, "a", cfg.APIBase, "API base URL")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	store := fs.String("s", string(cfg.CredentialStore), "credential store (sqlite|keyring)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.Debug, "v", cfg.Debug, "debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only flags actually given override earlier layers
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s":
			cfg.CredentialStore = credentials.Kind(*store)
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
