package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the local state database
//	-i int      reconcile interval, seconds
//	-s string   session token HMAC secret
//	-t int      session token validity, hours
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers and converted to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-i", "-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabasePath, "d", config.DatabasePath, "path to state database")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session token secret")

	reconcileInterval := fs.Int("i", int(config.ReconcileInterval.Seconds()), "reconcile interval (in seconds)")
	sessionTokenValidity := fs.Int("t", int(config.SessionTokenValidityDuration.Hours()), "session token validity (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ReconcileInterval = time.Duration(*reconcileInterval) * time.Second
	config.SessionTokenValidityDuration = time.Duration(*sessionTokenValidity) * time.Hour
}
