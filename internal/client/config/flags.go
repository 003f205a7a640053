package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/flagx"
)

// applyFlags reads the flags this package owns from args:
//
//	-a string   backend address
//	-i int      online check interval in seconds
//	-d string   database path
//	-l string   log level
//	-b string   bridge listen address
func applyFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-d", "-l", "-b"})

	fs := flag.NewFlagSet("studio", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BackendAddr, "a", cfg.BackendAddr, "backend address")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.BridgeAddr, "b", cfg.BridgeAddr, "bridge listen address")

	if err := fs.Parse(args); err != nil {
		return err
	}

	seen := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			seen = true
		}
	})
	if seen {
		cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
	}
	return nil
}
