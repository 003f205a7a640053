package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-l string   log level
//	-f string   log format (text or json)
//
// Only these flags are picked out of args, so other layers can share the
// command line.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-l", "-f"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	validity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.AccessTokenValidityDuration = time.Duration(*validity) * time.Minute
	return nil
}
