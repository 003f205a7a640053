package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/blobstore"
	"github.com/dmitrijs2005/blueprint/internal/client/store"
)

// Config holds runtime settings for the studio CLI and the HTTP bridge.
type Config struct {
	BackendAddr         string
	OnlineCheckInterval time.Duration
	CallTimeout         time.Duration

	DatabasePath      string
	StorageQuotaPages int
	StorageReadOnly   bool

	LogLevel  string
	LogFormat string

	BridgeAddr  string
	CORSOrigins []string

	// AccessToken signs the session in at startup when set.
	AccessToken string

	Blob blobstore.Config
}

func (c *Config) LoadDefaults() {
	c.BackendAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.CallTimeout = 10 * time.Second
	c.DatabasePath = "studio.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.BridgeAddr = "127.0.0.1:8080"
	c.CORSOrigins = []string{"*"}
	c.Blob.Region = "us-east-1"
}

// Load applies defaults, the .env file, BLUEPRINT_* variables, the config
// file named by -c/-config and finally flags. Later sources win.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	_ = loadDotEnv()
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := applyFile(cfg, args); err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.BackendAddr == "" {
		errs = append(errs, errors.New("backend address is empty"))
	}
	if c.OnlineCheckInterval <= 0 {
		errs = append(errs, fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval))
	}
	if c.CallTimeout <= 0 {
		errs = append(errs, fmt.Errorf("call timeout must be positive, got %s", c.CallTimeout))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database path is empty"))
	}
	if c.StorageQuotaPages < 0 {
		errs = append(errs, errors.New("storage quota cannot be negative"))
	}
	return errors.Join(errs...)
}

// StoreOptions maps the storage settings onto store.Options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{Path: c.DatabasePath, QuotaPages: c.StorageQuotaPages, ReadOnly: c.StorageReadOnly}
}
