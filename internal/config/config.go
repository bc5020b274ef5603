// Package config loads and validates orgboard configuration.
//
// Configuration is layered: built-in defaults from New, then the YAML file under the
// orgboard home directory, then an optional overlay given with --config (shallow merge
// by top-level section), then environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/orgboard/internal/listing"
	"github.com/rshade/orgboard/internal/orgs"
)

// Environment variables recognised by Load.
const (
	EnvHome      = "ORGBOARD_HOME"
	EnvEndpoint  = "ORGBOARD_ENDPOINT"
	EnvLogLevel  = "ORGBOARD_LOG_LEVEL"
	EnvLogFormat = "ORGBOARD_LOG_FORMAT"
)

// Store backends served by the reference server.
const (
	StoreFixture = "fixture"
	StoreArango  = "arango"
)

// configFileName is the name of the config file inside the orgboard home directory.
const configFileName = "config.yaml"

// Defaults.
const (
	DefaultEndpoint = "http://localhost:4000/graphql"
	DefaultAppURL   = "https://mainnet.aragon.org/"
	DefaultAddr     = ":4000"
	DefaultPageSize = 10
	DefaultTimeout  = 30 * time.Second
	DefaultRetries  = 3
	DefaultCacheTTL = 30 * time.Second
	maxPageSize     = 100
)

// Config is the complete orgboard configuration.
type Config struct {
	Client  ClientConfig  `yaml:"client"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`

	configPath string
}

// ClientConfig configures the dashboard and its GraphQL client.
type ClientConfig struct {
	Endpoint   string        `yaml:"endpoint"`
	Timeout    time.Duration `yaml:"timeout"`
	Retries    int           `yaml:"retries"`
	AppURL     string        `yaml:"app_url"`
	WebURL     string        `yaml:"web_url,omitempty"`
	Sort       string        `yaml:"sort"`
	SortPolicy string        `yaml:"sort_policy"`
}

// ServerConfig configures the reference GraphQL server.
type ServerConfig struct {
	Addr     string        `yaml:"addr"`
	Store    string        `yaml:"store"`
	Fixture  string        `yaml:"fixture,omitempty"`
	PageSize int           `yaml:"page_size"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
	Arango   ArangoConfig  `yaml:"arango"`
}

// ArangoConfig locates the organisations collection in ArangoDB.
type ArangoConfig struct {
	URL        string `yaml:"url"`
	User       string `yaml:"user"`
	Password   string `yaml:"password,omitempty"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Client: ClientConfig{
			Endpoint:   DefaultEndpoint,
			Timeout:    DefaultTimeout,
			Retries:    DefaultRetries,
			AppURL:     DefaultAppURL,
			Sort:       orgs.DefaultSort().String(),
			SortPolicy: string(listing.SortPolicyReset),
		},
		Server: ServerConfig{
			Addr:     DefaultAddr,
			Store:    StoreFixture,
			PageSize: DefaultPageSize,
			CacheTTL: DefaultCacheTTL,
			Arango: ArangoConfig{
				URL:        "http://localhost:8529",
				User:       "root",
				Database:   "orgboard",
				Collection: "organisations",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load returns defaults overlaid with the config file in the orgboard home directory,
// if present, and environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg := New()

	dir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	cfg.configPath = filepath.Join(dir, configFileName)

	if _, statErr := os.Stat(cfg.configPath); statErr == nil {
		if err = ShallowMergeYAML(cfg, cfg.configPath); err != nil {
			return nil, err
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return nil, fmt.Errorf("checking config file: %w", statErr)
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// ApplyEnv applies environment overrides using lookupEnv.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvEndpoint); ok && v != "" {
		c.Client.Endpoint = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
}

// Path returns the file the config was loaded from or will be saved to.
func (c *Config) Path() string {
	if c.configPath != "" {
		return c.configPath
	}
	dir, err := GetConfigDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(dir, configFileName)
}

// Save writes the config as YAML to its path, creating the directory as needed.
func (c *Config) Save() error {
	return c.SaveTo(c.Path())
}

// SaveTo writes the config as YAML to path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// Validate checks that every section holds usable values.
func (c *Config) Validate() error {
	var errs []error

	if err := validateHTTPURL("client.endpoint", c.Client.Endpoint); err != nil {
		errs = append(errs, err)
	}
	if err := validateHTTPURL("client.app_url", c.Client.AppURL); err != nil {
		errs = append(errs, err)
	}
	if c.Client.WebURL != "" {
		if err := validateHTTPURL("client.web_url", c.Client.WebURL); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Client.Timeout < 0 {
		errs = append(errs, fmt.Errorf("client.timeout must be >= 0, got %s", c.Client.Timeout))
	}
	if c.Client.Retries < 0 {
		errs = append(errs, fmt.Errorf("client.retries must be >= 0, got %d", c.Client.Retries))
	}
	if _, err := orgs.ParseSortSpec(c.Client.Sort); err != nil {
		errs = append(errs, fmt.Errorf("client.sort: %w", err))
	}
	if _, err := listing.ParseSortPolicy(c.Client.SortPolicy); err != nil {
		errs = append(errs, fmt.Errorf("client.sort_policy: %w", err))
	}

	switch c.Server.Store {
	case StoreFixture:
	case StoreArango:
		if c.Server.Arango.URL == "" || c.Server.Arango.Database == "" || c.Server.Arango.Collection == "" {
			errs = append(errs, errors.New("server.arango requires url, database and collection"))
		}
	default:
		errs = append(errs, fmt.Errorf("server.store must be %q or %q, got %q", StoreFixture, StoreArango, c.Server.Store))
	}
	if c.Server.PageSize <= 0 || c.Server.PageSize > maxPageSize {
		errs = append(errs, fmt.Errorf("server.page_size must be between 1 and %d, got %d", maxPageSize, c.Server.PageSize))
	}
	if c.Server.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("server.cache_ttl must be >= 0, got %s", c.Server.CacheTTL))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validateHTTPURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", field, raw)
	}
	return nil
}
