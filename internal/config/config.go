// Package config loads the console's HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/adminportal/pkg/adminapi"
	"github.com/hashicorp-forge/adminportal/pkg/apicall/autoretry"
	"github.com/hashicorp-forge/adminportal/pkg/auth"
	"github.com/hashicorp-forge/adminportal/pkg/database"
	"github.com/hashicorp-forge/adminportal/pkg/notifications/backends"
)

// EnvConfigPath names the environment variable holding the default config
// file path.
const EnvConfigPath = "ADMINPORTAL_CONFIG"

// DefaultPath is used when neither -config nor ADMINPORTAL_CONFIG is set.
const DefaultPath = "adminportal.hcl"

// ErrNotFound is returned by Load when the file does not exist.
var ErrNotFound = errors.New("configuration file not found")

// Config is the root of the configuration file.
type Config struct {
	// Organization is the default organization for the org shell.
	Organization string `hcl:"organization,optional"`

	// LogLevel is one of trace, debug, info, warn, error. Default: warn
	LogLevel string `hcl:"log_level,optional"`

	API           *API             `hcl:"api,block"`
	Keycloak      *auth.Config     `hcl:"keycloak,block"`
	Notifications *backends.Config `hcl:"notifications,block"`
	Database      *database.Config `hcl:"database,block"`
	Output        *Output          `hcl:"output,block"`
	Retry         *Retry           `hcl:"retry,block"`
}

// API is the api block. Durations are strings such as "30s".
type API struct {
	BaseURL   string `hcl:"base_url"`
	PortalURL string `hcl:"portal_url,optional"`
	Timeout   string `hcl:"timeout,optional"`
	TLSVerify *bool  `hcl:"tls_verify,optional"`
}

// Output is the output block.
type Output struct {
	// Format is table, json or yaml. Default: table
	Format string `hcl:"format,optional"`
	Color  *bool  `hcl:"color,optional"`
}

// Retry is the retry block used for unattended runs.
type Retry struct {
	AutoRetries     int    `hcl:"auto_retries,optional"`
	InitialInterval string `hcl:"initial_interval,optional"`
	MaxInterval     string `hcl:"max_interval,optional"`
}

// Default returns a configuration with every optional block populated.
func Default() *Config {
	return &Config{
		LogLevel:      "warn",
		Keycloak:      &auth.Config{},
		Notifications: backends.DefaultConfig(),
		Database:      &database.Config{Driver: database.DriverSQLite},
		Output:        &Output{Format: "table"},
		Retry:         &Retry{},
	}
}

// ResolvePath returns flagPath, then $ADMINPORTAL_CONFIG, then DefaultPath.
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads and decodes the file at path from fs, then applies defaults.
func Load(fs afero.Fs, path string) (*Config, error) {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("error reading configuration file: %w", err)
	}
	return Parse(path, src)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(filename string, src []byte) (*Config, error) {
	cfg := &Config{}
	evalCtx := &hcl.EvalContext{Functions: Functions()}
	if err := hclsimple.Decode(filename, src, evalCtx, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Keycloak == nil {
		c.Keycloak = d.Keycloak
	}
	if c.Notifications == nil {
		c.Notifications = d.Notifications
	}
	if c.Database == nil {
		c.Database = d.Database
	}
	if c.Output == nil {
		c.Output = d.Output
	}
	if c.Output.Format == "" {
		c.Output.Format = d.Output.Format
	}
	if c.Retry == nil {
		c.Retry = d.Retry
	}
}

// Validate checks the whole file and reports every problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.API == nil {
		result = multierror.Append(result, errors.New("api block is required"))
	} else if _, err := c.APIConfig(); err != nil {
		result = multierror.Append(result, err)
	}

	if c.Keycloak != nil {
		if err := c.Keycloak.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("keycloak: %w", err))
		}
	}

	if c.Output != nil {
		switch c.Output.Format {
		case "", "table", "json", "yaml":
		default:
			result = multierror.Append(result, fmt.Errorf("output: unsupported format %q", c.Output.Format))
		}
	}

	if _, err := c.RetryConfig(); err != nil {
		result = multierror.Append(result, err)
	}

	switch c.LogLevel {
	case "", "trace", "debug", "info", "warn", "error", "off":
	default:
		result = multierror.Append(result, fmt.Errorf("unsupported log_level %q", c.LogLevel))
	}

	return result.ErrorOrNil()
}

// APIConfig converts the api block into a client configuration.
func (c *Config) APIConfig() (*adminapi.Config, error) {
	if c.API == nil {
		return nil, errors.New("api block is required")
	}

	out := &adminapi.Config{
		BaseURL:   c.API.BaseURL,
		PortalURL: c.API.PortalURL,
		TLSVerify: c.API.TLSVerify,
	}
	if c.API.Timeout != "" {
		d, err := time.ParseDuration(c.API.Timeout)
		if err != nil {
			return nil, fmt.Errorf("api: invalid timeout: %w", err)
		}
		out.Timeout = d
	}
	out.ApplyDefaults()
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	return out, nil
}

// RetryConfig converts the retry block.
func (c *Config) RetryConfig() (autoretry.Config, error) {
	var out autoretry.Config
	if c.Retry == nil {
		return out, nil
	}
	if c.Retry.AutoRetries < 0 {
		return out, fmt.Errorf("retry: auto_retries must be non-negative, got: %d", c.Retry.AutoRetries)
	}
	out.MaxRetries = c.Retry.AutoRetries

	var err error
	if c.Retry.InitialInterval != "" {
		if out.InitialInterval, err = time.ParseDuration(c.Retry.InitialInterval); err != nil {
			return out, fmt.Errorf("retry: invalid initial_interval: %w", err)
		}
	}
	if c.Retry.MaxInterval != "" {
		if out.MaxInterval, err = time.ParseDuration(c.Retry.MaxInterval); err != nil {
			return out, fmt.Errorf("retry: invalid max_interval: %w", err)
		}
	}
	return out, nil
}

// UseColor reports whether terminal output should be coloured.
func (c *Config) UseColor() bool {
	if c.Output == nil || c.Output.Color == nil {
		return os.Getenv("NO_COLOR") == ""
	}
	return *c.Output.Color
}
