package adminapi

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Config contains configuration for the admin API client. It is populated
// from the api block of the console configuration:
//
//	api {
//	  base_url   = "https://admin.example.com"
//	  portal_url = "https://portal.example.com/admin"
//	  timeout    = "30s"
//	  tls_verify = true
//	}
type Config struct {
	// BaseURL is the root of the admin API, without the /api suffix.
	BaseURL string `json:"baseUrl"`

	// PortalURL is the web admin portal opened by the open command.
	// Defaults to BaseURL.
	PortalURL string `json:"portalUrl,omitempty"`

	// TLSVerify controls TLS certificate verification
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool `json:"tlsVerify,omitempty"`

	// Timeout for API requests
	// Default: 30 seconds
	Timeout time.Duration `json:"timeout,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		TLSVerify: &tlsVerify,
		Timeout:   30 * time.Second,
	}
}

// ApplyDefaults fills unset fields from DefaultConfig.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()
	if c.TLSVerify == nil {
		c.TLSVerify = defaults.TLSVerify
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.PortalURL == "" {
		c.PortalURL = c.BaseURL
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}

	if err := validateHTTPURL("base_url", c.BaseURL); err != nil {
		return err
	}
	if c.PortalURL != "" {
		if err := validateHTTPURL("portal_url", c.PortalURL); err != nil {
			return err
		}
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	return nil
}

func validateHTTPURL(field, raw string) error {
	parsedURL, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s must use http or https scheme, got: %s", field, parsedURL.Scheme)
	}
	return nil
}

// NewTransport creates the base transport used for admin API requests.
// Authentication wraps it.
func (c *Config) NewTransport() *http.Transport {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	// Configure TLS verification
	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return transport
}

// NewHTTPClient creates a configured HTTP client using rt, or the base
// transport when rt is nil.
func (c *Config) NewHTTPClient(rt http.RoundTripper) *http.Client {
	if rt == nil {
		rt = c.NewTransport()
	}
	return &http.Client{
		Timeout:   c.Timeout,
		Transport: rt,
	}
}
