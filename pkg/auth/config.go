package auth

import (
	"fmt"
	"net/url"
)

// Mode is how the console obtains access tokens.
type Mode string

const (
	// ModeStatic uses a pre-issued token as-is.
	ModeStatic Mode = "static"
	// ModePassword uses the resource owner password grant.
	ModePassword Mode = "password"
	// ModeClientCredentials uses a confidential client's own identity.
	ModeClientCredentials Mode = "client_credentials"
)

// Config is the keycloak block.
//
//	keycloak {
//	  issuer_url    = "https://sso.example.com/realms/platform"
//	  client_id     = "admin-console"
//	  client_secret = env("ADMINPORTAL_CLIENT_SECRET")
//	  username      = "alice"
//	  password      = env("ADMINPORTAL_PASSWORD")
//	}
type Config struct {
	IssuerURL    string   `hcl:"issuer_url,optional"`
	ClientID     string   `hcl:"client_id,optional"`
	ClientSecret string   `hcl:"client_secret,optional"`
	Username     string   `hcl:"username,optional"`
	Password     string   `hcl:"password,optional"`
	Scopes       []string `hcl:"scopes,optional"`

	// Token skips Keycloak entirely.
	Token string `hcl:"token,optional"`
}

// Mode reports which grant the configuration selects.
func (c *Config) Mode() Mode {
	switch {
	case c.Token != "":
		return ModeStatic
	case c.Username != "":
		return ModePassword
	default:
		return ModeClientCredentials
	}
}

// Validate checks the fields required by the selected mode.
func (c *Config) Validate() error {
	if c.Mode() == ModeStatic {
		return nil
	}

	if c.IssuerURL == "" {
		return fmt.Errorf("issuer_url is required unless token is set")
	}
	u, err := url.Parse(c.IssuerURL)
	if err != nil {
		return fmt.Errorf("invalid issuer_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("issuer_url must use http or https scheme, got: %s", u.Scheme)
	}

	if c.ClientID == "" {
		return fmt.Errorf("client_id is required")
	}

	switch c.Mode() {
	case ModePassword:
		if c.Password == "" {
			return fmt.Errorf("password is required when username is set")
		}
	case ModeClientCredentials:
		if c.ClientSecret == "" {
			return fmt.Errorf("client_secret is required for the client credentials grant")
		}
	}
	return nil
}

func (c *Config) scopes() []string {
	if len(c.Scopes) > 0 {
		return c.Scopes
	}
	return []string{"openid", "profile", "email"}
}
