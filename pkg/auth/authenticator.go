package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenError is returned by the authenticating transport when no access
// token could be obtained. Rejected is true when the identity provider
// answered and refused the credentials.
type TokenError struct {
	Rejected bool
	Err      error
}

func (e *TokenError) Error() string {
	if e.Rejected {
		return fmt.Sprintf("authentication rejected: %v", e.Err)
	}
	return fmt.Sprintf("unable to obtain access token: %v", e.Err)
}

func (e *TokenError) Unwrap() error { return e.Err }

func newTokenError(err error) *TokenError {
	var retrieveErr *oauth2.RetrieveError
	return &TokenError{Rejected: errors.As(err, &retrieveErr), Err: err}
}

// Authenticator supplies access tokens for admin API requests.
type Authenticator struct {
	mode   Mode
	source oauth2.TokenSource
	log    hclog.Logger
}

// New builds an Authenticator for cfg. base is used for every call to the
// identity provider. For the password grant the first token is fetched
// eagerly so bad credentials surface at startup.
func New(ctx context.Context, cfg *Config, base *http.Client, log hclog.Logger) (*Authenticator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid keycloak config: %w", err)
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if base == nil {
		base = http.DefaultClient
	}

	a := &Authenticator{mode: cfg.Mode(), log: log}

	if a.mode == ModeStatic {
		a.source = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
		return a, nil
	}

	ctx = oidc.ClientContext(ctx, base)
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("error discovering identity provider %s: %w", cfg.IssuerURL, err)
	}
	endpoint := provider.Endpoint()

	switch a.mode {
	case ModePassword:
		oc := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			Scopes:       cfg.scopes(),
		}
		tok, err := oc.PasswordCredentialsToken(ctx, cfg.Username, cfg.Password)
		if err != nil {
			return nil, newTokenError(err)
		}
		a.source = oc.TokenSource(ctx, tok)

	case ModeClientCredentials:
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     endpoint.TokenURL,
			Scopes:       cfg.scopes(),
		}
		a.source = oauth2.ReuseTokenSource(nil, cc.TokenSource(ctx))
	}

	log.Debug("authenticator ready", "mode", a.mode, "issuer", cfg.IssuerURL)
	return a, nil
}

// Mode returns the grant in use.
func (a *Authenticator) Mode() Mode {
	return a.mode
}

// Token returns a valid access token, refreshing it if needed.
func (a *Authenticator) Token() (*oauth2.Token, error) {
	tok, err := a.source.Token()
	if err != nil {
		return nil, newTokenError(err)
	}
	return tok, nil
}

// Claims returns the claims of the current access token.
func (a *Authenticator) Claims() (*Claims, error) {
	tok, err := a.Token()
	if err != nil {
		return nil, err
	}
	return ParseClaims(tok.AccessToken)
}

// Transport wraps base so that every request carries the bearer token.
func (a *Authenticator) Transport(base http.RoundTripper) http.RoundTripper {
	return &transport{
		auth: a,
		next: &oauth2.Transport{Source: a.source, Base: base},
	}
}

type transport struct {
	auth *Authenticator
	next *oauth2.Transport
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// The source caches, so this only hits the identity provider on expiry.
	if _, err := t.auth.Token(); err != nil {
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, err
	}
	return t.next.RoundTrip(req)
}
