package base

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/hashicorp-forge/adminportal/internal/config"
	"github.com/hashicorp-forge/adminportal/internal/pages"
	"github.com/hashicorp-forge/adminportal/internal/render"
	"github.com/hashicorp-forge/adminportal/pkg/adminapi"
	"github.com/hashicorp-forge/adminportal/pkg/apicall"
	"github.com/hashicorp-forge/adminportal/pkg/auth"
	"github.com/hashicorp-forge/adminportal/pkg/database"
	"github.com/hashicorp-forge/adminportal/pkg/notifications"
	"github.com/hashicorp-forge/adminportal/pkg/notifications/backends"
)

// ClientFlags are accepted by every command that talks to the admin API.
type ClientFlags struct {
	Config    string
	Format    string
	AutoRetry int
	Yes       bool
	NoInput   bool
}

// AddConfigFlag registers -config.
func AddConfigFlag(f *FlagSet, path *string) {
	f.StringVar(path, "config", "",
		fmt.Sprintf("Path to the configuration file. Defaults to $%s, then ./%s.",
			config.EnvConfigPath, config.DefaultPath))
}

// AddClientFlags registers the shared API flags.
func AddClientFlags(f *FlagSet, cf *ClientFlags) {
	AddConfigFlag(f, &cf.Config)
	f.StringVar(&cf.Format, "format", "", "Output format: table, json, or yaml. Overrides output.format.")
	f.IntVar(&cf.AutoRetry, "auto-retry", -1,
		"Retry network failures this many times with backoff instead of asking. Overrides retry.auto_retries.")
	f.BoolVar(&cf.Yes, "yes", false, "Answer yes to confirmation prompts.")
	f.BoolVar(&cf.NoInput, "no-input", false, "Never prompt; network failures are not retried unless -auto-retry is set.")
}

// LoadConfig reads and validates the configuration file.
func (c *Command) LoadConfig(path string) (*config.Config, error) {
	resolved := config.ResolvePath(path)
	cfg, err := config.Load(c.Fs, resolved)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", resolved, err)
	}
	if cfg.LogLevel != "" {
		c.Log.SetLevel(hclog.LevelFromString(cfg.LogLevel))
	}
	c.Log.Debug("loaded configuration", "path", resolved)
	return cfg, nil
}

// OpenAuditDB connects to the audit database named in cfg.
func (c *Command) OpenAuditDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Connect(*cfg.Database, c.Log.Named("database"))
	if err != nil {
		return nil, fmt.Errorf("error opening audit database: %w", err)
	}
	return db, nil
}

// Session is everything a page needs for one command run.
type Session struct {
	Config *config.Config
	Auth   *auth.Authenticator
	Client *adminapi.Client
	Env    *pages.Env

	// Claims is nil when the access token is not a readable JWT.
	Claims *auth.Claims

	registry *backends.Registry
	db       *gorm.DB
}

// Close releases notification backends and the audit database.
func (s *Session) Close() {
	if s.registry != nil {
		s.registry.Close()
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// RequireShell fails unless the signed-in user may use shell. Platform
// admins may use every shell. Unreadable tokens are let through; the admin
// API enforces roles anyway.
func (s *Session) RequireShell(shell auth.Shell) error {
	if s.Claims == nil {
		return nil
	}
	got := s.Claims.Shell()
	if got == auth.ShellPlatform || got == shell {
		return nil
	}
	switch shell {
	case auth.ShellPlatform:
		return fmt.Errorf("this command requires the %q role", auth.RolePlatformAdmin)
	default:
		return fmt.Errorf("this command requires the %q or %q role", auth.RoleOrgAdmin, auth.RolePlatformAdmin)
	}
}

// NewSession loads configuration, authenticates and wires the API client,
// the notification backends and the page environment.
func (c *Command) NewSession(ctx context.Context, cf *ClientFlags) (*Session, error) {
	cfg, err := c.LoadConfig(cf.Config)
	if err != nil {
		return nil, err
	}
	s := &Session{Config: cfg}

	apiCfg, err := cfg.APIConfig()
	if err != nil {
		return nil, err
	}
	baseTransport := apiCfg.NewTransport()

	s.Auth, err = auth.New(ctx, cfg.Keycloak, apiCfg.NewHTTPClient(baseTransport), c.Log.Named("auth"))
	if err != nil {
		return nil, err
	}
	if claims, err := s.Auth.Claims(); err == nil {
		s.Claims = claims
	} else {
		var tokErr *auth.TokenError
		if errors.As(err, &tokErr) {
			return nil, err
		}
		c.Log.Debug("access token is not a readable JWT", "error", err)
	}

	s.Client, err = adminapi.NewClient(apiCfg, apiCfg.NewHTTPClient(s.Auth.Transport(baseTransport)), c.Log.Named("api"))
	if err != nil {
		return nil, err
	}

	deps := backends.Deps{UI: c.UI, Logger: c.Log, Color: cfg.UseColor()}
	if a := cfg.Notifications.Audit; a != nil && a.Enabled {
		if s.db, err = c.OpenAuditDB(cfg); err != nil {
			return nil, err
		}
		deps.Audit = database.NewAuditStore(s.db)
	}
	s.registry, err = backends.NewRegistry(cfg.Notifications, deps)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("error configuring notifications: %w", err)
	}

	dispatcher := notifications.NewDispatcher(c.Log.Named("notifications"), s.registry.Handlers()...)
	if s.Claims != nil {
		dispatcher = dispatcher.WithActor(s.Claims.Username)
	}

	format := cf.Format
	if format == "" {
		format = cfg.Output.Format
	}
	f, err := render.ParseFormat(format)
	if err != nil {
		s.Close()
		return nil, err
	}

	retry, err := cfg.RetryConfig()
	if err != nil {
		s.Close()
		return nil, err
	}
	if cf.AutoRetry >= 0 {
		retry.MaxRetries = cf.AutoRetry
	}

	s.Env = &pages.Env{
		UI:       c.UI,
		Renderer: render.New(c.Stdout, f),
		Log:      c.Log,
		Notifier: func(operation string) apicall.Notifier {
			return dispatcher.ForOperation(operation)
		},
		AutoRetry:   retry,
		Interactive: c.Interactive && !cf.NoInput,
		AssumeYes:   cf.Yes,
	}

	c.Log.Debug("session ready",
		"api", apiCfg.BaseURL,
		"auth_mode", s.Auth.Mode(),
		"notification_backends", s.registry.GetBackendNames(),
	)
	return s, nil
}
