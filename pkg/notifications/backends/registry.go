package backends

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/adminportal/pkg/notifications"
)

// Config holds backend configuration from HCL
type Config struct {
	// UI backend prints notifications to the terminal (enabled by default)
	UI *UIConfig `hcl:"ui,block"`

	// Log backend writes notifications to the structured logger
	Log *LogConfig `hcl:"log,block"`

	// Audit backend persists notifications to the audit database
	Audit *AuditConfig `hcl:"audit,block"`

	// Ntfy backend pushes notifications to an ntfy topic
	Ntfy *NtfyConfig `hcl:"ntfy,block"`

	// Kafka backend publishes notifications to a Kafka topic
	Kafka *KafkaConfig `hcl:"kafka,block"`
}

// UIConfig configures the terminal backend
type UIConfig struct {
	Enabled bool     `hcl:"enabled,optional"`
	Levels  []string `hcl:"levels,optional"`
}

// LogConfig configures the log backend
type LogConfig struct {
	Enabled bool     `hcl:"enabled,optional"`
	Levels  []string `hcl:"levels,optional"`
}

// AuditConfig configures the audit backend
type AuditConfig struct {
	Enabled bool     `hcl:"enabled,optional"`
	Levels  []string `hcl:"levels,optional"`
}

// NtfyConfig configures the ntfy backend
type NtfyConfig struct {
	Enabled bool `hcl:"enabled,optional"`

	ServerURL string   `hcl:"server_url,optional"`
	Topic     string   `hcl:"topic,optional"`
	Levels    []string `hcl:"levels,optional"`
}

// KafkaConfig configures the kafka backend
type KafkaConfig struct {
	Enabled bool `hcl:"enabled,optional"`

	Brokers []string `hcl:"brokers,optional"`
	Topic   string   `hcl:"topic,optional"`
	Levels  []string `hcl:"levels,optional"`

	// ConsumerGroup is used by the relay, not by the backend.
	ConsumerGroup string `hcl:"consumer_group,optional"`
}

// DefaultConfig enables only the terminal backend.
func DefaultConfig() *Config {
	return &Config{
		UI: &UIConfig{Enabled: true},
	}
}

// Deps are the runtime collaborators some backends need.
type Deps struct {
	UI     cli.Ui
	Logger hclog.Logger
	Audit  AuditStore
	Color  bool
}

// Registry manages available notification backends
type Registry struct {
	backends map[string]Backend
}

// NewRegistry creates a new backend registry from configuration
func NewRegistry(cfg *Config, deps Deps) (*Registry, error) {
	registry := &Registry{
		backends: make(map[string]Backend),
	}

	if cfg == nil {
		return registry, nil
	}
	logger := deps.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var result *multierror.Error

	if cfg.UI != nil && cfg.UI.Enabled {
		if deps.UI == nil {
			result = multierror.Append(result, fmt.Errorf("ui backend enabled without a terminal"))
		} else {
			registry.backends["ui"] = NewUIBackend(deps.UI, deps.Color, cfg.UI.Levels)
		}
	}

	if cfg.Log != nil && cfg.Log.Enabled {
		registry.backends["log"] = NewLogBackend(logger.Named("notifications"), cfg.Log.Levels)
	}

	if cfg.Audit != nil && cfg.Audit.Enabled {
		if deps.Audit == nil {
			result = multierror.Append(result, fmt.Errorf("audit backend enabled without a database"))
		} else {
			registry.backends["audit"] = NewAuditBackend(deps.Audit, cfg.Audit.Levels)
		}
	}

	if cfg.Ntfy != nil && cfg.Ntfy.Enabled {
		if cfg.Ntfy.Topic == "" {
			result = multierror.Append(result, fmt.Errorf("ntfy backend requires a topic"))
		} else {
			registry.backends["ntfy"] = NewNtfyBackend(NtfyBackendConfig{
				ServerURL: cfg.Ntfy.ServerURL,
				Topic:     cfg.Ntfy.Topic,
				Levels:    cfg.Ntfy.Levels,
			})
			logger.Debug("initialized ntfy backend", "server", cfg.Ntfy.ServerURL, "topic", cfg.Ntfy.Topic)
		}
	}

	if cfg.Kafka != nil && cfg.Kafka.Enabled {
		backend, err := NewKafkaBackend(KafkaBackendConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			Levels:  cfg.Kafka.Levels,
		})
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("kafka backend: %w", err))
		} else {
			registry.backends["kafka"] = backend
			logger.Debug("initialized kafka backend", "brokers", cfg.Kafka.Brokers, "topic", backend.topic)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		registry.Close()
		return nil, err
	}
	return registry, nil
}

// Register adds or replaces a backend
func (r *Registry) Register(b Backend) {
	r.backends[b.Name()] = b
}

// GetBackend returns a backend by name
func (r *Registry) GetBackend(name string) (Backend, bool) {
	backend, ok := r.backends[name]
	return backend, ok
}

// GetAll returns all registered backends sorted by name
func (r *Registry) GetAll() []Backend {
	names := r.GetBackendNames()
	backends := make([]Backend, 0, len(names))
	for _, name := range names {
		backends = append(backends, r.backends[name])
	}
	return backends
}

// Handlers returns all backends as dispatcher handlers, sorted by name
func (r *Registry) Handlers() []notifications.Handler {
	all := r.GetAll()
	handlers := make([]notifications.Handler, len(all))
	for i, b := range all {
		handlers[i] = b
	}
	return handlers
}

// GetBackendNames returns the sorted names of all registered backends
func (r *Registry) GetBackendNames() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close releases backends holding connections
func (r *Registry) Close() {
	for _, b := range r.backends {
		if c, ok := b.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
