package backends

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp-forge/adminportal/pkg/notifications"
)

// NtfyBackend sends push notifications via ntfy.sh
type NtfyBackend struct {
	levels
	serverURL string
	topic     string
	client    *http.Client
}

// NtfyBackendConfig holds configuration for the ntfy backend
type NtfyBackendConfig struct {
	// ServerURL is the ntfy server URL (e.g., "https://ntfy.sh")
	ServerURL string

	// Topic is the ntfy topic to send notifications to
	Topic string

	// Timeout for HTTP requests (optional, defaults to 10s)
	Timeout time.Duration

	// Levels limits which notifications are pushed (default: all)
	Levels []string
}

// NewNtfyBackend creates a new ntfy backend
func NewNtfyBackend(cfg NtfyBackendConfig) *NtfyBackend {
	if cfg.ServerURL == "" {
		cfg.ServerURL = "https://ntfy.sh"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &NtfyBackend{
		levels:    newLevels(cfg.Levels),
		serverURL: cfg.ServerURL,
		topic:     cfg.Topic,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Name returns the backend identifier
func (b *NtfyBackend) Name() string {
	return "ntfy"
}

// Handle processes a notification
func (b *NtfyBackend) Handle(ctx context.Context, n *notifications.Notification) error {
	url := fmt.Sprintf("%s/%s", b.serverURL, b.topic)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(n.Text))
	if err != nil {
		return fmt.Errorf("failed to create ntfy request: %w", err)
	}

	title := "Admin portal"
	if n.Operation != "" {
		title = fmt.Sprintf("Admin portal: %s", n.Operation)
	}
	req.Header.Set("Title", title)

	// ntfy priorities: 1=min, 3=default, 5=max
	priority := "2"
	if n.Level == notifications.LevelError {
		priority = "4"
	}
	req.Header.Set("Priority", priority)
	req.Header.Set("Tags", string(n.Level))

	resp, err := b.client.Do(req)
	if err != nil {
		return NewBackendError("ntfy", "send", true, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewBackendError("ntfy", "send", isRetryableHTTPStatus(resp.StatusCode),
			fmt.Errorf("ntfy request failed with status %d", resp.StatusCode))
	}

	return nil
}
