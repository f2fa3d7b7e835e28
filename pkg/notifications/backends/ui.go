package backends

import (
	"context"

	"github.com/fatih/color"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/adminportal/pkg/notifications"
)

// UIBackend prints notifications to the terminal, the console equivalent of a
// toast.
type UIBackend struct {
	levels
	ui      cli.Ui
	success *color.Color
	failure *color.Color
}

// NewUIBackend creates a terminal backend. Colors are disabled when useColor
// is false.
func NewUIBackend(ui cli.Ui, useColor bool, accept []string) *UIBackend {
	success := color.New(color.FgGreen)
	failure := color.New(color.FgRed, color.Bold)
	if !useColor {
		success.DisableColor()
		failure.DisableColor()
	}
	return &UIBackend{
		levels:  newLevels(accept),
		ui:      ui,
		success: success,
		failure: failure,
	}
}

// Name returns the backend identifier
func (b *UIBackend) Name() string {
	return "ui"
}

// Handle processes a notification
func (b *UIBackend) Handle(_ context.Context, n *notifications.Notification) error {
	switch n.Level {
	case notifications.LevelError:
		b.ui.Error(b.failure.Sprint("✗ " + n.Text))
	default:
		b.ui.Output(b.success.Sprint("✓ " + n.Text))
	}
	return nil
}
