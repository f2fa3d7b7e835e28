package base

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp-forge/adminportal/internal/pages"
)

// Exit maps a command result to an exit code, printing err unless a page
// has already shown it.
func (c *Command) Exit(err error) int {
	if err == nil {
		return 0
	}
	var rep *pages.ReportedError
	if !errors.As(err, &rep) {
		c.UI.Error(err.Error())
	}
	return 1
}

// Context returns a context cancelled on interrupt.
func Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
