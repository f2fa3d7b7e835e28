package base

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/pkg/browser"
	"github.com/spf13/afero"
)

// Command holds what every subcommand shares.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Fs is where configuration and input files are read from.
	Fs afero.Fs

	// Stdout receives rendered results; UI carries everything else.
	Stdout io.Writer

	// OpenURL opens a URL in the user's browser.
	OpenURL func(url string) error

	// Interactive reports whether prompts can be answered.
	Interactive bool
}

// NewCommand returns a Command wired to the real terminal.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log:         log,
		UI:          ui,
		Fs:          afero.NewOsFs(),
		Stdout:      os.Stdout,
		OpenURL:     browser.OpenURL,
		Interactive: isInteractive(),
	}
}
