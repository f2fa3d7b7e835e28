package base

import (
	"os"

	"github.com/mattn/go-isatty"
)

func isInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
