package group

import (
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/adminportal/internal/cmd/base"
)

// Command is a parent command that only prints help for its subcommands.
type Command struct {
	*base.Command

	Name        string
	Description string
	Details     string
}

func (c *Command) Synopsis() string {
	return c.Description
}

func (c *Command) Help() string {
	help := fmt.Sprintf(`Usage: adminportal %s <subcommand> [options] [args]

  %s`, c.Name, c.Description)
	if c.Details != "" {
		help += "\n\n  " + c.Details
	}
	return help
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
