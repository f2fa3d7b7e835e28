package status

import (
	"flag"
	"fmt"

	"github.com/hashicorp-forge/adminportal/internal/cmd/base"
	"github.com/hashicorp-forge/adminportal/internal/pages"
	"github.com/hashicorp-forge/adminportal/pkg/auth"
)

type Command struct {
	*base.Command

	flags base.ClientFlags
}

func (c *Command) Synopsis() string {
	return "Show how many records each admin collection holds"
}

func (c *Command) Help() string {
	return `Usage: adminportal status [options]

  Count the records in every admin collection. Collections that cannot be
  read are reported inline and the command exits non-zero.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("status", flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	ctx, cancel := base.Context()
	defer cancel()

	s, err := c.NewSession(ctx, &c.flags)
	if err != nil {
		return c.Exit(err)
	}
	defer s.Close()

	if err := s.RequireShell(auth.ShellPlatform); err != nil {
		return c.Exit(err)
	}
	return c.Exit(pages.Status(ctx, s.Env, s.Client))
}
