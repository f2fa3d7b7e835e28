package permissions

import (
	"flag"
	"fmt"

	"github.com/hashicorp-forge/adminportal/internal/cmd/base"
	"github.com/hashicorp-forge/adminportal/internal/pages"
	"github.com/hashicorp-forge/adminportal/pkg/auth"
)

// Actions supported by the permissions command.
var Actions = []string{"list", "grant", "revoke", "set"}

// Command manages the capabilities granted to roles.
type Command struct {
	*base.Command

	action string

	flags  base.ClientFlags
	roleID string
}

func New(b *base.Command, action string) *Command {
	return &Command{Command: b, action: action}
}

func (c *Command) Synopsis() string {
	switch c.action {
	case "list":
		return "Show which capabilities each role holds"
	case "grant":
		return "Grant capabilities to a role"
	case "revoke":
		return "Revoke capabilities from a role"
	case "set":
		return "Replace the capabilities of a role"
	}
	return ""
}

func (c *Command) Help() string {
	var usage string
	switch c.action {
	case "list":
		usage = `Usage: adminportal permissions list [options]

  Show the capabilities granted to one role, or to every role when -role
  is not given.`
	case "grant", "revoke":
		usage = fmt.Sprintf(`Usage: adminportal permissions %s -role=ID [options] CAPABILITY_ID...

  %s. Each capability is changed with its own request; the
  command stops at the first one that fails.`, c.action, c.Synopsis())
	case "set":
		usage = `Usage: adminportal permissions set -role=ID [options] [CAPABILITY_ID...]

  Replace the capabilities of a role with exactly the ones given. With no
  capabilities the role loses all of them.`
	}
	return usage + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("permissions "+c.action, flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	f.StringVar(&c.roleID, "role", "", "Role ID.")
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.action != "list" && c.roleID == "" {
		c.UI.Error("-role is required")
		return 1
	}
	if (c.action == "grant" || c.action == "revoke") && f.NArg() == 0 {
		c.UI.Error("expected at least one capability ID")
		return 1
	}
	if c.action == "list" && f.NArg() != 0 {
		c.UI.Error(fmt.Sprintf("unexpected arguments: %v", f.Args()))
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

	page := pages.NewPermissionsPage(s.Env, s.Client)
	switch c.action {
	case "list":
		return c.Exit(page.List(ctx, c.roleID))
	case "grant":
		return c.Exit(page.Grant(ctx, c.roleID, f.Args()...))
	case "revoke":
		return c.Exit(page.Revoke(ctx, c.roleID, f.Args()...))
	case "set":
		return c.Exit(page.Set(ctx, c.roleID, f.Args()))
	}
	return 1
}
