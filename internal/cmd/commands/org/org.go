package org

import (
	"errors"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/adminportal/internal/cmd/base"
	"github.com/hashicorp-forge/adminportal/internal/pages"
	"github.com/hashicorp-forge/adminportal/pkg/auth"
	"github.com/hashicorp-forge/adminportal/pkg/models"
)

// Actions supported by the org command.
var Actions = []string{"show", "users", "add-user", "remove-user", "roles", "assign-roles"}

var errNoOrganization = errors.New(
	"no organization selected: pass -org, set organization in the configuration file, or sign in as an organization admin")

// Command is the organization admin shell.
type Command struct {
	*base.Command

	action string

	flags base.ClientFlags
	orgID string
	set   pages.Fields
	file  string
	roles base.StringSlice
}

func New(b *base.Command, action string) *Command {
	return &Command{Command: b, action: action}
}

func (c *Command) Synopsis() string {
	switch c.action {
	case "show":
		return "Show the organization"
	case "users":
		return "List the organization's users"
	case "add-user":
		return "Add a user to the organization"
	case "remove-user":
		return "Remove a user from the organization"
	case "roles":
		return "List the roles available in the organization"
	case "assign-roles":
		return "Replace the roles of an organization user"
	}
	return ""
}

func (c *Command) Help() string {
	var usage string
	switch c.action {
	case "add-user":
		usage = `Usage: adminportal org add-user [options]

  Add a user to the organization from -set key=value pairs, a -file, or
  both.`
	case "remove-user":
		usage = `Usage: adminportal org remove-user [options] USER_ID

  Remove a user from the organization. Asks for confirmation unless -yes
  is given.`
	case "assign-roles":
		usage = `Usage: adminportal org assign-roles -role=ID[,ID...] [options] USER_ID

  Replace the roles of an organization user.`
	default:
		usage = fmt.Sprintf(`Usage: adminportal org %s [options]

  %s.`, c.action, c.Synopsis())
	}
	return usage + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("org "+c.action, flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	f.StringVar(&c.orgID, "org", "",
		"Organization ID. Defaults to the configured organization, then the one in the access token.")

	switch c.action {
	case "add-user":
		c.set = pages.Fields{}
		f.Var(c.set, "set", "User field as key=value. Repeatable.")
		f.StringVar(&c.file, "file", "", "JSON or YAML file with user fields.")
	case "assign-roles":
		c.roles = nil
		f.Var(&c.roles, "role", "Role ID. Repeatable or comma-separated.")
	}
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	var userID string
	switch c.action {
	case "remove-user", "assign-roles":
		if f.NArg() != 1 {
			c.UI.Error("expected exactly one user ID")
			return 1
		}
		userID = f.Arg(0)
	default:
		if f.NArg() != 0 {
			c.UI.Error(fmt.Sprintf("unexpected arguments: %v", f.Args()))
			return 1
		}
	}
	if c.action == "assign-roles" && len(c.roles) == 0 {
		c.UI.Error("-role is required")
		return 1
	}

	ctx, cancel := base.Context()
	defer cancel()

	s, err := c.NewSession(ctx, &c.flags)
	if err != nil {
		return c.Exit(err)
	}
	defer s.Close()

	if err := s.RequireShell(auth.ShellOrganization); err != nil {
		return c.Exit(err)
	}

	orgID := c.orgID
	if orgID == "" {
		orgID = s.Config.Organization
	}
	if orgID == "" && s.Claims != nil {
		orgID = s.Claims.OrganizationID
	}
	if orgID == "" {
		return c.Exit(errNoOrganization)
	}
	c.Log.Debug("using organization", "id", orgID)

	page := pages.NewOrgPage(s.Env, s.Client.Org(orgID))
	switch c.action {
	case "show":
		return c.Exit(page.Show(ctx))
	case "users":
		return c.Exit(page.Users(ctx))
	case "add-user":
		var user models.User
		if c.file != "" {
			if err := pages.ReadInput(c.Fs, c.file, &user); err != nil {
				return c.Exit(err)
			}
		}
		if err := c.set.Apply(&user); err != nil {
			return c.Exit(err)
		}
		return c.Exit(page.AddUser(ctx, user))
	case "remove-user":
		return c.Exit(page.RemoveUser(ctx, userID))
	case "roles":
		return c.Exit(page.Roles(ctx))
	case "assign-roles":
		return c.Exit(page.AssignRoles(ctx, userID, c.roles))
	}
	return 1
}
