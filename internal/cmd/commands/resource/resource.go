package resource

import (
	"flag"
	"fmt"
	"net/url"
	"strings"

	"github.com/hashicorp-forge/adminportal/internal/cmd/base"
	"github.com/hashicorp-forge/adminportal/internal/pages"
	"github.com/hashicorp-forge/adminportal/pkg/adminapi"
	"github.com/hashicorp-forge/adminportal/pkg/auth"
	"github.com/hashicorp-forge/adminportal/pkg/models"
)

// Actions supported for every collection.
var Actions = []string{"list", "get", "create", "update", "delete"}

// Kind describes one admin collection.
type Kind[T models.Validatable] struct {
	Name     string // "organization-types"
	Singular string // "organization type"
	Resource func(*adminapi.Client) *adminapi.Resource[T]
}

// Command runs one action against one collection, e.g. "tenants list".
type Command[T models.Validatable] struct {
	*base.Command

	kind   Kind[T]
	action string

	flags   base.ClientFlags
	set     pages.Fields
	filters pages.Fields
	file    string
}

func New[T models.Validatable](b *base.Command, kind Kind[T], action string) *Command[T] {
	return &Command[T]{Command: b, kind: kind, action: action}
}

func (c *Command[T]) Synopsis() string {
	switch c.action {
	case "list":
		return fmt.Sprintf("List %s", c.kind.display())
	case "get":
		return fmt.Sprintf("Show one %s", c.kind.Singular)
	case "create":
		return fmt.Sprintf("Create a %s", c.kind.Singular)
	case "update":
		return fmt.Sprintf("Update a %s", c.kind.Singular)
	case "delete":
		return fmt.Sprintf("Delete a %s", c.kind.Singular)
	}
	return ""
}

func (c *Command[T]) Help() string {
	var usage string
	switch c.action {
	case "list":
		usage = fmt.Sprintf(`Usage: adminportal %s list [options]

  List %s. Narrow the list with -filter, e.g. -filter=tenantId=t-123.`, c.kind.Name, c.kind.display())
	case "get":
		usage = fmt.Sprintf(`Usage: adminportal %s get [options] ID

  Show one %s.`, c.kind.Name, c.kind.Singular)
	case "create":
		usage = fmt.Sprintf(`Usage: adminportal %s create [options]

  Create a %s from -set key=value pairs, a -file, or both. Values from
  -set are applied after the file.`, c.kind.Name, c.kind.Singular)
	case "update":
		usage = fmt.Sprintf(`Usage: adminportal %s update [options] ID

  Update a %s. The current version is loaded and the fields given with
  -set or -file are changed before it is saved.`, c.kind.Name, c.kind.Singular)
	case "delete":
		usage = fmt.Sprintf(`Usage: adminportal %s delete [options] ID

  Delete a %s. Asks for confirmation unless -yes is given.`, c.kind.Name, c.kind.Singular)
	}
	return usage + c.Flags().Help()
}

func (c *Command[T]) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet(c.kind.Name+" "+c.action, flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)

	switch c.action {
	case "list":
		c.filters = pages.Fields{}
		f.Var(c.filters, "filter", "Query filter as key=value. Repeatable.")
	case "create", "update":
		c.set = pages.Fields{}
		f.Var(c.set, "set", "Field value as key=value. Repeatable.")
		f.StringVar(&c.file, "file", "", "JSON or YAML file with field values.")
	}
	return f
}

func (c *Command[T]) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	var id string
	switch c.action {
	case "get", "update", "delete":
		if f.NArg() != 1 {
			c.UI.Error(fmt.Sprintf("expected exactly one %s ID", c.kind.Singular))
			return 1
		}
		id = f.Arg(0)
	default:
		if f.NArg() != 0 {
			c.UI.Error(fmt.Sprintf("unexpected arguments: %v", f.Args()))
			return 1
		}
	}
	if c.action == "update" && len(c.set) == 0 && c.file == "" {
		c.UI.Error("nothing to update: pass -set or -file")
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

	page := pages.NewResourcePage(s.Env, c.kind.Resource(s.Client), c.kind.Name)

	switch c.action {
	case "list":
		query := url.Values{}
		for k, v := range c.filters {
			query.Set(k, v)
		}
		return c.Exit(page.List(ctx, query))

	case "get":
		return c.Exit(page.Show(ctx, id))

	case "create":
		var item T
		if err := c.fill(&item); err != nil {
			return c.Exit(err)
		}
		return c.Exit(page.Create(ctx, item))

	case "update":
		return c.Exit(page.Update(ctx, id, c.fill))

	case "delete":
		return c.Exit(page.Delete(ctx, id))
	}
	return 1
}

// fill applies -file then -set over item.
func (c *Command[T]) fill(item *T) error {
	if c.file != "" {
		if err := pages.ReadInput(c.Fs, c.file, item); err != nil {
			return err
		}
	}
	return c.set.Apply(item)
}

func (k Kind[T]) display() string {
	return strings.ReplaceAll(k.Name, "-", " ")
}
