package audit

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"github.com/hashicorp-forge/adminportal/internal/cmd/base"
	"github.com/hashicorp-forge/adminportal/internal/render"
	"github.com/hashicorp-forge/adminportal/pkg/database"
)

// Actions supported by the audit command.
var Actions = []string{"list", "prune"}

// Command reads the local notification audit trail. It never contacts the
// admin API.
type Command struct {
	*base.Command

	action string

	configPath string
	format     string
	since      string
	before     string
	level      string
	operation  string
	actor      string
	limit      int
}

func New(b *base.Command, action string) *Command {
	return &Command{Command: b, action: action}
}

func (c *Command) Synopsis() string {
	if c.action == "prune" {
		return "Delete old notification records"
	}
	return "List recorded notifications"
}

func (c *Command) Help() string {
	var usage string
	if c.action == "prune" {
		usage = `Usage: adminportal audit prune -before=TIME [options]

  Delete notification records created before TIME. TIME accepts most
  common date formats, e.g. 2026-01-31 or "Jan 31 2026 10:00".`
	} else {
		usage = `Usage: adminportal audit list [options]

  List notifications recorded by the audit backend, newest first.`
	}
	return usage + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("audit "+c.action, flag.ContinueOnError))
	base.AddConfigFlag(f, &c.configPath)

	if c.action == "prune" {
		f.StringVar(&c.before, "before", "", "Delete records created before this time.")
		return f
	}
	f.StringVar(&c.format, "format", "", "Output format: table, json, or yaml. Overrides output.format.")
	f.StringVar(&c.since, "since", "", "Only records created at or after this time.")
	f.StringVar(&c.level, "level", "", "Only records with this level: success, error, warning or info.")
	f.StringVar(&c.operation, "operation", "", "Only records for this operation, e.g. tenants.create.")
	f.StringVar(&c.actor, "actor", "", "Only records for this user.")
	f.IntVar(&c.limit, "limit", 50, "Maximum number of records.")
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 0 {
		c.UI.Error(fmt.Sprintf("unexpected arguments: %v", f.Args()))
		return 1
	}

	cfg, err := c.LoadConfig(c.configPath)
	if err != nil {
		return c.Exit(err)
	}
	db, err := c.OpenAuditDB(cfg)
	if err != nil {
		return c.Exit(err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	store := database.NewAuditStore(db)

	ctx, cancel := base.Context()
	defer cancel()

	if c.action == "prune" {
		return c.Exit(c.prune(ctx, store))
	}

	filter := database.AuditFilter{
		Level:     c.level,
		Operation: c.operation,
		Actor:     c.actor,
		Limit:     c.limit,
	}
	if c.since != "" {
		if filter.Since, err = parseTime("since", c.since); err != nil {
			return c.Exit(err)
		}
	}

	format := c.format
	if format == "" {
		format = cfg.Output.Format
	}
	rf, err := render.ParseFormat(format)
	if err != nil {
		return c.Exit(err)
	}

	records, err := store.List(ctx, filter)
	if err != nil {
		return c.Exit(err)
	}
	if len(records) == 0 && rf == render.FormatTable {
		c.UI.Info("No notifications recorded.")
		return 0
	}
	return c.Exit(render.New(c.Stdout, rf).Render(records))
}

func (c *Command) prune(ctx context.Context, store *database.AuditStore) error {
	if c.before == "" {
		return fmt.Errorf("-before is required")
	}
	cutoff, err := parseTime("before", c.before)
	if err != nil {
		return err
	}
	n, err := store.Prune(ctx, cutoff)
	if err != nil {
		return err
	}
	c.UI.Output(fmt.Sprintf("Deleted %d notification records.", n))
	return nil
}

func parseTime(name, value string) (time.Time, error) {
	t, err := dateparse.ParseLocal(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -%s value %q: %w", name, value, err)
	}
	return t, nil
}
