package open

import (
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp-forge/adminportal/internal/cmd/base"
)

// Sections are the portal pages that can be opened directly.
var Sections = []string{
	"tenants",
	"users",
	"roles",
	"organizations",
	"organization-types",
	"capabilities",
	"payment-methods",
	"permissions",
	"org",
}

type Command struct {
	*base.Command

	configPath string
	print      bool
}

func (c *Command) Synopsis() string {
	return "Open the web admin portal in a browser"
}

func (c *Command) Help() string {
	return fmt.Sprintf(`Usage: adminportal open [options] [SECTION]

  Open the web admin portal, or one of its sections, in the default
  browser. Sections: %s.`, strings.Join(Sections, ", ")) + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("open", flag.ContinueOnError))
	base.AddConfigFlag(f, &c.configPath)
	f.BoolVar(&c.print, "print", false, "Print the URL instead of opening it.")
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() > 1 {
		c.UI.Error("expected at most one section")
		return 1
	}

	cfg, err := c.LoadConfig(c.configPath)
	if err != nil {
		return c.Exit(err)
	}
	apiCfg, err := cfg.APIConfig()
	if err != nil {
		return c.Exit(err)
	}

	url := strings.TrimRight(apiCfg.PortalURL, "/")
	if section := f.Arg(0); section != "" {
		if !slices.Contains(Sections, section) {
			c.UI.Error(fmt.Sprintf("unknown section %q; expected one of: %s",
				section, strings.Join(Sections, ", ")))
			return 1
		}
		url += "/" + section
	}

	if c.print {
		c.UI.Output(url)
		return 0
	}

	c.UI.Info(fmt.Sprintf("Opening %s", url))
	if err := c.OpenURL(url); err != nil {
		return c.Exit(fmt.Errorf("error opening browser: %w", err))
	}
	return 0
}
