package whoami

import (
	"flag"
	"fmt"
	"time"

	"github.com/hashicorp-forge/adminportal/internal/cmd/base"
	"github.com/hashicorp-forge/adminportal/pkg/auth"
)

type Command struct {
	*base.Command

	flags base.ClientFlags
}

type identity struct {
	Username       string     `json:"username"`
	Subject        string     `json:"subject"`
	Email          string     `json:"email,omitempty"`
	Shell          auth.Shell `json:"shell"`
	AuthMode       auth.Mode  `json:"authMode"`
	RealmRoles     []string   `json:"realmRoles"`
	OrganizationID string     `json:"organizationId,omitempty"`
	ExpiresAt      time.Time  `json:"expiresAt,omitempty"`
}

func (c *Command) Synopsis() string {
	return "Show the signed-in user and the admin shell they may use"
}

func (c *Command) Help() string {
	return `Usage: adminportal whoami [options]

  Sign in with the configured credentials and show the identity, realm
  roles and admin shell carried by the access token.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("whoami", flag.ContinueOnError))
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

	if s.Claims == nil {
		c.UI.Warn("The access token is not a JWT; the signed-in identity is unknown.")
		return 0
	}

	id := identity{
		Username:       s.Claims.Username,
		Subject:        s.Claims.Subject,
		Email:          s.Claims.Email,
		Shell:          s.Claims.Shell(),
		AuthMode:       s.Auth.Mode(),
		RealmRoles:     s.Claims.RealmRoles,
		OrganizationID: s.Claims.OrganizationID,
		ExpiresAt:      s.Claims.ExpiresAt,
	}
	if err := s.Env.Renderer.Render(id); err != nil {
		return c.Exit(err)
	}
	if id.Shell == auth.ShellNone {
		c.UI.Warn(fmt.Sprintf("This user has neither the %q nor the %q role.",
			auth.RolePlatformAdmin, auth.RoleOrgAdmin))
	}
	return 0
}
