package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/adminportal/internal/cmd/base"
	"github.com/hashicorp-forge/adminportal/internal/cmd/commands/audit"
	"github.com/hashicorp-forge/adminportal/internal/cmd/commands/group"
	"github.com/hashicorp-forge/adminportal/internal/cmd/commands/open"
	"github.com/hashicorp-forge/adminportal/internal/cmd/commands/org"
	"github.com/hashicorp-forge/adminportal/internal/cmd/commands/permissions"
	"github.com/hashicorp-forge/adminportal/internal/cmd/commands/relay"
	"github.com/hashicorp-forge/adminportal/internal/cmd/commands/resource"
	"github.com/hashicorp-forge/adminportal/internal/cmd/commands/status"
	"github.com/hashicorp-forge/adminportal/internal/cmd/commands/version"
	"github.com/hashicorp-forge/adminportal/internal/cmd/commands/whoami"
	"github.com/hashicorp-forge/adminportal/pkg/adminapi"
	"github.com/hashicorp-forge/adminportal/pkg/models"
)

// Commands is the mapping of all available commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	Commands = newCommands(base.NewCommand(log, ui))
}

func newCommands(b *base.Command) map[string]cli.CommandFactory {
	cmds := map[string]cli.CommandFactory{
		"audit": func() (cli.Command, error) {
			return &group.Command{
				Command:     b,
				Name:        "audit",
				Description: "Inspect the local notification audit trail",
			}, nil
		},
		"notifications": func() (cli.Command, error) {
			return &group.Command{
				Command:     b,
				Name:        "notifications",
				Description: "Work with notifications shared over Kafka",
			}, nil
		},
		"notifications relay": func() (cli.Command, error) {
			return &relay.Command{Command: b}, nil
		},
		"open": func() (cli.Command, error) {
			return &open.Command{Command: b}, nil
		},
		"org": func() (cli.Command, error) {
			return &group.Command{
				Command:     b,
				Name:        "org",
				Description: "Administer one organization",
				Details: "The organization is taken from -org, the organization setting in the\n" +
					"  configuration file, or the signed-in organization admin's token.",
			}, nil
		},
		"permissions": func() (cli.Command, error) {
			return &group.Command{
				Command:     b,
				Name:        "permissions",
				Description: "Manage the capabilities granted to roles",
			}, nil
		},
		"status": func() (cli.Command, error) {
			return &status.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
		"whoami": func() (cli.Command, error) {
			return &whoami.Command{Command: b}, nil
		},
	}

	for _, action := range audit.Actions {
		cmds["audit "+action] = func() (cli.Command, error) {
			return audit.New(b, action), nil
		}
	}
	for _, action := range org.Actions {
		cmds["org "+action] = func() (cli.Command, error) {
			return org.New(b, action), nil
		}
	}
	for _, action := range permissions.Actions {
		cmds["permissions "+action] = func() (cli.Command, error) {
			return permissions.New(b, action), nil
		}
	}

	addResource(cmds, b, resource.Kind[models.Tenant]{
		Name: "tenants", Singular: "tenant",
		Resource: func(c *adminapi.Client) *adminapi.Resource[models.Tenant] { return c.Tenants },
	})
	addResource(cmds, b, resource.Kind[models.User]{
		Name: "users", Singular: "user",
		Resource: func(c *adminapi.Client) *adminapi.Resource[models.User] { return c.Users },
	})
	addResource(cmds, b, resource.Kind[models.Role]{
		Name: "roles", Singular: "role",
		Resource: func(c *adminapi.Client) *adminapi.Resource[models.Role] { return c.Roles },
	})
	addResource(cmds, b, resource.Kind[models.Organization]{
		Name: "organizations", Singular: "organization",
		Resource: func(c *adminapi.Client) *adminapi.Resource[models.Organization] { return c.Organizations },
	})
	addResource(cmds, b, resource.Kind[models.OrganizationType]{
		Name: "organization-types", Singular: "organization type",
		Resource: func(c *adminapi.Client) *adminapi.Resource[models.OrganizationType] { return c.OrganizationTypes },
	})
	addResource(cmds, b, resource.Kind[models.Capability]{
		Name: "capabilities", Singular: "capability",
		Resource: func(c *adminapi.Client) *adminapi.Resource[models.Capability] { return c.Capabilities },
	})
	addResource(cmds, b, resource.Kind[models.PaymentMethod]{
		Name: "payment-methods", Singular: "payment method",
		Resource: func(c *adminapi.Client) *adminapi.Resource[models.PaymentMethod] { return c.PaymentMethods },
	})

	return cmds
}

func addResource[T models.Validatable](cmds map[string]cli.CommandFactory, b *base.Command, kind resource.Kind[T]) {
	cmds[kind.Name] = func() (cli.Command, error) {
		return &group.Command{
			Command:     b,
			Name:        kind.Name,
			Description: "Manage " + kind.Singular + " records",
		}, nil
	}
	for _, action := range resource.Actions {
		cmds[kind.Name+" "+action] = func() (cli.Command, error) {
			return resource.New(b, kind, action), nil
		}
	}
}
