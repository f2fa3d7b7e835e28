package pages

import (
	"context"
	"fmt"

	"github.com/hashicorp-forge/adminportal/pkg/adminapi"
	"github.com/hashicorp-forge/adminportal/pkg/apicall"
	"github.com/hashicorp-forge/adminportal/pkg/models"
)

// OrgPage is the organization-admin shell.
type OrgPage struct {
	env   *Env
	shell *adminapi.OrgShell
}

func NewOrgPage(env *Env, shell *adminapi.OrgShell) *OrgPage {
	return &OrgPage{env: env, shell: shell}
}

func (p *OrgPage) key(suffix string) string {
	return "/api/org/" + p.shell.ID() + suffix
}

// Show renders the organization.
func (p *OrgPage) Show(ctx context.Context) error {
	res := Fetch(ctx, p.env, "org.show", p.key(""), p.shell.Organization, apicall.Options{})
	if !res.OK() {
		return reported(res.Err)
	}
	return p.env.Renderer.Render(res.Data)
}

// Users renders the organization's members.
func (p *OrgPage) Users(ctx context.Context) error {
	res := Fetch(ctx, p.env, "org.users", p.key("/users"), p.shell.Users, apicall.Options{})
	if !res.OK() {
		return reported(res.Err)
	}
	return p.env.show(res.Data, len(res.Data), "No users in this organization.")
}

// AddUser validates and adds a member.
func (p *OrgPage) AddUser(ctx context.Context, user models.User) error {
	res := Call(ctx, p.env, "org.add-user",
		func(ctx context.Context) (models.User, error) {
			if err := user.Validate(); err != nil {
				return models.User{}, fmt.Errorf("invalid user: %w", err)
			}
			return p.shell.AddUser(ctx, user)
		},
		apicall.Options{SuccessMessage: fmt.Sprintf("User %s added", user.Username)},
	)
	if !res.OK() {
		return reported(res.Err)
	}
	return p.env.Renderer.Render(res.Data)
}

// RemoveUser removes a member after confirmation.
func (p *OrgPage) RemoveUser(ctx context.Context, userID string) error {
	if !p.env.Confirm(fmt.Sprintf("Remove user %s from the organization?", userID)) {
		p.env.UI.Info("Aborted.")
		return nil
	}
	res := Call(ctx, p.env, "org.remove-user",
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, p.shell.RemoveUser(ctx, userID)
		},
		apicall.Options{SuccessMessage: "User removed"},
	)
	return reported(res.Err)
}

// Roles renders the roles assignable in the organization.
func (p *OrgPage) Roles(ctx context.Context) error {
	res := Fetch(ctx, p.env, "org.roles", p.key("/roles"), p.shell.Roles, apicall.Options{})
	if !res.OK() {
		return reported(res.Err)
	}
	return p.env.show(res.Data, len(res.Data), "No roles available.")
}

// AssignRoles replaces a member's roles.
func (p *OrgPage) AssignRoles(ctx context.Context, userID string, roleIDs []string) error {
	assignment := models.RoleAssignment{RoleIDs: roleIDs}
	res := Call(ctx, p.env, "org.assign-roles",
		func(ctx context.Context) (models.User, error) {
			if err := assignment.Validate(); err != nil {
				return models.User{}, fmt.Errorf("invalid role list: %w", err)
			}
			return p.shell.AssignRoles(ctx, userID, assignment)
		},
		apicall.Options{SuccessMessage: "Roles updated"},
	)
	if !res.OK() {
		return reported(res.Err)
	}
	return p.env.Renderer.Render(res.Data)
}
