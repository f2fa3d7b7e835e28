package adminapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hashicorp-forge/adminportal/pkg/models"
)

// OrgShell is the organization-admin view of a single organization.
type OrgShell struct {
	client *Client
	orgID  string
}

// Org returns the shell for orgID.
func (c *Client) Org(orgID string) *OrgShell {
	return &OrgShell{client: c, orgID: orgID}
}

// ID returns the organization ID.
func (o *OrgShell) ID() string {
	return o.orgID
}

func (o *OrgShell) path(parts ...string) string {
	p := "/api/org/" + url.PathEscape(o.orgID)
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

// Organization returns the organization itself.
func (o *OrgShell) Organization(ctx context.Context) (models.Organization, error) {
	var org models.Organization
	err := o.client.do(ctx, http.MethodGet, o.path(), nil, nil, &org)
	return org, err
}

// Users lists members of the organization.
func (o *OrgShell) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := o.client.do(ctx, http.MethodGet, o.path("users"), nil, nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// AddUser creates or invites a member.
func (o *OrgShell) AddUser(ctx context.Context, user models.User) (models.User, error) {
	var created models.User
	err := o.client.do(ctx, http.MethodPost, o.path("users"), nil, user, &created)
	return created, err
}

// RemoveUser removes a member from the organization.
func (o *OrgShell) RemoveUser(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	return o.client.do(ctx, http.MethodDelete, o.path("users", userID), nil, nil, nil)
}

// Roles lists the roles assignable within the organization.
func (o *OrgShell) Roles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := o.client.do(ctx, http.MethodGet, o.path("roles"), nil, nil, &roles); err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []models.Role{}
	}
	return roles, nil
}

// AssignRoles replaces the roles held by a member and returns the updated user.
func (o *OrgShell) AssignRoles(ctx context.Context, userID string, assignment models.RoleAssignment) (models.User, error) {
	var user models.User
	err := o.client.do(ctx, http.MethodPut, o.path("users", userID, "roles"), nil, assignment, &user)
	return user, err
}
