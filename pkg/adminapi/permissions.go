package adminapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hashicorp-forge/adminportal/pkg/models"
)

// Role-capability permissions live under /api/admin/roles/{id}/capabilities.

func roleCapabilitiesPath(roleID string) string {
	return fmt.Sprintf("/api/admin/roles/%s/capabilities", url.PathEscape(roleID))
}

// RoleCapabilities lists every capability with its granted flag for a role.
func (c *Client) RoleCapabilities(ctx context.Context, roleID string) ([]models.RoleCapability, error) {
	var raw []models.RoleCapability
	if err := c.do(ctx, http.MethodGet, roleCapabilitiesPath(roleID), nil, nil, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = []models.RoleCapability{}
	}
	return raw, nil
}

// SetRoleCapabilities replaces the granted set for a role.
func (c *Client) SetRoleCapabilities(ctx context.Context, roleID string, set models.PermissionSet) ([]models.RoleCapability, error) {
	var updated []models.RoleCapability
	if err := c.do(ctx, http.MethodPut, roleCapabilitiesPath(roleID), nil, set, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// GrantCapability grants one capability to a role.
func (c *Client) GrantCapability(ctx context.Context, roleID, capabilityID string) error {
	path := roleCapabilitiesPath(roleID) + "/" + url.PathEscape(capabilityID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

// RevokeCapability revokes one capability from a role.
func (c *Client) RevokeCapability(ctx context.Context, roleID, capabilityID string) error {
	path := roleCapabilitiesPath(roleID) + "/" + url.PathEscape(capabilityID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
