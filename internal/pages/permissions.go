package pages

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/hashicorp-forge/adminportal/pkg/adminapi"
	"github.com/hashicorp-forge/adminportal/pkg/apicall"
	"github.com/hashicorp-forge/adminportal/pkg/models"
)

// PermissionsPage edits the capabilities granted to roles.
type PermissionsPage struct {
	env    *Env
	client *adminapi.Client
}

func NewPermissionsPage(env *Env, client *adminapi.Client) *PermissionsPage {
	return &PermissionsPage{env: env, client: client}
}

// RolePermissions is one row of the permission matrix.
type RolePermissions struct {
	RoleID       string   `json:"roleId" yaml:"roleId"`
	Role         string   `json:"role" yaml:"role"`
	Scope        string   `json:"scope" yaml:"scope"`
	Capabilities []string `json:"capabilities" yaml:"capabilities"`
}

// List renders the capabilities of one role, or the matrix of every role
// when roleID is empty.
func (p *PermissionsPage) List(ctx context.Context, roleID string) error {
	if roleID != "" {
		res := p.fetchRole(ctx, roleID)
		if !res.OK() {
			return reported(res.Err)
		}
		return p.env.show(res.Data, len(res.Data), "No capabilities defined.")
	}

	roles := Fetch(ctx, p.env, "permissions.list", "/api/admin/roles",
		func(ctx context.Context) ([]models.Role, error) {
			return p.client.Roles.List(ctx, nil)
		},
		apicall.Options{},
	)
	if !roles.OK() {
		return reported(roles.Err)
	}

	// The fan-out is one logical call, so a retry refetches every role.
	res := Call(ctx, p.env, "permissions.list",
		func(ctx context.Context) ([]RolePermissions, error) {
			matrix := make([]RolePermissions, len(roles.Data))
			g, gctx := errgroup.WithContext(ctx)
			for i, role := range roles.Data {
				g.Go(func() error {
					caps, err := p.client.RoleCapabilities(gctx, role.ID)
					if err != nil {
						return err
					}
					matrix[i] = RolePermissions{
						RoleID:       role.ID,
						Role:         role.Name,
						Scope:        role.Scope,
						Capabilities: grantedKeys(caps),
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return nil, err
			}
			return matrix, nil
		},
		apicall.Options{},
	)
	if !res.OK() {
		return reported(res.Err)
	}
	return p.env.show(res.Data, len(res.Data), "No roles defined.")
}

func (p *PermissionsPage) fetchRole(ctx context.Context, roleID string) apicall.Result[[]models.RoleCapability] {
	return Fetch(ctx, p.env, "permissions.list", "/api/admin/roles/"+roleID+"/capabilities",
		func(ctx context.Context) ([]models.RoleCapability, error) {
			return p.client.RoleCapabilities(ctx, roleID)
		},
		apicall.Options{},
	)
}

func grantedKeys(caps []models.RoleCapability) []string {
	keys := make([]string, 0, len(caps))
	for _, c := range caps {
		if !c.Granted {
			continue
		}
		key := c.CapabilityKey
		if key == "" {
			key = c.CapabilityID
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Grant grants each capability to roleID. Every grant is its own call so a
// failure leaves earlier grants in place.
func (p *PermissionsPage) Grant(ctx context.Context, roleID string, capabilityIDs ...string) error {
	for _, id := range capabilityIDs {
		res := Call(ctx, p.env, "permissions.grant",
			func(ctx context.Context) (struct{}, error) {
				return struct{}{}, p.client.GrantCapability(ctx, roleID, id)
			},
			apicall.Options{SuccessMessage: fmt.Sprintf("Capability %s granted", id)},
		)
		if !res.OK() {
			return reported(res.Err)
		}
	}
	return nil
}

// Revoke revokes each capability from roleID.
func (p *PermissionsPage) Revoke(ctx context.Context, roleID string, capabilityIDs ...string) error {
	for _, id := range capabilityIDs {
		res := Call(ctx, p.env, "permissions.revoke",
			func(ctx context.Context) (struct{}, error) {
				return struct{}{}, p.client.RevokeCapability(ctx, roleID, id)
			},
			apicall.Options{SuccessMessage: fmt.Sprintf("Capability %s revoked", id)},
		)
		if !res.OK() {
			return reported(res.Err)
		}
	}
	return nil
}

// Set replaces the granted capabilities of roleID.
func (p *PermissionsPage) Set(ctx context.Context, roleID string, capabilityIDs []string) error {
	set := models.PermissionSet{CapabilityIDs: capabilityIDs}
	res := Call(ctx, p.env, "permissions.set",
		func(ctx context.Context) ([]models.RoleCapability, error) {
			if err := set.Validate(); err != nil {
				return nil, fmt.Errorf("invalid capability list: %w", err)
			}
			return p.client.SetRoleCapabilities(ctx, roleID, set)
		},
		apicall.Options{SuccessMessage: "Permissions updated"},
	)
	if !res.OK() {
		return reported(res.Err)
	}
	return p.env.show(res.Data, len(res.Data), "Role has no capabilities.")
}
