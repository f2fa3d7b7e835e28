package auth

import (
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Realm roles that select an admin shell.
const (
	RolePlatformAdmin = "platform-admin"
	RoleOrgAdmin      = "org-admin"
)

// Shell is the admin surface a token is entitled to.
type Shell string

const (
	ShellNone         Shell = ""
	ShellPlatform     Shell = "platform"
	ShellOrganization Shell = "organization"
)

// Claims is the subset of a Keycloak access token the console uses.
type Claims struct {
	Subject        string    `json:"subject"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	RealmRoles     []string  `json:"realmRoles"`
	OrganizationID string    `json:"organizationId,omitempty"`
	ExpiresAt      time.Time `json:"expiresAt,omitempty"`
}

type keycloakClaims struct {
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email"`
	OrganizationID    string `json:"organization_id"`
	RealmAccess       struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
	jwt.RegisteredClaims
}

// ParseClaims decodes an access token without verifying its signature. The
// admin API verifies every token it receives; the console only reads them.
func ParseClaims(raw string) (*Claims, error) {
	var kc keycloakClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &kc); err != nil {
		return nil, fmt.Errorf("error parsing access token: %w", err)
	}

	c := &Claims{
		Subject:        kc.Subject,
		Username:       kc.PreferredUsername,
		Email:          kc.Email,
		RealmRoles:     kc.RealmAccess.Roles,
		OrganizationID: kc.OrganizationID,
	}
	if kc.ExpiresAt != nil {
		c.ExpiresAt = kc.ExpiresAt.Time
	}
	if c.Username == "" {
		c.Username = c.Subject
	}
	return c, nil
}

// HasRole reports whether the token carries realm role r.
func (c *Claims) HasRole(r string) bool {
	return slices.Contains(c.RealmRoles, r)
}

// Shell returns the admin surface for these claims. Platform admins win when
// a token carries both roles.
func (c *Claims) Shell() Shell {
	switch {
	case c.HasRole(RolePlatformAdmin):
		return ShellPlatform
	case c.HasRole(RoleOrgAdmin):
		return ShellOrganization
	default:
		return ShellNone
	}
}
