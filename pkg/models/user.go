package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// User is an account managed in the identity provider and mirrored by the
// admin API.
type User struct {
	ID             string   `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	TenantID       string   `json:"tenantId,omitempty" yaml:"tenantId,omitempty" mapstructure:"tenantId"`
	OrganizationID string   `json:"organizationId,omitempty" yaml:"organizationId,omitempty" mapstructure:"organizationId"`
	Username       string   `json:"username" yaml:"username" mapstructure:"username"`
	Email          string   `json:"email" yaml:"email" mapstructure:"email"`
	FirstName      string   `json:"firstName,omitempty" yaml:"firstName,omitempty" mapstructure:"firstName"`
	LastName       string   `json:"lastName,omitempty" yaml:"lastName,omitempty" mapstructure:"lastName"`
	Enabled        bool     `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Roles          []string `json:"roles,omitempty" yaml:"roles,omitempty" mapstructure:"roles"`
}

func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Username, validation.Required, validation.Length(3, 64)),
		validation.Field(&u.Email, validation.Required, isEmail()),
		validation.Field(&u.FirstName, validation.Length(0, 128)),
		validation.Field(&u.LastName, validation.Length(0, 128)),
	)
}

// RoleAssignment replaces the set of roles held by a user.
type RoleAssignment struct {
	RoleIDs []string `json:"roleIds" yaml:"roleIds" mapstructure:"roleIds"`
}

func (r RoleAssignment) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RoleIDs, validation.Each(validation.Required)),
	)
}
