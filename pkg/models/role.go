package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Role scopes.
const (
	RoleScopePlatform     = "platform"
	RoleScopeOrganization = "organization"
)

// Role groups capabilities that can be granted to users.
type Role struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Scope       string `json:"scope" yaml:"scope" mapstructure:"scope"`
	System      bool   `json:"system,omitempty" yaml:"system,omitempty" mapstructure:"-"`
}

func (r Role) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 64)),
		validation.Field(&r.Scope, validation.Required,
			validation.In(RoleScopePlatform, RoleScopeOrganization).Error("must be platform or organization")),
		validation.Field(&r.Description, validation.Length(0, 512)),
	)
}
