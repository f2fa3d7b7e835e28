package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Organization belongs to a tenant and is administered by org admins.
type Organization struct {
	ID                 string `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	TenantID           string `json:"tenantId" yaml:"tenantId" mapstructure:"tenantId"`
	Name               string `json:"name" yaml:"name" mapstructure:"name"`
	OrganizationTypeID string `json:"organizationTypeId" yaml:"organizationTypeId" mapstructure:"organizationTypeId"`
	ContactEmail       string `json:"contactEmail,omitempty" yaml:"contactEmail,omitempty" mapstructure:"contactEmail"`
	Status             string `json:"status,omitempty" yaml:"status,omitempty" mapstructure:"status"`
}

func (o Organization) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.TenantID, validation.Required),
		validation.Field(&o.Name, validation.Required, validation.Length(2, 128)),
		validation.Field(&o.OrganizationTypeID, validation.Required),
		validation.Field(&o.ContactEmail, isEmail()),
		validation.Field(&o.Status, isStatus()),
	)
}

// OrganizationType classifies organizations (e.g. merchant, partner).
type OrganizationType struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
}

func (o OrganizationType) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Name, validation.Required, validation.Length(2, 64)),
		validation.Field(&o.Description, validation.Length(0, 512)),
	)
}
