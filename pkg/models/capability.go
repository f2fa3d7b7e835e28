package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Capability is a named permission a role can be granted.
type Capability struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Key         string `json:"key" yaml:"key" mapstructure:"key"`
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
}

func (c Capability) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Key, validation.Required, validation.Length(2, 128),
			validation.Match(keyPattern).Error("must start with a letter and use lowercase, digits, '_', '.', ':' or '-'")),
		validation.Field(&c.Name, validation.Required, validation.Length(2, 128)),
	)
}

// RoleCapability records whether a role is granted a capability.
type RoleCapability struct {
	RoleID        string `json:"roleId" yaml:"roleId" mapstructure:"roleId"`
	CapabilityID  string `json:"capabilityId" yaml:"capabilityId" mapstructure:"capabilityId"`
	CapabilityKey string `json:"capabilityKey,omitempty" yaml:"capabilityKey,omitempty" mapstructure:"capabilityKey"`
	Granted       bool   `json:"granted" yaml:"granted" mapstructure:"granted"`
}

// PermissionSet replaces every capability granted to a role.
type PermissionSet struct {
	CapabilityIDs []string `json:"capabilityIds" yaml:"capabilityIds" mapstructure:"capabilityIds"`
}

func (p PermissionSet) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.CapabilityIDs, validation.Each(validation.Required)),
	)
}
