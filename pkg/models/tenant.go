package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Tenant is an isolated customer space on the platform.
type Tenant struct {
	ID          string    `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Name        string    `json:"name" yaml:"name" mapstructure:"name"`
	Slug        string    `json:"slug" yaml:"slug" mapstructure:"slug"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Status      string    `json:"status,omitempty" yaml:"status,omitempty" mapstructure:"status"`
	CreatedAt   time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty" mapstructure:"-"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty" mapstructure:"-"`
}

func (t Tenant) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required, validation.Length(2, 128)),
		validation.Field(&t.Slug, validation.Required, validation.Length(2, 64), isSlug()),
		validation.Field(&t.Description, validation.Length(0, 1024)),
		validation.Field(&t.Status, isStatus()),
	)
}
