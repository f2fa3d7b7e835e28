package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Payment method providers accepted by the admin API.
var PaymentProviders = []interface{}{"card", "bank_transfer", "paypal", "invoice"}

// PaymentMethod is a payment option offered to tenants.
type PaymentMethod struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Name     string `json:"name" yaml:"name" mapstructure:"name"`
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider"`
	Enabled  bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
}

func (p PaymentMethod) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(2, 64)),
		validation.Field(&p.Provider, validation.Required, validation.In(PaymentProviders...)),
	)
}
