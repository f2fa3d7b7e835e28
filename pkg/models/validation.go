package models

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	keyPattern  = regexp.MustCompile(`^[a-z][a-z0-9_.:-]*$`)
)

// Validatable is implemented by every DTO sent to the admin API.
type Validatable interface {
	Validate() error
}

func isEmail() validation.Rule {
	return is.EmailFormat.Error("must be a valid email address")
}

func isSlug() validation.Rule {
	return validation.Match(slugPattern).Error("must be lowercase letters, digits and dashes")
}

// Status values shared by tenants and organizations.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

func isStatus() validation.Rule {
	return validation.In(StatusActive, StatusSuspended).Error("must be active or suspended")
}
