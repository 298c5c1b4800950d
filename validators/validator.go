package validators

import (
	"github.com/go-playground/validator/v10"
)

// Validator adapts go-playground/validator to Echo's Validator interface.
type Validator struct {
	validator *validator.Validate
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{validator: validator.New()}
}

// Validate validates a bound request struct against its tags.
func (v *Validator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}
