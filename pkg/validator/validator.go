package validator

import (
	validators "github.com/go-playground/validator/v10"
)

// Validator interface
type Validator interface {
	ValidateStruct(inf interface{}) error
	ValidateVar(value interface{}, tag string) error
}

type validator struct {
	validator *validators.Validate
}

// New Validator func
func New() Validator {
	v := validators.New()
	return &validator{
		validator: v,
	}
}

// ValidateStruct func
func (v *validator) ValidateStruct(inf interface{}) error {
	return v.validator.Struct(inf)
}

// ValidateVar func - validates a single value against a tag expression,
// used for path parameters
func (v *validator) ValidateVar(value interface{}, tag string) error {
	return v.validator.Var(value, tag)
}
