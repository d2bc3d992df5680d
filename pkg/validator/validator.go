package validator

import (
	validators "github.com/go-playground/validator/v10"
)

// Validator interface
type Validator interface {
	ValidateStruct(inf interface{}) error
}

type validator struct {
	validator *validators.Validate
}

// New Validator func
func New() Validator {
	v := validators.New()
	// score: an integer percentage in [0,100]
	_ = v.RegisterValidation("score", func(fl validators.FieldLevel) bool {
		n := fl.Field().Int()
		return n >= 0 && n <= 100
	})
	return &validator{
		validator: v,
	}
}

// ValidateStruct func
func (v *validator) ValidateStruct(inf interface{}) error {

	return v.validator.Struct(inf)
}
