package domain

import "github.com/go-playground/validator/v10"

// NewValidator returns a validator that understands the domain tags.
func NewValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("kind", func(fl validator.FieldLevel) bool {
		return Kind(fl.Field().String()).IsValid()
	})
	return v
}
