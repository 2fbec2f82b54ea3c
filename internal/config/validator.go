package config

import (
	"go/token"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators registers custom validation functions
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("goident", validateGoIdent)
}

// validateGoIdent accepts Go identifiers that are not keywords.
func validateGoIdent(fl validator.FieldLevel) bool {
	return token.IsIdentifier(fl.Field().String())
}
