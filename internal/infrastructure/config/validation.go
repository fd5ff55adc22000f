package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks struct tags on loaded configuration before the
// daemon starts, so bad settings fail at boot rather than mid-tick.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a validator with the rule set the config
// structs declare in their tags.
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// Validate runs tag validation on i and flattens any failures into a
// single readable error.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Field(),
				e.Tag(),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// ValidateConfig checks the full configuration tree
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}
