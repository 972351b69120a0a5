package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground validator with struct-tag validation and
// field-error extraction for API responses.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate validates a struct and returns a field->message map of failures,
// or nil when the struct is valid.
func (v *Validator) Validate(i interface{}) map[string]string {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		fields[strings.ToLower(fe.Field())] = messageFor(fe)
	}
	return fields
}

// IsEmail reports whether s is a syntactically valid email address.
func (v *Validator) IsEmail(s string) bool {
	return v.validate.Var(s, "required,email") == nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
