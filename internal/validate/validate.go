// Package validate evaluates the declarative per-field rules declared on
// entity structs before any write reaches the store.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes a single failed rule.
type FieldError struct {
	// Field is the struct field that failed.
	Field string `json:"field"`

	// Rule is the rule that was not met, including its parameter
	// when present (e.g. "required", "max=255").
	Rule string `json:"rule"`
}

// Error reports which entity failed validation and on which fields.
// It always blocks the write it precedes.
type Error struct {
	Entity string       `json:"entity"`
	Fields []FieldError `json:"fields"`
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s validation failed", e.Entity)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(parts, ", "))
}

// Struct evaluates the rules declared on value's fields and returns an
// *Error naming entity when any rule fails. It has no side effects.
func Struct(entity string, value any) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	failed := make([]FieldError, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule = fmt.Sprintf("%s=%s", rule, fe.Param())
		}
		failed = append(failed, FieldError{Field: fe.Field(), Rule: rule})
	}

	return &Error{Entity: entity, Fields: failed}
}

// IsValidationError reports whether err is a validation failure.
func IsValidationError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
