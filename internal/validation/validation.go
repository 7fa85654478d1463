// Package validation provides request-shape checks shared by the HTTP
// controllers.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Matches the basic local@domain.tld shape; anything without whitespace
// around a single @ and a dotted domain passes.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Describe turns a binding error into a human-readable detail string:
// field-level messages for validator errors, the raw message otherwise.
func Describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := jsonFieldName(fe.Field())
		if fe.Tag() == "required" {
			parts = append(parts, field+" is required")
			continue
		}
		parts = append(parts, field+" is invalid ("+fe.Tag()+")")
	}
	return strings.Join(parts, "; ")
}

func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
