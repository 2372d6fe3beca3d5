package dto

import (
	"fmt"
	"net/mail"
)

// FieldErrors maps a field name to its validation messages, surfaced as
// the "error" payload of a "Validation error" response.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}

func requireString(fe FieldErrors, field, value string) {
	if value == "" {
		fe.add(field, "This field is required.")
	}
}

func checkEmail(fe FieldErrors, field, value string) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		fe.add(field, "Enter a valid email address.")
	}
}

func checkMaxLen(fe FieldErrors, field, value string, max int) {
	if len(value) > max {
		fe.add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", max))
	}
}

func checkMinLen(fe FieldErrors, field, value string, min int) {
	if value != "" && len(value) < min {
		fe.add(field, fmt.Sprintf("Ensure this field has at least %d characters.", min))
	}
}

func checkChoice(fe FieldErrors, field, value string, choices []string) {
	if value == "" {
		return
	}
	for _, choice := range choices {
		if value == choice {
			return
		}
	}
	fe.add(field, fmt.Sprintf("%q is not a valid choice.", value))
}
