package service

import (
	"fmt"
	"unicode/utf8"

	"travelnest_backend/platform/apperr"
)

const msgValidationFailed = "Validation failed"

// lengthChecks re-applies minimum lengths to text after markup is stripped,
// keyed by JSON field name like validator.FieldErrors.
type lengthChecks map[string][]string

func (c lengthChecks) min(field, value string, n int) {
	if utf8.RuneCountInString(value) < n {
		c[field] = append(c[field], fmt.Sprintf("must be at least %d characters", n))
	}
}

func (c lengthChecks) minPtr(field string, value *string, n int) {
	if value != nil {
		c.min(field, *value, n)
	}
}

func (c lengthChecks) err() error {
	if len(c) == 0 {
		return nil
	}
	return apperr.Validation(msgValidationFailed).WithDetails(map[string][]string(c))
}
