// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when the caller has no configured region.
const DefaultRegion = "IN"

// NormalizeE164 formats a phone number to E.164 using region for numbers
// without a country prefix. If parsing fails, it returns the trimmed input.
func NormalizeE164(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}
	if region == "" {
		region = DefaultRegion
	}

	number, err := phonenumbers.Parse(trimmed, strings.ToUpper(region))
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// Normalizer binds a default region for repeated use by services.
type Normalizer struct {
	region string
}

// NewNormalizer creates a normalizer for the given region.
func NewNormalizer(region string) Normalizer {
	return Normalizer{region: region}
}

// Normalize formats input to E.164 when possible.
func (n Normalizer) Normalize(input string) string {
	return NormalizeE164(input, n.region)
}
