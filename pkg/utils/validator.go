package utils

import (
	"fmt"
	"regexp"
)

var gstinRegex = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)

// ValidateGSTIN validates the 15-character GSTIN format.
func ValidateGSTIN(gstin string) error {
	if len(gstin) != 15 {
		return fmt.Errorf("GSTIN must be 15 characters: %s", gstin)
	}
	if !gstinRegex.MatchString(gstin) {
		return fmt.Errorf("invalid GSTIN format: %s", gstin)
	}
	return nil
}

// StateCode returns the 2-character state-code prefix of a GSTIN.
func StateCode(gstin string) string {
	if len(gstin) < 2 {
		return ""
	}
	return gstin[:2]
}

// SanitizeString removes control characters from user-supplied text.
func SanitizeString(s string) string {
	return regexp.MustCompile(`[\x00-\x1f\x7f]`).ReplaceAllString(s, "")
}
