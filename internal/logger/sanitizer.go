package logger

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultMask replaces sensitive values in log output.
const DefaultMask = "***REDACTED***"

// Sanitizer masks bind values whose placeholder names look sensitive, so that
// execution logs never carry secrets. Detection works on bind names
// (password, bind_password, bind_0_api_key, users__token, ...).
type Sanitizer struct {
	sensitiveFields []string
	maskValue       string
	patterns        []*regexp.Regexp
}

// NewSanitizer creates a sanitizer for the given field names.
// If no fields are provided, a default set of common sensitive names is used.
func NewSanitizer(sensitiveFields []string) *Sanitizer {
	if len(sensitiveFields) == 0 {
		sensitiveFields = []string{
			"password", "passwd", "pwd",
			"token", "api_key", "apikey", "api_token",
			"secret", "auth", "authorization",
			"credit_card", "card_number", "cvv", "cvc",
			"ssn", "social_security",
			"private_key", "priv_key",
		}
	}

	// Bind names join words with underscores, so the field must be delimited by
	// start/end or an underscore rather than a regexp word boundary.
	patterns := make([]*regexp.Regexp, 0, len(sensitiveFields))
	for _, field := range sensitiveFields {
		pattern := regexp.MustCompile(`(?i)(^|_)` + regexp.QuoteMeta(field) + `($|_)`)
		patterns = append(patterns, pattern)
	}

	return &Sanitizer{
		sensitiveFields: sensitiveFields,
		maskValue:       DefaultMask,
		patterns:        patterns,
	}
}

// IsSensitive reports whether a bind name refers to a sensitive field.
func (s *Sanitizer) IsSensitive(name string) bool {
	name = strings.TrimPrefix(name, ":")
	for _, pattern := range s.patterns {
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

// MaskValues returns a copy of values with sensitive entries replaced by the mask.
// names and values are parallel slices. The input is not modified.
func (s *Sanitizer) MaskValues(names []string, values []interface{}) []interface{} {
	masked := make([]interface{}, len(values))
	for i, v := range values {
		if i < len(names) && s.IsSensitive(names[i]) {
			masked[i] = s.maskValue
			continue
		}
		masked[i] = v
	}
	return masked
}

// FormatNamed renders name=value pairs for logging, masking sensitive values.
func (s *Sanitizer) FormatNamed(names []string, values []interface{}) string {
	if len(names) == 0 {
		return "[]"
	}

	masked := s.MaskValues(names, values)
	parts := make([]string, len(names))
	for i, name := range names {
		var v interface{}
		if i < len(masked) {
			v = masked[i]
		}
		parts[i] = name + "=" + s.formatValue(v)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// formatValue formats a single value, truncating long strings.
func (s *Sanitizer) formatValue(v interface{}) string {
	if v == nil {
		return "NULL"
	}

	str := fmt.Sprintf("%v", v)

	const maxLen = 100
	if len(str) > maxLen {
		return str[:maxLen] + "..."
	}

	return str
}
