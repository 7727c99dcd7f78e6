// Package security provides an opt-in guard that inspects statements and
// bind values before they reach the driver.
package security

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnsafeQuery is returned when a statement or bind value matches a dangerous pattern.
var ErrUnsafeQuery = errors.New("unsafe query")

// Validator checks SQL text and string bind values against injection patterns.
type Validator struct {
	patterns []*regexp.Regexp
	strict   bool
}

// ValidatorOption configures the Validator.
type ValidatorOption func(*Validator)

// WithStrict adds aggressive patterns that may reject legitimate statements.
func WithStrict(strict bool) ValidatorOption {
	return func(v *Validator) {
		v.strict = strict
	}
}

// NewValidator creates a validator with the default dangerous patterns.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{patterns: compilePatterns(dangerousPatterns)}

	for _, opt := range opts {
		opt(v)
	}

	if v.strict {
		v.patterns = append(v.patterns, compilePatterns(strictPatterns)...)
	}

	return v
}

// dangerousPatterns are matched against the upper-cased placeholder SQL.
// OR/AND tautologies are not listed: builders join predicates with OR in
// non-strict mode and every value travels as a placeholder.
var dangerousPatterns = []string{
	`--[\s]`,
	`/\*.*\*/`,
	`#[\s]`,

	`;\s*DROP\s+`,
	`;\s*DELETE\s+`,
	`;\s*TRUNCATE\s+`,
	`;\s*ALTER\s+`,
	`;\s*CREATE\s+`,

	`UNION\s+ALL\s+SELECT`,
	`UNION\s+SELECT`,

	`INTO\s+OUTFILE`,
	`LOAD_FILE\s*\(`,
	`BENCHMARK\s*\(`,
	`SLEEP\s*\(`,
	`INFORMATION_SCHEMA`,
}

var strictPatterns = []string{
	`\bUNION\b`,
	`;`,
}

// ValidateQuery reports ErrUnsafeQuery if query contains a dangerous construct.
func (v *Validator) ValidateQuery(query string) error {
	normalized := strings.ToUpper(query)

	for _, pattern := range v.patterns {
		if pattern.MatchString(normalized) {
			return fmt.Errorf("%w: statement matches %q", ErrUnsafeQuery, pattern.String())
		}
	}

	return nil
}

// ValidateBinds checks string bind values for injection attempts.
// names and values are parallel slices.
func (v *Validator) ValidateBinds(names []string, values []interface{}) error {
	for i, value := range values {
		str, ok := value.(string)
		if !ok {
			continue
		}

		if containsSQLInjection(str) {
			name := ""
			if i < len(names) {
				name = names[i]
			}
			return fmt.Errorf("%w: suspicious value for :%s", ErrUnsafeQuery, name)
		}
	}

	return nil
}

func containsSQLInjection(value string) bool {
	indicators := []string{
		"'--",
		"';",
		"' OR ",
		"' AND ",
		"/*",
		"*/",
		"' UNION ",
		"' DROP ",
	}

	upper := strings.ToUpper(value)
	for _, indicator := range indicators {
		if strings.Contains(upper, indicator) {
			return true
		}
	}

	return false
}

func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		compiled = append(compiled, regexp.MustCompile(pattern))
	}
	return compiled
}
