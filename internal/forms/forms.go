// Package forms validates and normalizes raw form submissions before a
// record is constructed. Evaluation is a pure function of the input: every
// rule is applied and every failure collected, so a form can surface all of
// its problems at once.
package forms

import (
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DateLayout is the normalized form of every date field.
const DateLayout = "2006-01-02"

// Rule describes the constraints for a single form field.
type Rule struct {
	Field    string
	Required bool
	Min      int    // minimum length after trimming
	Alphanum bool   // letters and digits only
	Date     bool   // ISO-8601, normalized to DateLayout
	Bool     bool   // checkbox-style boolean
	Int      bool   // decimal integer (record references)
	Message  string // overrides the generated message for Required/Min
}

// FieldError is a single validation failure, in rule declaration order.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the ordered list of failures for one submission.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Decode applies rules to raw form input and returns the normalized field
// map. Values are trimmed and HTML-escaped; empty optional fields are
// dropped; dates come back as DateLayout strings and booleans as "true".
// Repeated submissions of the same field take the first value.
func Decode(raw url.Values, rules []Rule) (map[string]string, Errors) {
	fields := make(map[string]string, len(rules))
	var errs Errors

	for _, rule := range rules {
		value := strings.TrimSpace(first(raw, rule.Field))

		if value == "" {
			if rule.Required {
				errs = append(errs, FieldError{rule.Field, rule.message()})
			}
			continue
		}

		switch {
		case rule.Min > 0 && len([]rune(value)) < rule.Min:
			errs = append(errs, FieldError{rule.Field, rule.message()})
			continue
		case rule.Alphanum && !alphanumeric(value):
			errs = append(errs, FieldError{rule.Field, rule.Field + " has non-alphanumeric characters"})
			continue
		case rule.Date:
			day, err := parseISODate(value)
			if err != nil {
				msg := rule.Message
				if msg == "" {
					msg = "invalid " + rule.Field
				}
				errs = append(errs, FieldError{rule.Field, msg})
				continue
			}
			value = day
		case rule.Bool:
			value = parseCheckbox(value)
		case rule.Int:
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				errs = append(errs, FieldError{rule.Field, rule.Field + " must be a record id"})
				continue
			}
		}

		fields[rule.Field] = html.EscapeString(value)
	}

	return fields, errs
}

func (r Rule) message() string {
	if r.Message != "" {
		return r.Message
	}
	if r.Min > 0 {
		return fmt.Sprintf("%s must contain at least %d characters", r.Field, r.Min)
	}
	return r.Field + " is required"
}

func first(raw url.Values, key string) string {
	if vs, ok := raw[key]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func alphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// parseISODate accepts a plain date or a full timestamp and keeps the date.
func parseISODate(s string) (string, error) {
	for _, layout := range []string{DateLayout, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("not an ISO-8601 date: %q", s)
}

// parseCheckbox folds the value space HTML checkboxes produce into
// "true"/"false". Anything unrecognized counts as unchecked.
func parseCheckbox(s string) string {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return "true"
	default:
		return "false"
	}
}
