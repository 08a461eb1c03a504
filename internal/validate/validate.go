// Package validate evaluates declarative field constraints. Each entity
// declares one Schema; a single generic evaluator turns a value map into a
// field-to-message map suitable for a 400 response body.
package validate

import (
	"strings"
	"unicode"
)

// Values holds the raw field values of one create/update request.
type Values map[string]any

// Constraint is a single named check on one field.
type Constraint struct {
	Field   string
	Message string
	ok      func(v any) bool
}

// Schema is an ordered constraint list for one entity.
type Schema []Constraint

// Validate runs every constraint and returns the first failing message per
// field. An empty map means the values pass.
func (s Schema) Validate(values Values) map[string]string {
	errs := make(map[string]string)
	for _, c := range s {
		if _, seen := errs[c.Field]; seen {
			continue
		}
		if !c.ok(values[c.Field]) {
			errs[c.Field] = c.Message
		}
	}
	return errs
}

func Required(field, message string) Constraint {
	return Constraint{Field: field, Message: message, ok: func(v any) bool {
		switch t := v.(type) {
		case nil:
			return false
		case string:
			return strings.TrimSpace(t) != ""
		case int64:
			return t != 0
		case float64:
			return true
		default:
			return true
		}
	}}
}

func Length(field string, min, max int, message string) Constraint {
	return Constraint{Field: field, Message: message, ok: func(v any) bool {
		s, _ := v.(string)
		return len(s) >= min && len(s) <= max
	}}
}

// Alpha rejects strings containing anything but letters and spaces.
func Alpha(field, message string) Constraint {
	return Constraint{Field: field, Message: message, ok: func(v any) bool {
		s, _ := v.(string)
		for _, r := range s {
			if !unicode.IsLetter(r) && r != ' ' {
				return false
			}
		}
		return true
	}}
}

func IntMin(field string, min int64, message string) Constraint {
	return Constraint{Field: field, Message: message, ok: func(v any) bool {
		n, ok := v.(int64)
		return ok && n >= min
	}}
}

func IntRange(field string, min, max int64, message string) Constraint {
	return Constraint{Field: field, Message: message, ok: func(v any) bool {
		n, ok := v.(int64)
		return ok && n >= min && n <= max
	}}
}
