package validate

// Error carries the per-field messages of a failed schema check. The API
// layer renders it as a 400 with an errors map.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	return "validation error"
}

// Check runs the schema and returns a typed error when anything fails.
func Check(schema Schema, values Values) error {
	if errs := schema.Validate(values); len(errs) > 0 {
		return &Error{Fields: errs}
	}
	return nil
}
