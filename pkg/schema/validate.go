package schema

import (
	"maps"
	"slices"
)

// Field pairs a Type with whether the argument must be present.
type Field struct {
	Type     Type
	Required bool
}

// Required declares a mandatory field.
func Required(t Type) Field { return Field{Type: t, Required: true} }

// Optional declares a field that may be omitted or null.
func Optional(t Type) Field { return Field{Type: t} }

// Schema maps argument names to their field declarations.
type Schema map[string]Field

// Validate checks data against the schema and reports every failure, ordered by field name.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	var errs []error
	for _, name := range slices.Sorted(maps.Keys(schema)) {
		field := schema[name]

		value, exists := data[name]
		if !exists || value == nil {
			if field.Required {
				errs = append(errs, &ValidationError{Key: name, Reason: "required"})
			}
			continue
		}

		if err := field.Type.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    name,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
