package application

import (
	"fmt"
	"math"
	"strings"

	"arknotes/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "notebookID" -> "notebook ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"notebookID": "notebook ID",
		"noteID":     "note ID",
		"viewKind":   "view",
		"username":   "username",
		"password":   "password",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateViewKind parses a view name, returning a ValidationError for unknown ones.
func ValidateViewKind(fieldName, value string) (domain.ViewKind, error) {
	kind := domain.ParseViewKind(value)
	if kind == domain.ViewUnknown {
		return kind, &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected todo, notes or kanban, got: %q", value),
		}
	}
	return kind, nil
}

// ValidateFinite rejects NaN and infinite coordinates.
func ValidateFinite(fieldName string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be a finite number, got: %g", formatFieldName(fieldName), value),
		}
	}
	return nil
}

// ValidatePositive checks that a dimension is a finite number greater than zero.
func ValidatePositive(fieldName string, value float64) error {
	if !(value > 0) || math.IsInf(value, 0) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be positive, got: %g", formatFieldName(fieldName), value),
		}
	}
	return nil
}
