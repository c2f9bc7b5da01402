package service

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

// ErrValidation matches any *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// FieldError describes one rejected attribute.
type FieldError struct {
	Field   string
	Message string
}

// String renders the error the way it is shown to API clients, e.g. "Name can't be blank".
func (f FieldError) String() string {
	if f.Field == "" {
		return f.Message
	}
	return strings.ToUpper(f.Field[:1]) + f.Field[1:] + " " + f.Message
}

// ValidationError is returned when a gif cannot be stored because of its attributes.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Messages returns the human readable field errors.
func (e *ValidationError) Messages() []string {
	return lo.Map(e.Fields, func(f FieldError, _ int) string {
		return f.String()
	})
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}
