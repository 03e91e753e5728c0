package application

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
)

// ErrInvalidInput marks a blank dog name or breed.
var ErrInvalidInput = errors.New("invalid dog input")

// InputError lists the add-dog form fields that failed validation, keyed by field name.
type InputError struct {
	Fields map[string]string
}

func (e *InputError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, e.Fields[field])
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, ", ")
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func validateAddDog(name, breed string) error {
	fields := map[string]string{}
	if domain.IsBlank(name) {
		fields["name"] = "dog name is required"
	}
	if domain.IsBlank(breed) {
		fields["breed"] = "dog breed is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return &InputError{Fields: fields}
}
