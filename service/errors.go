package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrFailedValidation     = errors.New("failed validation")
	ErrRecordNotFound       = errors.New("record not found")
	ErrDuplicateRecord      = errors.New("duplicate record")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrBlobStoreDisabled    = errors.New("image upload is not configured on this server")
)

// ValidationError carries the field errors of a rejected request.
// It matches ErrFailedValidation with errors.Is.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%q %s", k, e.Errors[k]))
	}
	return ErrFailedValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrFailedValidation
}

// failedValidation wraps a validation error map.
func failedValidation(errorMap map[string]string) error {
	return &ValidationError{Errors: errorMap}
}
