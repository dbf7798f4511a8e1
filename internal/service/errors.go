package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrInvalidCredentials is returned for any failed email/password check.
	// Unknown email, wrong password and inactive account are indistinguishable.
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")

	// ErrAuthentication is returned when a token is missing, unknown or bound
	// to an inactive account.
	ErrAuthentication = errors.New("invalid token")

	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError carries field-level messages for rejected input.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an error with a single field message.
func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

// Add records a message for field, keeping the first one reported.
func (v *ValidationError) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = make(map[string]string)
	}
	if _, exists := v.Fields[field]; !exists {
		v.Fields[field] = message
	}
}

// Empty reports whether no field failed.
func (v *ValidationError) Empty() bool {
	return v == nil || len(v.Fields) == 0
}

func (v *ValidationError) Error() string {
	if v.Empty() {
		return "validation failed"
	}
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
