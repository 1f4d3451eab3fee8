package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrContributionNotFound indicates that the requested contribution does not exist.
	ErrContributionNotFound = errors.New("contribution not found")
	// ErrContributionExists indicates that the repository and number were already ingested.
	ErrContributionExists = errors.New("contribution already exists")
	// ErrInvalidContributionID indicates an empty or malformed id.
	ErrInvalidContributionID = errors.New("invalid contribution ID")
)

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every invalid field of a request.
type ValidationError struct {
	Fields []FieldError
}

// Add records an invalid field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Err returns e when at least one field was recorded, nil otherwise.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ExternalFetchError wraps a failure of the review comment fetch.
type ExternalFetchError struct {
	Repo   string
	Number int
	Err    error
}

func (e *ExternalFetchError) Error() string {
	return fmt.Sprintf("fetch review comments for %s#%d: %v", e.Repo, e.Number, e.Err)
}

func (e *ExternalFetchError) Unwrap() error {
	return e.Err
}
