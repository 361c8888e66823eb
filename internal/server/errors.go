// Package server provides the HTTP API for the grammar check service.
package server

import (
	"fmt"
	"net/http"
)

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a requested record was not found.
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Upstream and storage failures never reach this mapping: they degrade to
// successful responses inside the pipeline.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
