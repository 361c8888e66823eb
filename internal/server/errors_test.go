package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "text", Message: "No text provided"}
	assert.Equal(t, "validation error: text - No text provided", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrNotFound(t *testing.T) {
	err := &ErrNotFound{Resource: "check"}
	assert.Equal(t, "check not found", err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "validation error",
			err:      &ErrValidation{Field: "text", Message: "too long"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "not found",
			err:      &ErrNotFound{Resource: "check"},
			expected: http.StatusNotFound,
		},
		{
			name:     "unknown error",
			err:      assert.AnError,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
