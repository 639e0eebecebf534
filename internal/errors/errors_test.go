package errors

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"not found", NewNotFoundError("audit", "a1"), ErrNotFound},
		{"validation", NewValidationError("payoutGraceDays", -1, "must be >= 0"), ErrInvalidInput},
		{"input", NewInputError("ledger.csv", "cannot open file", os.ErrNotExist), ErrInvalidInput},
		{"conflict", NewConflictError("audit", "published", "already published"), ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("step failed: %w", tt.err)
			assert.True(t, Is(wrapped, tt.target))
		})
	}
}

func TestInputError_UnwrapsCause(t *testing.T) {
	err := NewInputError("export.csv", "cannot open file", os.ErrNotExist)
	assert.True(t, Is(err, os.ErrNotExist))
	assert.Equal(t, "export.csv: cannot open file: file does not exist", err.Error())

	var inputErr *InputError
	assert.True(t, As(fmt.Errorf("load: %w", err), &inputErr))
	assert.Equal(t, "export.csv", inputErr.Path)
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "validation failed: bad", NewValidationError("", nil, "bad").Error())
	assert.Equal(t, "validation failed for field x: bad", NewValidationError("x", 1, "bad").Error())
}
