package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		kind   Kind
		status int
	}{
		{Validation, http.StatusBadRequest},
		{Forbidden, http.StatusForbidden},
		{WeakCredential, http.StatusBadRequest},
		{Conflict, http.StatusBadRequest},
		{InvalidCredential, http.StatusUnauthorized},
		{InvalidToken, http.StatusUnauthorized},
		{NotFound, http.StatusNotFound},
		{Infrastructure, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.status, New(tt.kind, "msg").StatusCode())
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Conflict, KindOf(New(Conflict, "dup")))
	assert.Equal(t, Infrastructure, KindOf(errors.New("plain")))

	wrapped := fmt.Errorf("context: %w", New(NotFound, "missing"))
	assert.Equal(t, NotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, NotFound))
	assert.False(t, Is(wrapped, Conflict))
}
