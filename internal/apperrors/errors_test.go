package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{BadRequest("bad"), http.StatusBadRequest},
		{Unauthorized("no"), http.StatusUnauthorized},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("clash"), http.StatusConflict},
		{PreconditionFailed("state"), http.StatusPreconditionFailed},
		{Internal("boom"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, HTTPStatus(c.err))
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("Task with ID %d not found", 7))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
}

func TestMessageFormatting(t *testing.T) {
	err := NotFound("Task with ID %d not found", 42)
	assert.Equal(t, "Task with ID 42 not found", err.Error())
}
