package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{BadRequest("bad input"), http.StatusBadRequest},
		{Unauthorized("who are you"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("duplicate"), http.StatusConflict},
		{Internal("boom", errors.New("db down")), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestStatus_Wrapped(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("gone"))
	assert.Equal(t, http.StatusNotFound, Status(err))
	assert.Equal(t, "gone", Message(err))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "not yours", Message(Forbidden("not yours")))
	assert.Equal(t, "Internal server error", Message(errors.New("sql: connection refused")))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("db down")
	err := Internal("query failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "query failed: db down", err.Error())
	assert.Equal(t, "query failed", NotFound("query failed").Error())
}
