package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"athletrack/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("loading workout: %w", apperr.NotFound("Workout not found"))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(wrapped))
	assert.True(t, apperr.Is(wrapped, apperr.KindNotFound))

	assert.Equal(t, apperr.KindInternal, apperr.KindOf(errors.New("boom")))
	assert.False(t, apperr.Is(nil, apperr.KindInternal))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[apperr.Kind]int{
		apperr.KindValidation:     http.StatusBadRequest,
		apperr.KindConflict:       http.StatusBadRequest,
		apperr.KindAuthentication: http.StatusUnauthorized,
		apperr.KindAuthorization:  http.StatusForbidden,
		apperr.KindNotFound:       http.StatusNotFound,
		apperr.KindInternal:       http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, apperr.HTTPStatus(kind), kind.String())
	}
}

func TestInternalUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Internal("Could not load users", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Could not load users: connection refused", err.Error())
}
