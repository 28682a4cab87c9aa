package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusAndRetryable(t *testing.T) {
	cases := []struct {
		err       *AppError
		status    int
		retryable bool
	}{
		{ValidationFailed("bad", "name is required"), http.StatusBadRequest, false},
		{InvalidID("feedback", "zzz"), http.StatusBadRequest, false},
		{NotFound("feedback", "65f0c0ffee"), http.StatusNotFound, false},
		{Unauthorized("missing token"), http.StatusUnauthorized, false},
		{StoreFailure(errors.New("dial tcp: refused")), http.StatusServiceUnavailable, true},
		{Disabled("object storage"), http.StatusServiceUnavailable, false},
		{Internal("boom", nil), http.StatusInternalServerError, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.status, tc.err.HTTPStatus, tc.err.Error())
		require.Equal(t, tc.retryable, tc.err.Retryable, tc.err.Error())
	}
}

func TestIsAndUnwrap(t *testing.T) {
	raw := errors.New("connection reset")
	err := fmt.Errorf("list: %w", StoreFailure(raw))

	require.True(t, Is(err, StoreUnavailable))
	require.False(t, Is(err, NotFoundError))
	require.ErrorIs(t, err, raw)
	require.False(t, Is(raw, StoreUnavailable))
}

func TestErrorString(t *testing.T) {
	require.Equal(t, "NOT_FOUND: feedback not found (ID: abc)", NotFound("feedback", "abc").Error())
	require.Equal(t, "AUTHENTICATION_ERROR: nope", Unauthorized("nope").Error())
}
