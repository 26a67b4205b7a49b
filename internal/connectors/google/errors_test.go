package google

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func apiError(code int) error {
	return &googleapi.Error{Code: code, Message: http.StatusText(code)}
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsUnauthorized(apiError(http.StatusUnauthorized)))
	assert.True(t, IsForbidden(apiError(http.StatusForbidden)))
	assert.True(t, IsNotFound(apiError(http.StatusNotFound)))
	assert.True(t, IsRateLimited(apiError(http.StatusTooManyRequests)))

	assert.True(t, IsNotFound(ErrNotFound))
	assert.False(t, IsNotFound(apiError(http.StatusForbidden)))
	assert.False(t, IsRateLimited(errors.New("plain")))
	assert.False(t, IsForbidden(nil))
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusTooManyRequests, ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			original := apiError(tt.code)
			wrapped := WrapError(original)
			assert.ErrorIs(t, wrapped, tt.want)

			var gerr *googleapi.Error
			assert.ErrorAs(t, wrapped, &gerr, "original error stays in the chain")
		})
	}

	assert.NoError(t, WrapError(nil))
	internal := apiError(http.StatusInternalServerError)
	assert.Same(t, internal, WrapError(internal))
}

func TestRetryAfter(t *testing.T) {
	err := &googleapi.Error{Code: http.StatusTooManyRequests, Header: http.Header{"Retry-After": {"7"}}}
	assert.Equal(t, 7, RetryAfter(err))

	err.Header.Set("Retry-After", "Wed, 21 Oct 2015 07:28:00 GMT")
	assert.Zero(t, RetryAfter(err))

	assert.Zero(t, RetryAfter(apiError(http.StatusTooManyRequests)))
	assert.Zero(t, RetryAfter(errors.New("plain")))
}
