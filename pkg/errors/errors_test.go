package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgumentError(t *testing.T) {
	err := NewArgumentError("payment", "order request is missing payment data")

	assert.Contains(t, err.Error(), "payment")

	var argErr *ArgumentError
	require.ErrorAs(t, fmt.Errorf("execute: %w", err), &argErr)
	assert.Equal(t, "payment", argErr.Field)
}

func TestRequestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &RequestError{Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")

	statusErr := NewRequestError(502, "bad gateway")
	assert.Contains(t, statusErr.Error(), "502")
}

func TestIsMissingContent(t *testing.T) {
	missing := NewNotEmbeddableError(ReasonMissingContent, "vendor says no")
	timeout := NewNotEmbeddableError(ReasonLoadTimeout, "")

	assert.True(t, IsMissingContent(missing))
	assert.True(t, IsMissingContent(fmt.Errorf("attach: %w", missing)))
	assert.False(t, IsMissingContent(timeout))
	assert.False(t, IsMissingContent(errors.New("other")))
}

func TestNotEmbeddableErrorMessage(t *testing.T) {
	withMsg := NewNotEmbeddableError(ReasonMissingContent, "content unavailable")
	assert.Contains(t, withMsg.Error(), "content unavailable")
	assert.Contains(t, withMsg.Error(), string(ReasonMissingContent))

	bare := NewNotEmbeddableError(ReasonUnknown, "")
	assert.Contains(t, bare.Error(), string(ReasonUnknown))
}

func TestInvalidLoginTokenError(t *testing.T) {
	cause := errors.New("timeout")
	err := &InvalidLoginTokenError{Err: cause}
	assert.ErrorIs(t, err, cause)

	statusOnly := &InvalidLoginTokenError{Status: 401}
	assert.Contains(t, statusOnly.Error(), "401")
}
