package ec2

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func apiError(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: "test"}
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, isNotFound(nil))
	assert.False(t, isNotFound(errors.New("plain")))
	assert.False(t, isNotFound(apiError("RequestLimitExceeded")))

	assert.True(t, isNotFound(apiError("InvalidRouteTableID.NotFound")))
	assert.True(t, isNotFound(apiError("InvalidTransitGatewayAttachmentID.NotFound")))
	assert.True(t, isNotFound(apiError("InvalidRoute.NotFound")))

	// Wrapped errors still classify.
	wrapped := fmt.Errorf("describe failed: %w", apiError("InvalidRouteTableID.NotFound"))
	assert.True(t, isNotFound(wrapped))
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, isRetryable(nil))
	assert.False(t, isRetryable(apiError("InvalidRouteTableID.NotFound")))
	assert.False(t, isRetryable(apiError("UnauthorizedOperation")))

	assert.True(t, isRetryable(apiError("RequestLimitExceeded")))
	assert.True(t, isRetryable(apiError("Throttling")))
	assert.True(t, isRetryable(apiError("IncorrectState")))

	assert.True(t, isRetryable(errors.New("read tcp: connection reset by peer")))
	assert.False(t, isRetryable(errors.New("no credentials configured")))
}
