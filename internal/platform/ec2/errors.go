package ec2

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

// isNotFound checks if the error reports a missing resource. The EC2 API
// uses per-resource codes of the form Invalid<Resource>ID.NotFound.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return strings.HasSuffix(code, ".NotFound") || strings.HasSuffix(code, ".Unknown")
	}

	return false
}

// isRetryable checks if the error is a transient throttling or state
// conflict the caller should retry.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "RequestLimitExceeded", "Throttling", "ThrottlingException", "IncorrectState":
			return true
		}
		return false
	}

	// Transport-level failures come through as plain errors.
	errStr := err.Error()
	return strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "timeout")
}
