package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the bounds for readiness polling and API retries.
// Each value can be overridden via an environment variable.
type Timeouts struct {
	TableCreate       time.Duration // waiting for a new route table to become available
	Association       time.Duration // waiting for an association to settle either way
	RouteSettle       time.Duration // waiting for the active route set to converge
	Delete            time.Duration // disassociate-and-delete during teardown
	PollInterval      time.Duration // delay between readiness polls
	RetryMaxAttempts  int           // attempts for retryable API calls
	RetryInitialDelay time.Duration // first backoff delay for retryable API calls
}

// LoadTimeouts loads timeout configuration from environment variables.
// Unset or unparseable variables fall back to the default.
//
// Environment variables:
//   - TGWSYNC_TIMEOUT_TABLE_CREATE (default: 5m)
//   - TGWSYNC_TIMEOUT_ASSOCIATION (default: 5m)
//   - TGWSYNC_TIMEOUT_ROUTE_SETTLE (default: 2m)
//   - TGWSYNC_TIMEOUT_DELETE (default: 5m)
//   - TGWSYNC_POLL_INTERVAL (default: 5s)
//   - TGWSYNC_RETRY_MAX_ATTEMPTS (default: 5)
//   - TGWSYNC_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		TableCreate:       parseDuration("TGWSYNC_TIMEOUT_TABLE_CREATE", 5*time.Minute),
		Association:       parseDuration("TGWSYNC_TIMEOUT_ASSOCIATION", 5*time.Minute),
		RouteSettle:       parseDuration("TGWSYNC_TIMEOUT_ROUTE_SETTLE", 2*time.Minute),
		Delete:            parseDuration("TGWSYNC_TIMEOUT_DELETE", 5*time.Minute),
		PollInterval:      parseDuration("TGWSYNC_POLL_INTERVAL", 5*time.Second),
		RetryMaxAttempts:  parseInt("TGWSYNC_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("TGWSYNC_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return defaultVal
	}

	return n
}
