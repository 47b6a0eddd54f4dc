package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/aevon-lab/project-tally/internal/core/storage"
	"github.com/lib/pq"
)

// SQLSTATE codes treated as transient. Class 08 (connection exception) is
// matched by prefix below.
var transientPqCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"53300": true, // too_many_connections
	"57014": true, // query_canceled (statement_timeout)
	"57P01": true, // admin_shutdown
	"57P02": true, // crash_shutdown
	"57P03": true, // cannot_connect_now
}

// classify wraps retryable store failures with storage.ErrTransient so
// callers can test with errors.Is instead of driver error codes.
// Non-retryable errors pass through untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isTransient(err) {
		return fmt.Errorf("%w: %w", storage.ErrTransient, err)
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		if len(code) >= 2 && code[:2] == "08" {
			return true
		}
		return transientPqCodes[code]
	}

	return false
}
