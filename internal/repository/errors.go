package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrConnectionFailure means the data store could not be reached.
	ErrConnectionFailure = errors.New("database connection failed")
	// ErrWriteFailure means an insert did not store exactly one row.
	ErrWriteFailure = errors.New("failed to save employee")
	// ErrQueryFailed means a read query could not be completed.
	ErrQueryFailed = errors.New("failed to list employees")
)

// classify wraps err with ErrConnectionFailure when the store was unreachable, otherwise with kind.
func classify(kind, err error) error {
	if isConnectionError(err) {
		return fmt.Errorf("%w: %w", ErrConnectionFailure, err)
	}
	return fmt.Errorf("%w: %w", kind, err)
}

func isConnectionError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	return errors.Is(err, driver.ErrBadConn)
}
