package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
)

// IsUnavailable reports whether err means the store could not be reached in time,
// as opposed to a query that ran and failed.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
