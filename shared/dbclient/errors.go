package dbclient

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ConnectionError wraps a network or authentication failure while opening a session.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "connection failed: " + message(e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// StatementError wraps a driver-reported execution failure.
type StatementError struct {
	Err error
}

func (e *StatementError) Error() string {
	return message(e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

// message returns the driver's text, keeping MySQL's "Error N (SQLSTATE): msg" form.
func message(err error) string {
	if err == nil {
		return "unknown error"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Error()
	}
	return err.Error()
}
