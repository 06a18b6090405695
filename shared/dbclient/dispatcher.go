// Package dbclient talks to MySQL servers on behalf of saved profiles:
// ad-hoc statements, database and table listings, and table paging.
// Every operation opens its own session and releases it before returning.
package dbclient

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/dracory/mysqlmanager/shared/sqlhighlight"
)

// DefaultRowLimit caps the rows a single statement may return.
const DefaultRowLimit = 1000

// queryVerbs are leading words whose statements return a row set.
var queryVerbs = map[string]bool{
	"SELECT": true, "SHOW": true, "DESCRIBE": true, "DESC": true,
	"EXPLAIN": true, "WITH": true, "TABLE": true, "VALUES": true,
	"HELP": true, "CHECK": true, "ANALYZE": true, "OPTIMIZE": true,
	"REPAIR": true, "CHECKSUM": true, "PRAGMA": true, "CALL": true,
}

// ReturnsRows reports whether the statement is expected to produce a row set.
// Statements read this way that return no columns are reported as
// RowsAffected with a zero count.
func ReturnsRows(sqlText string) bool {
	return queryVerbs[sqlhighlight.LeadingWord(sqlText)]
}

// Dispatcher executes single statements, each on its own session.
// Statements are sent verbatim: values must already be embedded as literals.
type Dispatcher struct {
	open     Opener
	rowLimit int
	logger   *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithRowLimit sets the row cap; zero or less means unbounded.
func WithRowLimit(limit int) DispatcherOption {
	return func(d *Dispatcher) { d.rowLimit = limit }
}

// WithLogger sets the logger used for failures.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher builds a dispatcher around open. A nil opener uses MySQLOpener.
func NewDispatcher(open Opener, options ...DispatcherOption) *Dispatcher {
	if open == nil {
		open = MySQLOpener(DefaultDialTimeout)
	}
	d := &Dispatcher{
		open:     open,
		rowLimit: DefaultRowLimit,
		logger:   slog.Default(),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// Execute runs one statement against database (or the profile default when
// empty) and classifies the result. It never returns an error: every
// failure becomes a Failure outcome. The session is always released.
func (d *Dispatcher) Execute(ctx context.Context, p profile.ConnectionProfile, database, sqlText string) Outcome {
	sqlText = strings.TrimSpace(sqlText)
	if sqlText == "" {
		return Failure{Message: "sql is required"}
	}

	outcome, err := d.execute(ctx, p, database, sqlText)
	if err != nil {
		var connErr *ConnectionError
		d.logger.Warn("statement failed",
			slog.Uint64("profile_id", uint64(p.ID)),
			slog.String("verb", sqlhighlight.LeadingWord(sqlText)),
			slog.Bool("connection", errors.As(err, &connErr)),
			slog.String("error", err.Error()),
		)
		return Failure{Message: err.Error()}
	}
	return outcome
}

func (d *Dispatcher) execute(ctx context.Context, p profile.ConnectionProfile, database, sqlText string) (Outcome, error) {
	db, release, err := openSession(ctx, d.open, p, database)
	defer release()
	if err != nil {
		return nil, err
	}

	if !ReturnsRows(sqlText) {
		res := db.WithContext(ctx).Exec(sqlText)
		if res.Error != nil {
			return nil, &StatementError{Err: res.Error}
		}
		return RowsAffected{Count: res.RowsAffected}, nil
	}

	rows, err := db.WithContext(ctx).Raw(sqlText).Rows()
	if err != nil {
		return nil, &StatementError{Err: err}
	}
	defer rows.Close()

	result, err := Project(rows, d.rowLimit)
	if err != nil {
		return nil, &StatementError{Err: err}
	}
	if len(result.Columns) == 0 {
		return RowsAffected{Count: 0}, nil
	}
	return RowSet{Result: result}, nil
}
