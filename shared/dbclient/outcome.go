package dbclient

import "fmt"

// QueryResult is a display-oriented projection of a row set.
type QueryResult struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	// Truncated is set when the row limit stopped iteration early.
	Truncated bool `json:"truncated"`
	// Nulls marks the cells that were SQL NULL, parallel to Rows.
	Nulls [][]bool `json:"-"`
}

// IsNull reports whether the cell at row, col was SQL NULL rather than text.
func (q QueryResult) IsNull(row, col int) bool {
	if row < 0 || row >= len(q.Nulls) || col < 0 || col >= len(q.Nulls[row]) {
		return false
	}
	return q.Nulls[row][col]
}

// Outcome is the status of the last submitted statement. It is one of
// Idle, Pending, RowSet, RowsAffected or Failure.
type Outcome interface {
	outcome()
}

// Idle means no statement has run yet.
type Idle struct{}

// Pending means a statement was submitted and the driver has not answered.
type Pending struct{}

// RowSet is the result of a query-shaped statement.
type RowSet struct {
	Result QueryResult
}

// RowsAffected is the driver-reported count of a mutation-shaped statement.
type RowsAffected struct {
	Count int64
}

// Failure carries the human-readable message of a failed statement.
type Failure struct {
	Message string
}

func (Idle) outcome()         {}
func (Pending) outcome()      {}
func (RowSet) outcome()       {}
func (RowsAffected) outcome() {}
func (Failure) outcome()      {}

// State names used when outcomes are serialized.
const (
	StateIdle         = "idle"
	StatePending      = "pending"
	StateRowSet       = "rows"
	StateRowsAffected = "rows_affected"
	StateFailure      = "error"
)

// Describe flattens an outcome into a JSON-friendly map.
func Describe(o Outcome) map[string]any {
	switch v := o.(type) {
	case Idle:
		return map[string]any{"state": StateIdle}
	case Pending:
		return map[string]any{"state": StatePending}
	case RowSet:
		return map[string]any{
			"state":     StateRowSet,
			"columns":   v.Result.Columns,
			"rows":      v.Result.Rows,
			"row_count": len(v.Result.Rows),
			"truncated": v.Result.Truncated,
		}
	case RowsAffected:
		return map[string]any{"state": StateRowsAffected, "rows_affected": v.Count}
	case Failure:
		return map[string]any{"state": StateFailure, "message": v.Message}
	default:
		panic(fmt.Sprintf("dbclient: unknown outcome %T", o))
	}
}
