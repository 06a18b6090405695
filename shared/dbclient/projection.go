package dbclient

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/samber/lo"
)

// NullText is the display text of a NULL cell.
const NullText = "NULL"

// Project reads the column names once and then every row in cursor order,
// converting each cell to its string form. When limit > 0 at most limit
// rows are read and Truncated reports whether more were available.
// The caller owns rows and must close it.
func Project(rows *sql.Rows, limit int) (QueryResult, error) {
	cols, err := rows.Columns()
	if err != nil {
		return QueryResult{}, err
	}

	result := QueryResult{Columns: cols, Rows: [][]string{}, Nulls: [][]bool{}}
	values := make([]any, len(cols))
	ptrs := lo.Map(values, func(_ any, i int) any { return &values[i] })

	for rows.Next() {
		if limit > 0 && len(result.Rows) == limit {
			result.Truncated = true
			break
		}
		if err := rows.Scan(ptrs...); err != nil {
			return QueryResult{}, err
		}
		result.Rows = append(result.Rows, lo.Map(values, func(v any, _ int) string { return cellText(v) }))
		result.Nulls = append(result.Nulls, lo.Map(values, func(v any, _ int) bool { return v == nil }))
	}

	if err := rows.Err(); err != nil {
		return QueryResult{}, err
	}
	return result, nil
}

func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return NullText
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		return val.Format(time.DateTime)
	default:
		return fmt.Sprint(val)
	}
}
