package dbclient

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Paging defaults for BrowseTable.
const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// SystemDatabases are hidden from ListDatabases.
var SystemDatabases = []string{"information_schema", "mysql", "performance_schema", "sys", "sakila", "world"}

// TablePage is one page of a browsed table. Truncated reports that
// further pages exist.
type TablePage struct {
	QueryResult
	Table    string `json:"table"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// Browser lists databases and tables and pages through table rows. Each
// call opens and releases its own session.
type Browser struct {
	open Opener
}

// NewBrowser builds a browser around open. A nil opener uses MySQLOpener.
func NewBrowser(open Opener) *Browser {
	if open == nil {
		open = MySQLOpener(DefaultDialTimeout)
	}
	return &Browser{open: open}
}

// Ping opens a session for the profile and releases it. It is used to test
// credentials before a profile is saved.
func (b *Browser) Ping(ctx context.Context, p profile.ConnectionProfile) error {
	_, release, err := openSession(ctx, b.open, p, p.Database)
	release()
	return err
}

// ListDatabases returns the server's databases without the system schemas.
func (b *Browser) ListDatabases(ctx context.Context, p profile.ConnectionProfile) ([]string, error) {
	names, err := b.stringColumn(ctx, p, "", "SHOW DATABASES")
	if err != nil {
		return nil, err
	}
	return lo.Filter(names, func(name string, _ int) bool {
		return !lo.Contains(SystemDatabases, strings.ToLower(name))
	}), nil
}

// ListTables returns the tables of database.
func (b *Browser) ListTables(ctx context.Context, p profile.ConnectionProfile, database string) ([]string, error) {
	if strings.TrimSpace(database) == "" && p.Database == "" {
		return nil, errors.New("database is required")
	}
	return b.stringColumn(ctx, p, database, "SHOW TABLES")
}

// BrowseTable returns page (1-based) of table's rows, pageSize rows at a time.
func (b *Browser) BrowseTable(ctx context.Context, p profile.ConnectionProfile, database, table string, page, pageSize int) (TablePage, error) {
	if strings.TrimSpace(table) == "" {
		return TablePage{}, errors.New("table is required")
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page-1 > (math.MaxInt-pageSize)/pageSize {
		return TablePage{}, fmt.Errorf("page %d is out of range", page)
	}

	db, release, err := openSession(ctx, b.open, p, database)
	defer release()
	if err != nil {
		return TablePage{}, err
	}

	// one extra row tells whether a next page exists
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d OFFSET %d", QuoteIdent(table), pageSize+1, (page-1)*pageSize)
	rows, err := db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return TablePage{}, &StatementError{Err: err}
	}
	defer rows.Close()

	result, err := Project(rows, pageSize)
	if err != nil {
		return TablePage{}, &StatementError{Err: err}
	}
	return TablePage{QueryResult: result, Table: table, Page: page, PageSize: pageSize}, nil
}

// DescribeTable returns the column definitions of table, one row per column
// as reported by SHOW COLUMNS.
func (b *Browser) DescribeTable(ctx context.Context, p profile.ConnectionProfile, database, table string) (QueryResult, error) {
	if strings.TrimSpace(table) == "" {
		return QueryResult{}, errors.New("table is required")
	}

	db, release, err := openSession(ctx, b.open, p, database)
	defer release()
	if err != nil {
		return QueryResult{}, err
	}

	rows, err := db.WithContext(ctx).Raw("SHOW COLUMNS FROM " + QuoteIdent(table)).Rows()
	if err != nil {
		return QueryResult{}, &StatementError{Err: err}
	}
	defer rows.Close()

	result, err := Project(rows, 0)
	if err != nil {
		return QueryResult{}, &StatementError{Err: err}
	}
	return result, nil
}

func (b *Browser) stringColumn(ctx context.Context, p profile.ConnectionProfile, database, query string) ([]string, error) {
	db, release, err := openSession(ctx, b.open, p, database)
	defer release()
	if err != nil {
		return nil, err
	}
	names, err := scanFirstColumn(db.WithContext(ctx), query)
	if err != nil {
		return nil, &StatementError{Err: err}
	}
	return names, nil
}

func scanFirstColumn(db *gorm.DB, query string) ([]string, error) {
	rows, err := db.Raw(query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result, err := Project(rows, 0)
	if err != nil {
		return nil, err
	}
	return lo.Map(result.Rows, func(row []string, _ int) string { return row[0] }), nil
}

// QuoteIdent backtick-quotes a MySQL identifier, doubling embedded backticks.
func QuoteIdent(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}
