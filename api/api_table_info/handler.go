package api_table_info

import (
	"context"
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/mysqlmanager/shared/constants"
	"github.com/dracory/mysqlmanager/shared/dbclient"
	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/dracory/mysqlmanager/shared/web"
	"github.com/samber/lo"
)

// TableDescriber reports the column definitions of a table.
type TableDescriber interface {
	DescribeTable(ctx context.Context, p profile.ConnectionProfile, database, table string) (dbclient.QueryResult, error)
}

// Column is one column definition of a table.
type Column struct {
	Name     string  `json:"name"`
	DataType string  `json:"data_type"`
	Nullable bool    `json:"nullable"`
	Key      string  `json:"key,omitempty"`
	Default  *string `json:"default"`
	Extra    string  `json:"extra,omitempty"`
}

// TableInfo provides information about table structure
type TableInfo struct {
	profiles web.ProfileGetter
	browser  TableDescriber
}

// New creates a new TableInfo handler
func New(profiles web.ProfileGetter, browser TableDescriber) *TableInfo {
	return &TableInfo{profiles: profiles, browser: browser}
}

// Handle processes the request for table information
func (h *TableInfo) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	p, err := web.ProfileFromRequest(r, h.profiles)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	table := web.Param(r, constants.ParamTable)
	if table == "" {
		api.Respond(w, r, api.Error("table name is required"))
		return
	}

	result, err := h.browser.DescribeTable(r.Context(), p, web.Param(r, constants.ParamDatabase), table)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("table_info", map[string]any{
		"table":   table,
		"columns": columnsOf(result),
	}))
}

// columnsOf maps SHOW COLUMNS rows (Field, Type, Null, Key, Default, Extra) by header name.
func columnsOf(result dbclient.QueryResult) []Column {
	index := make(map[string]int, len(result.Columns))
	for i, name := range result.Columns {
		index[name] = i
	}
	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	return lo.Map(result.Rows, func(row []string, n int) Column {
		// a NULL default stays nil; the string 'NULL' is a real default
		var def *string
		if i, ok := index["Default"]; ok && i < len(row) && !result.IsNull(n, i) {
			def = lo.ToPtr(row[i])
		}
		return Column{
			Name:     cell(row, "Field"),
			DataType: cell(row, "Type"),
			Nullable: cell(row, "Null") == "YES",
			Key:      cell(row, "Key"),
			Default:  def,
			Extra:    cell(row, "Extra"),
		}
	})
}
