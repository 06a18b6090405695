package api_rows_browse

import (
	"context"
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/mysqlmanager/shared/constants"
	"github.com/dracory/mysqlmanager/shared/dbclient"
	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/dracory/mysqlmanager/shared/web"
)

// TableBrowser pages through table rows.
type TableBrowser interface {
	BrowseTable(ctx context.Context, p profile.ConnectionProfile, database, table string, page, pageSize int) (dbclient.TablePage, error)
}

// RowsBrowse handles row browsing operations
type RowsBrowse struct {
	profiles web.ProfileGetter
	browser  TableBrowser
	pageSize int
}

// New creates a new RowsBrowse handler. pageSize is used when the request
// does not name one.
func New(profiles web.ProfileGetter, browser TableBrowser, pageSize int) *RowsBrowse {
	if pageSize < 1 {
		pageSize = dbclient.DefaultPageSize
	}
	return &RowsBrowse{profiles: profiles, browser: browser, pageSize: pageSize}
}

// Handle processes the request
func (h *RowsBrowse) Handle(w http.ResponseWriter, r *http.Request) {
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
		api.Respond(w, r, api.Error("table is required"))
		return
	}

	page := web.IntParam(r, constants.ParamPage, 1)
	pageSize := web.IntParam(r, constants.ParamPageSize, h.pageSize)

	result, err := h.browser.BrowseTable(r.Context(), p, web.Param(r, constants.ParamDatabase), table, page, pageSize)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("rows", map[string]any{
		"table":     result.Table,
		"page":      result.Page,
		"page_size": result.PageSize,
		"columns":   result.Columns,
		"rows":      result.Rows,
		"row_count": len(result.Rows),
		"has_more":  result.Truncated,
	}))
}
