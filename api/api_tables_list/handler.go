package api_tables_list

import (
	"context"
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/mysqlmanager/shared/constants"
	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/dracory/mysqlmanager/shared/web"
)

// TableLister lists the tables of a database.
type TableLister interface {
	ListTables(ctx context.Context, p profile.ConnectionProfile, database string) ([]string, error)
}

// TablesList lists the tables of one database on a saved profile's server.
// The database defaults to the profile's own.
type TablesList struct {
	profiles web.ProfileGetter
	browser  TableLister
}

// New creates a new TablesList handler
func New(profiles web.ProfileGetter, browser TableLister) *TablesList {
	return &TablesList{profiles: profiles, browser: browser}
}

// Handle processes the request to list database tables
func (h *TablesList) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	p, err := web.ProfileFromRequest(r, h.profiles)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	database := web.Param(r, constants.ParamDatabase)
	if database == "" {
		database = p.Database
	}

	tables, err := h.browser.ListTables(r.Context(), p, database)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("tables_listed", map[string]any{
		"database": database,
		"tables":   tables,
		"count":    len(tables),
	}))
}
