package api_sql_explain

import (
	"context"
	"net/http"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/mysqlmanager/shared/constants"
	"github.com/dracory/mysqlmanager/shared/dbclient"
	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/dracory/mysqlmanager/shared/web"
)

// Executor runs a single statement and reports its outcome.
type Executor interface {
	Execute(ctx context.Context, p profile.ConnectionProfile, database, sqlText string) dbclient.Outcome
}

// SQLExplain returns the query plan of a statement. It runs outside the
// terminal, so it neither waits for nor replaces the profile's status.
type SQLExplain struct {
	profiles   web.ProfileGetter
	dispatcher Executor
}

// New creates a new SQLExplain handler
func New(profiles web.ProfileGetter, dispatcher Executor) *SQLExplain {
	return &SQLExplain{profiles: profiles, dispatcher: dispatcher}
}

// Handle processes the request
func (h *SQLExplain) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("sql_explain must be POST"))
		return
	}

	if err := r.ParseForm(); err != nil {
		api.Respond(w, r, api.Error("failed to parse form"))
		return
	}

	p, err := web.ProfileFromRequest(r, h.profiles)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	sqlText := strings.TrimSpace(r.Form.Get(constants.ParamSQL))
	if sqlText == "" {
		api.Respond(w, r, api.Error("sql is required"))
		return
	}
	if word, rest, ok := strings.Cut(sqlText, " "); ok && strings.EqualFold(word, "EXPLAIN") {
		sqlText = strings.TrimSpace(rest)
	}

	switch o := h.dispatcher.Execute(r.Context(), p, web.Param(r, constants.ParamDatabase), "EXPLAIN "+sqlText).(type) {
	case dbclient.RowSet:
		api.Respond(w, r, api.SuccessWithData("explain", map[string]any{
			"columns": o.Result.Columns,
			"plan":    o.Result.Rows,
		}))
	case dbclient.Failure:
		api.Respond(w, r, api.Error("explain error: "+o.Message))
	case dbclient.RowsAffected, dbclient.Idle, dbclient.Pending:
		api.Respond(w, r, api.Error("explain returned no plan"))
	}
}
