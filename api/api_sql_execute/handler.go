package api_sql_execute

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

// Submitter runs a statement for a profile and delivers its outcome once.
type Submitter interface {
	Submit(ctx context.Context, p profile.ConnectionProfile, database, sqlText string, done func(dbclient.Outcome)) <-chan dbclient.Outcome
}

// SQLExecute handles SQL statement execution
type SQLExecute struct {
	profiles web.ProfileGetter
	terminal Submitter
}

// New creates a new SQLExecute handler
func New(profiles web.ProfileGetter, terminal Submitter) *SQLExecute {
	return &SQLExecute{profiles: profiles, terminal: terminal}
}

// Handle processes the request. With async=true the response only
// acknowledges the submission and the outcome is read with sql_status.
func (h *SQLExecute) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("sql_execute must be POST"))
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
	database := web.Param(r, constants.ParamDatabase)

	done := h.terminal.Submit(r.Context(), p, database, sqlText, nil)

	if strings.EqualFold(web.Param(r, "async"), "true") {
		select {
		case o := <-done:
			// already finished, or rejected as busy
			writeOutcome(w, r, o)
		default:
			api.Respond(w, r, api.SuccessWithData(dbclient.StatePending, dbclient.Describe(dbclient.Pending{})))
		}
		return
	}

	select {
	case o := <-done:
		writeOutcome(w, r, o)
	case <-r.Context().Done():
		// the client went away; the statement still completes and is kept as status
	}
}

func writeOutcome(w http.ResponseWriter, r *http.Request, o dbclient.Outcome) {
	switch o := o.(type) {
	case dbclient.Failure:
		api.Respond(w, r, api.Error(o.Message))
	case dbclient.RowSet, dbclient.RowsAffected, dbclient.Idle, dbclient.Pending:
		data := dbclient.Describe(o)
		api.Respond(w, r, api.SuccessWithData(data["state"].(string), data))
	}
}
