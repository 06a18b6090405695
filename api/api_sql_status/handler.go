package api_sql_status

import (
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/mysqlmanager/shared/constants"
	"github.com/dracory/mysqlmanager/shared/dbclient"
	"github.com/dracory/mysqlmanager/shared/web"
)

// StatusReader reports the last outcome kept for a profile.
type StatusReader interface {
	Status(profileID uint) dbclient.Outcome
}

// Handler reports the terminal state of a profile. A failed statement is
// still a successful status read; its message is in the data.
type Handler struct {
	terminal StatusReader
}

// New creates a new status handler
func New(terminal StatusReader) *Handler {
	return &Handler{terminal: terminal}
}

// ServeHTTP handles the HTTP request
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	id, err := web.IDParam(r, constants.ParamProfileID)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	data := dbclient.Describe(h.terminal.Status(id))
	data["profile_id"] = id
	api.Respond(w, r, api.SuccessWithData("status", data))
}
