package api_databases_list

import (
	"context"
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/dracory/mysqlmanager/shared/web"
)

// DatabaseLister lists the user databases of a server.
type DatabaseLister interface {
	ListDatabases(ctx context.Context, p profile.ConnectionProfile) ([]string, error)
}

// Handler lists the databases reachable through a saved profile
type Handler struct {
	profiles web.ProfileGetter
	browser  DatabaseLister
}

// New creates a new databases list handler
func New(profiles web.ProfileGetter, browser DatabaseLister) *Handler {
	return &Handler{profiles: profiles, browser: browser}
}

// ServeHTTP handles the HTTP request
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	p, err := web.ProfileFromRequest(r, h.profiles)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	databases, err := h.browser.ListDatabases(r.Context(), p)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("databases_listed", map[string]any{
		"profile_id": p.ID,
		"databases":  databases,
		"count":      len(databases),
	}))
}
