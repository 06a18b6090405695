package api_connection_check

import (
	"context"
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/mysqlmanager/shared/constants"
	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/dracory/mysqlmanager/shared/web"
)

// Pinger opens and releases a session for a profile.
type Pinger interface {
	Ping(ctx context.Context, p profile.ConnectionProfile) error
}

// ConnectionCheck checks credentials before (or after) a profile is saved.
type ConnectionCheck struct {
	profiles web.ProfileGetter
	pinger   Pinger
}

// New creates a new connection test handler
func New(profiles web.ProfileGetter, pinger Pinger) *ConnectionCheck {
	return &ConnectionCheck{profiles: profiles, pinger: pinger}
}

// ServeHTTP tests either the saved profile named by profile_id or the
// credentials posted in the form.
func (h *ConnectionCheck) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("connection_test must be POST"))
		return
	}

	if err := r.ParseForm(); err != nil {
		api.Respond(w, r, api.Error("failed to parse form"))
		return
	}

	var p profile.ConnectionProfile
	if web.Param(r, constants.ParamProfileID) != "" {
		saved, err := web.ProfileFromRequest(r, h.profiles)
		if err != nil {
			api.Respond(w, r, api.Error(err.Error()))
			return
		}
		p = saved
	} else {
		p = web.ProfileFromForm(r)
		// an alias is not needed to connect
		if p.Alias == "" {
			p.Alias = "untitled"
		}
		if err := p.Validate(); err != nil {
			api.Respond(w, r, api.Error(err.Error()))
			return
		}
	}

	if err := h.pinger.Ping(r.Context(), p); err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("connected", map[string]any{
		"host": p.Host,
		"port": p.Port,
	}))
}
