package api_profile_delete

import (
	"context"
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/mysqlmanager/shared/constants"
	"github.com/dracory/mysqlmanager/shared/web"
)

// ProfileDeleter removes a saved profile.
type ProfileDeleter interface {
	Delete(ctx context.Context, id uint) error
}

// StatusResetter forgets the terminal state kept for a profile.
type StatusResetter interface {
	Reset(profileID uint)
}

// Handler deletes profiles by id. Deleting an unknown id succeeds.
type Handler struct {
	profiles ProfileDeleter
	terminal StatusResetter
}

// New creates a new profile delete handler. terminal may be nil.
func New(profiles ProfileDeleter, terminal StatusResetter) *Handler {
	return &Handler{profiles: profiles, terminal: terminal}
}

// ServeHTTP handles the HTTP request
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("profile_delete must be POST"))
		return
	}

	id, err := web.IDParam(r, constants.ParamID)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	if err := h.profiles.Delete(r.Context(), id); err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}
	if h.terminal != nil {
		h.terminal.Reset(id)
	}

	api.Respond(w, r, api.SuccessWithData("profile deleted", map[string]any{
		"id": id,
	}))
}
