package api_profile_get

import (
	"errors"
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/mysqlmanager/shared/constants"
	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/dracory/mysqlmanager/shared/web"
)

// Handler returns one saved profile, without its password.
type Handler struct {
	profiles web.ProfileGetter
}

// New creates a new profile get handler
func New(profiles web.ProfileGetter) *Handler {
	return &Handler{profiles: profiles}
}

// ServeHTTP handles the HTTP request
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	id, err := web.IDParam(r, constants.ParamID)
	if err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	p, err := h.profiles.Get(r.Context(), id)
	if errors.Is(err, profile.ErrProfileNotFound) {
		api.Respond(w, r, api.Error("profile not found"))
		return
	}
	if err != nil {
		api.Respond(w, r, api.Error("failed to get profile: "+err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("profile_found", map[string]any{
		"profile": p,
	}))
}
