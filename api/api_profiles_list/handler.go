package api_profiles_list

import (
	"context"
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/mysqlmanager/shared/profile"
)

// ProfileLister lists saved profiles.
type ProfileLister interface {
	List(ctx context.Context) ([]profile.ConnectionProfile, error)
}

// Handler handles the profiles list API requests
type Handler struct {
	profiles ProfileLister
}

// New creates a new profiles list handler
func New(profiles ProfileLister) *Handler {
	return &Handler{profiles: profiles}
}

// ServeHTTP handles the HTTP request
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	list, err := h.profiles.List(r.Context())
	if err != nil {
		api.Respond(w, r, api.Error("failed to get profiles: "+err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("profiles_listed", map[string]any{
		"profiles": list,
		"count":    len(list),
	}))
}
