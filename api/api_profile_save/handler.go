package api_profile_save

import (
	"context"
	"errors"
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/mysqlmanager/shared/constants"
	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/dracory/mysqlmanager/shared/web"
)

// ProfileStore defines the profile storage operations used on save
type ProfileStore interface {
	Get(ctx context.Context, id uint) (profile.ConnectionProfile, error)
	Save(ctx context.Context, p *profile.ConnectionProfile) error
}

// ProfileSave handles profile save requests
type ProfileSave struct {
	store ProfileStore
}

// New creates a new ProfileSave handler
func New(store ProfileStore) *ProfileSave {
	return &ProfileSave{store: store}
}

// Handle processes the profile save request. Without an id a new profile
// is created; with one the stored profile is replaced. An empty password
// on an existing profile keeps the stored one.
func (h *ProfileSave) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("profile_save must be POST"))
		return
	}

	if err := r.ParseForm(); err != nil {
		api.Respond(w, r, api.Error("failed to parse form"))
		return
	}

	p := web.ProfileFromForm(r)

	if web.Param(r, constants.ParamID) != "" {
		id, err := web.IDParam(r, constants.ParamID)
		if err != nil {
			api.Respond(w, r, api.Error(err.Error()))
			return
		}
		p.ID = id

		if p.Password == "" {
			existing, err := h.store.Get(r.Context(), id)
			if err != nil && !errors.Is(err, profile.ErrProfileNotFound) {
				api.Respond(w, r, api.Error(err.Error()))
				return
			}
			p.Password = existing.Password
		}
	}

	if err := h.store.Save(r.Context(), &p); err != nil {
		api.Respond(w, r, api.Error(err.Error()))
		return
	}

	api.Respond(w, r, api.SuccessWithData("profile saved", map[string]any{
		"profile": p,
	}))
}
