// Package web holds request helpers shared by the API handlers.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dracory/mysqlmanager/shared/constants"
	"github.com/dracory/mysqlmanager/shared/profile"
)

// ProfileGetter loads a saved profile by id.
type ProfileGetter interface {
	Get(ctx context.Context, id uint) (profile.ConnectionProfile, error)
}

// Param returns the trimmed query or form value for key.
func Param(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// IntParam returns the integer value for key, or def when absent or malformed.
func IntParam(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(Param(r, key))
	if err != nil {
		return def
	}
	return v
}

// IDParam parses a positive id from key.
func IDParam(r *http.Request, key string) (uint, error) {
	raw := Param(r, key)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return uint(id), nil
}

// ProfileFromRequest resolves the profile named by the profile_id parameter.
func ProfileFromRequest(r *http.Request, profiles ProfileGetter) (profile.ConnectionProfile, error) {
	id, err := IDParam(r, constants.ParamProfileID)
	if err != nil {
		return profile.ConnectionProfile{}, err
	}
	p, err := profiles.Get(r.Context(), id)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return profile.ConnectionProfile{}, errors.New("profile not found")
	}
	return p, err
}

// ProfileFromForm builds an unsaved profile from the submitted form fields.
func ProfileFromForm(r *http.Request) profile.ConnectionProfile {
	return profile.ConnectionProfile{
		Alias:    Param(r, "alias"),
		Host:     Param(r, "host"),
		Port:     IntParam(r, "port", 0),
		Database: Param(r, constants.ParamDatabase),
		Username: Param(r, "username"),
		// passwords are taken verbatim
		Password: r.FormValue("password"),
	}
}
