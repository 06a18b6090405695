package api_tables_list_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dracory/mysqlmanager/api/api_tables_list"
	"github.com/dracory/mysqlmanager/shared/dbclient"
	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProfiles map[uint]profile.ConnectionProfile

func (s stubProfiles) Get(_ context.Context, id uint) (profile.ConnectionProfile, error) {
	p, ok := s[id]
	if !ok {
		return profile.ConnectionProfile{}, profile.ErrProfileNotFound
	}
	return p, nil
}

// recordingBrowser answers with fixed tables and remembers the database asked for.
type recordingBrowser struct {
	asked []string
}

func (b *recordingBrowser) ListTables(_ context.Context, _ profile.ConnectionProfile, database string) ([]string, error) {
	b.asked = append(b.asked, database)
	return []string{"orders", "users"}, nil
}

type response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Database string   `json:"database"`
		Tables   []string `json:"tables"`
		Count    int      `json:"count"`
	} `json:"data"`
}

func call(t *testing.T, h *api_tables_list.TablesList, method, target string) response {
	t.Helper()
	rr := httptest.NewRecorder()
	h.Handle(rr, httptest.NewRequest(method, target, nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestTablesList_Handle(t *testing.T) {
	profiles := stubProfiles{1: {ID: 1, Alias: "local", Database: "shop"}}

	t.Run("successful table list", func(t *testing.T) {
		browser := &recordingBrowser{}
		resp := call(t, api_tables_list.New(profiles, browser), http.MethodGet, "/?profile_id=1&database=blog")

		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, "blog", resp.Data.Database)
		assert.Equal(t, []string{"orders", "users"}, resp.Data.Tables)
		assert.Equal(t, 2, resp.Data.Count)
		assert.Equal(t, []string{"blog"}, browser.asked)
	})

	t.Run("defaults to the profile database", func(t *testing.T) {
		browser := &recordingBrowser{}
		resp := call(t, api_tables_list.New(profiles, browser), http.MethodGet, "/?profile_id=1")

		assert.Equal(t, "shop", resp.Data.Database)
		assert.Equal(t, []string{"shop"}, browser.asked)
	})

	t.Run("no database at all", func(t *testing.T) {
		noDefault := stubProfiles{2: {ID: 2, Alias: "bare"}}
		resp := call(t, api_tables_list.New(noDefault, dbclient.NewBrowser(nil)), http.MethodGet, "/?profile_id=2")

		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, "database is required", resp.Message)
	})

	t.Run("unsupported HTTP method", func(t *testing.T) {
		resp := call(t, api_tables_list.New(profiles, &recordingBrowser{}), http.MethodPost, "/?profile_id=1")

		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, "method not allowed", resp.Message)
	})
}
