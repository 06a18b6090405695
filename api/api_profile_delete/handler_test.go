package api_profile_delete_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/dracory/mysqlmanager/api/api_profile_delete"
	"github.com/dracory/mysqlmanager/shared/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resetRecorder struct {
	ids []uint
}

func (r *resetRecorder) Reset(id uint) { r.ids = append(r.ids, id) }

func deleteRequest(t *testing.T, h http.Handler, id string) (status, message string) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/?id="+id, nil))

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Status, resp.Message
}

func TestHandler_ServeHTTP(t *testing.T) {
	store, err := profile.Open("sqlite", filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	p := &profile.ConnectionProfile{Alias: "tmp", Host: "localhost", Port: 3306, Username: "root", Password: "pw"}
	require.NoError(t, store.Save(context.Background(), p))
	id := strconv.Itoa(int(p.ID))

	resets := &resetRecorder{}
	h := api_profile_delete.New(store, resets)

	status, _ := deleteRequest(t, h, id)
	assert.Equal(t, "success", status)

	_, err = store.Get(context.Background(), p.ID)
	assert.True(t, errors.Is(err, profile.ErrProfileNotFound))
	assert.Equal(t, []uint{p.ID}, resets.ids)

	t.Run("deleting again is a no-op", func(t *testing.T) {
		status, _ := deleteRequest(t, h, id)
		assert.Equal(t, "success", status)
	})

	t.Run("missing id", func(t *testing.T) {
		status, message := deleteRequest(t, h, "")
		assert.Equal(t, "error", status)
		assert.Equal(t, "id is required", message)
	})

	t.Run("GET is rejected", func(t *testing.T) {
		rr := httptest.NewRecorder()
		api_profile_delete.New(store, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?id="+id, nil))
		assert.Contains(t, rr.Body.String(), "profile_delete must be POST")
	})
}
