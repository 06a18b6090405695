package api_connection_check_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dracory/mysqlmanager/api/api_connection_check"
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

// stubPinger accepts only the password "right".
type stubPinger struct {
	pinged []profile.ConnectionProfile
}

func (s *stubPinger) Ping(_ context.Context, p profile.ConnectionProfile) error {
	s.pinged = append(s.pinged, p)
	if p.Password != "right" {
		return &dbclient.ConnectionError{Err: errors.New("Error 1045 (28000): Access denied for user 'root'@'localhost'")}
	}
	return nil
}

func TestConnectionCheck_ServeHTTP(t *testing.T) {
	profiles := stubProfiles{7: {ID: 7, Alias: "saved", Host: "db", Port: 3306, Username: "root", Password: "right"}}

	tests := []struct {
		name          string
		method        string
		form          url.Values
		expectStatus  string
		expectMessage string
	}{
		{
			name:         "valid credentials",
			method:       http.MethodPost,
			form:         url.Values{"host": {"127.0.0.1"}, "port": {"3306"}, "username": {"root"}, "password": {"right"}},
			expectStatus: "success",
		},
		{
			name:          "access denied",
			method:        http.MethodPost,
			form:          url.Values{"host": {"127.0.0.1"}, "port": {"3306"}, "username": {"root"}, "password": {"wrong"}},
			expectStatus:  "error",
			expectMessage: "connection failed: Error 1045 (28000): Access denied for user 'root'@'localhost'",
		},
		{
			name:          "missing fields",
			method:        http.MethodPost,
			form:          url.Values{"port": {"3306"}},
			expectStatus:  "error",
			expectMessage: "invalid profile: host is required, username is required, password is required",
		},
		{
			name:         "saved profile",
			method:       http.MethodPost,
			form:         url.Values{"profile_id": {"7"}},
			expectStatus: "success",
		},
		{
			name:          "unknown saved profile",
			method:        http.MethodPost,
			form:          url.Values{"profile_id": {"8"}},
			expectStatus:  "error",
			expectMessage: "profile not found",
		},
		{
			name:          "wrong method",
			method:        http.MethodGet,
			expectStatus:  "error",
			expectMessage: "connection_test must be POST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := api_connection_check.New(profiles, &stubPinger{})

			req := httptest.NewRequest(tt.method, "/?action=connection_test", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			var resp struct {
				Status  string `json:"status"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectStatus, resp.Status, resp.Message)
			if tt.expectMessage != "" {
				assert.Equal(t, tt.expectMessage, resp.Message)
			}
		})
	}
}
