package api_sql_highlight_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dracory/mysqlmanager/api/api_sql_highlight"
	"github.com/dracory/mysqlmanager/shared/sqlhighlight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type span struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type response struct {
	Status string `json:"status"`
	Data   struct {
		Spans []span `json:"spans"`
		HTML  string `json:"html"`
	} `json:"data"`
}

func highlight(t *testing.T, h http.Handler, sql string) response {
	t.Helper()
	form := url.Values{"sql": {sql}}
	req := httptest.NewRequest(http.MethodPost, "/?action=sql_highlight", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHandler_ServeHTTP(t *testing.T) {
	resp := highlight(t, api_sql_highlight.New(nil), "select 'x' -- c")

	require.Equal(t, "success", resp.Status)
	assert.Equal(t, []span{
		{Kind: "keyword", Text: "SELECT", Start: 0, End: 6},
		{Kind: "plain", Text: " ", Start: 6, End: 7},
		{Kind: "string", Text: "'x'", Start: 7, End: 10},
		{Kind: "plain", Text: " ", Start: 10, End: 11},
		{Kind: "comment", Text: "-- c", Start: 11, End: 15},
	}, resp.Data.Spans)
	assert.Contains(t, resp.Data.HTML, "sql-keyword")
}

func TestHandler_EmptyInput(t *testing.T) {
	resp := highlight(t, api_sql_highlight.New(nil), "")

	assert.Equal(t, "success", resp.Status)
	assert.Empty(t, resp.Data.Spans)
}

func TestHandler_CustomKeywords(t *testing.T) {
	resp := highlight(t, api_sql_highlight.New(sqlhighlight.New([]string{"vacuum"})), "vacuum select")

	require.Len(t, resp.Data.Spans, 2)
	assert.Equal(t, span{Kind: "keyword", Text: "VACUUM", Start: 0, End: 6}, resp.Data.Spans[0])
	assert.Equal(t, span{Kind: "plain", Text: " select", Start: 6, End: 13}, resp.Data.Spans[1])
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	api_sql_highlight.New(nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rr.Body.String(), "sql_highlight must be POST")
}
