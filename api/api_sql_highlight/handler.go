package api_sql_highlight

import (
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/mysqlmanager/shared/constants"
	"github.com/dracory/mysqlmanager/shared/sqlhighlight"
)

// Handler tokenizes SQL text for the editor.
type Handler struct {
	highlighter *sqlhighlight.Highlighter
}

// New creates a highlight handler. A nil highlighter uses the default keywords.
func New(h *sqlhighlight.Highlighter) *Handler {
	if h == nil {
		h = sqlhighlight.New(sqlhighlight.DefaultKeywords)
	}
	return &Handler{highlighter: h}
}

// ServeHTTP returns the spans of the posted sql and their HTML rendering.
// Empty input is valid and yields no spans.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Respond(w, r, api.Error("sql_highlight must be POST"))
		return
	}

	if err := r.ParseForm(); err != nil {
		api.Respond(w, r, api.Error("failed to parse form"))
		return
	}

	src := r.Form.Get(constants.ParamSQL)
	spans := []sqlhighlight.Span{}
	for s := range h.highlighter.Spans(src) {
		spans = append(spans, s)
	}

	api.Respond(w, r, api.SuccessWithData("highlighted", map[string]any{
		"spans": spans,
		"html":  h.highlighter.RenderHTML(src),
	}))
}
