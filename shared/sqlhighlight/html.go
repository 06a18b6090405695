package sqlhighlight

import (
	hb "github.com/gouniverse/hb"
)

// ClassPrefix prefixes the CSS class of every rendered span.
const ClassPrefix = "sql-"

// RenderHTML renders src as a <pre class="sql"> block with one <span> per
// span, classed by kind (sql-keyword, sql-string, ...).
func RenderHTML(src string) string {
	return defaultHighlighter.RenderHTML(src)
}

// RenderHTML renders src using this highlighter's keyword set.
func (h *Highlighter) RenderHTML(src string) string {
	children := []hb.TagInterface{}
	for s := range h.Spans(src) {
		children = append(children, hb.NewTag("span").Class(ClassPrefix+s.Kind.String()).Text(s.Text))
	}
	return hb.NewTag("pre").Class("sql").Children(children).ToHTML()
}
