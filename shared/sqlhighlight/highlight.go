// Package sqlhighlight splits SQL text into styled spans for display.
//
// The scanner recognizes reserved words, quoted strings, integers and
// line comments. Everything else is plain text. Spans always cover the
// whole input, in order, without gaps or overlaps.
package sqlhighlight

import (
	"iter"
	"regexp"
	"slices"
	"strings"
)

// Kind classifies a span.
type Kind int

const (
	Plain Kind = iota
	Keyword
	String
	Number
	Comment
)

// String returns the lower-case name of the kind, also used as CSS suffix.
func (k Kind) String() string {
	switch k {
	case Keyword:
		return "keyword"
	case String:
		return "string"
	case Number:
		return "number"
	case Comment:
		return "comment"
	default:
		return "plain"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Span is a classified slice of the source text.
// Source bytes are src[Start:End]; Text is what should be displayed.
type Span struct {
	Kind  Kind   `json:"kind"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// DefaultKeywords is the reserved word set used by Tokenize.
var DefaultKeywords = []string{
	"SELECT", "FROM", "WHERE", "INSERT", "INTO", "VALUES", "UPDATE", "SET", "DELETE",
	"CREATE", "TABLE", "DATABASE", "DROP", "ALTER", "ADD", "PRIMARY", "KEY", "FOREIGN",
	"INT", "VARCHAR", "TEXT", "DATE", "DATETIME", "CHAR", "NOT", "NULL", "AUTO_INCREMENT",
	"AND", "OR", "ON", "JOIN", "INNER", "LEFT", "RIGHT", "GROUP", "BY", "ORDER", "ASC", "DESC",
	"LIMIT", "SHOW", "TABLES", "DATABASES", "USE", "GRANT", "ALL", "PRIVILEGES", "WITH", "OPTION",
}

// submatch groups, in precedence order
const (
	groupKeyword = 1 + iota
	groupString
	groupOpenQuote
	groupNumber
	groupComment
)

// Highlighter tokenizes SQL with a fixed keyword set. It is safe for concurrent use.
type Highlighter struct {
	re *regexp.Regexp
}

var defaultHighlighter = New(DefaultKeywords)

// New builds a Highlighter for the given case-insensitive keywords.
func New(keywords []string) *Highlighter {
	words := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		words = append(words, strings.ToUpper(k))
	}
	// longest first so INTO is tried before INT
	slices.SortFunc(words, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	words = slices.Compact(words)
	for i, w := range words {
		words[i] = asciiFold(w)
	}

	keywordAlt := `(\b(?:` + strings.Join(words, "|") + `)\b)`
	if len(words) == 0 {
		// a group that can never match keeps the group numbering stable
		keywordAlt = `([^\x00-\x{10FFFF}])`
	}

	pattern := keywordAlt + `|` +
		`('[^'\n]*'|"[^"\n]*")|` +
		`('[^'\n]*|"[^"\n]*)|` +
		`(\b\d+\b)|` +
		`(--[^\n]*)`

	return &Highlighter{re: regexp.MustCompile(pattern)}
}

// asciiFold quotes an upper-cased word as a pattern matching it in any
// ASCII letter case only, so "ſelect" is not taken for SELECT.
func asciiFold(word string) string {
	var b strings.Builder
	for _, r := range word {
		if r >= 'A' && r <= 'Z' {
			b.WriteString("[" + string(r) + string(r+'a'-'A') + "]")
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	return b.String()
}

// Tokenize scans src with DefaultKeywords.
func Tokenize(src string) iter.Seq[Span] {
	return defaultHighlighter.Spans(src)
}

// Spans returns a lazy sequence of spans covering src.
func (h *Highlighter) Spans(src string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		pos := 0
		for pos < len(src) {
			loc := h.re.FindStringSubmatchIndex(src[pos:])
			if loc == nil {
				break
			}
			start, end := pos+loc[0], pos+loc[1]
			if start > pos {
				if !yield(Span{Kind: Plain, Text: src[pos:start], Start: pos, End: start}) {
					return
				}
			}
			if end == start {
				// patterns never match empty, guard anyway
				break
			}
			if !yield(classify(src, start, end, loc)) {
				return
			}
			pos = end
		}
		if pos < len(src) {
			yield(Span{Kind: Plain, Text: src[pos:], Start: pos, End: len(src)})
		}
	}
}

func classify(src string, start, end int, loc []int) Span {
	text := src[start:end]
	matched := func(group int) bool { return loc[2*group] >= 0 }

	switch {
	case matched(groupKeyword):
		return Span{Kind: Keyword, Text: strings.ToUpper(text), Start: start, End: end}
	case matched(groupString):
		return Span{Kind: String, Text: text, Start: start, End: end}
	case matched(groupNumber):
		return Span{Kind: Number, Text: text, Start: start, End: end}
	case matched(groupComment):
		return Span{Kind: Comment, Text: text, Start: start, End: end}
	default:
		// unterminated quote: the rest of the line stays plain
		return Span{Kind: Plain, Text: text, Start: start, End: end}
	}
}

// Collect returns all spans of src using DefaultKeywords.
func Collect(src string) []Span {
	return slices.Collect(Tokenize(src))
}

// Display joins the display text of every span: src with keywords upper-cased.
func Display(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	for s := range Tokenize(src) {
		b.WriteString(s.Text)
	}
	return b.String()
}

// LeadingWord returns the first word of src that is not inside a comment,
// upper-cased. Leading whitespace, parentheses and "--", "#" and "/* */"
// comments are skipped.
func LeadingWord(src string) string {
	s := src
	for {
		s = strings.TrimLeft(s, " \t\r\n(")
		switch {
		case strings.HasPrefix(s, "--"), strings.HasPrefix(s, "#"):
			_, rest, ok := strings.Cut(s, "\n")
			if !ok {
				return ""
			}
			s = rest
		case strings.HasPrefix(s, "/*"):
			_, rest, ok := strings.Cut(s[2:], "*/")
			if !ok {
				return ""
			}
			s = rest
		default:
			end := strings.IndexFunc(s, func(r rune) bool { return !isWordRune(r) })
			if end < 0 {
				end = len(s)
			}
			return strings.ToUpper(s[:end])
		}
	}
}

func isWordRune(r rune) bool {
	return r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
