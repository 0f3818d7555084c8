package model

import "strings"

// SpanKind identifies the variant of an inline span.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanLink
)

func (k SpanKind) String() string {
	switch k {
	case SpanLink:
		return "Link"
	default:
		return "Text"
	}
}

// Span is a single inline run of text, optionally carrying a link target.
// For SpanLink spans the URL is always non-empty once the build phase has
// resolved reference-style links.
type Span struct {
	Kind SpanKind
	Text string
	URL  string // SpanLink only
}

// InlineRun is an ordered sequence of inline spans.
type InlineRun []Span

// Text returns the concatenated display text of the run, ignoring link
// targets.
func (r InlineRun) Text() string {
	var sb strings.Builder
	for _, s := range r {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Links returns the link spans of the run in order.
func (r InlineRun) Links() []Span {
	var links []Span
	for _, s := range r {
		if s.Kind == SpanLink {
			links = append(links, s)
		}
	}
	return links
}

// PlainRun builds a run consisting of a single text span.
func PlainRun(text string) InlineRun {
	return InlineRun{{Kind: SpanText, Text: text}}
}
