// Package mdout renders paginated blocks back to Markdown.
//
// Pages are joined by a horizontal-rule separator so the page structure
// survives a round trip through plain text. Continuation table fragments
// re-print their header row, which is what a reader expects when a long
// table resumes on a fresh page.
package mdout

import (
	"fmt"
	"strings"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/paginate"
)

// PageSeparator divides pages in the rendered output.
const PageSeparator = "\n\n---\n\n"

// Render returns the pages as a single Markdown string.
func Render(pages []paginate.Page) string {
	parts := make([]string, 0, len(pages))
	for _, page := range pages {
		parts = append(parts, RenderPage(page))
	}
	return strings.Join(parts, PageSeparator)
}

// RenderPage returns one page's blocks as Markdown, blocks separated by
// blank lines.
func RenderPage(page paginate.Page) string {
	parts := make([]string, 0, len(page.Blocks))
	for _, b := range page.Blocks {
		parts = append(parts, renderBlock(b))
	}
	return strings.Join(parts, "\n\n")
}

func renderBlock(b model.Block) string {
	switch b := b.(type) {
	case *model.Heading:
		return strings.Repeat("#", b.Level) + " " + renderRun(b.Content)
	case *model.Paragraph:
		return renderRun(b.Content)
	case *model.ListItem:
		return renderListItem(b)
	case *model.Table:
		return strings.TrimRight(b.ToMarkdown(), "\n")
	case *model.Image:
		return fmt.Sprintf("![%s](%s)", b.Alt, b.Source)
	case *model.Rule:
		return "***"
	default:
		return ""
	}
}

func renderListItem(li *model.ListItem) string {
	indent := strings.Repeat("  ", li.Depth)
	if li.Ordered {
		return fmt.Sprintf("%s%d. %s", indent, li.Index, renderRun(li.Content))
	}
	return indent + "- " + renderRun(li.Content)
}

func renderRun(run model.InlineRun) string {
	var sb strings.Builder
	for _, span := range run {
		if span.Kind == model.SpanLink {
			fmt.Fprintf(&sb, "[%s](%s)", span.Text, span.URL)
			continue
		}
		sb.WriteString(span.Text)
	}
	return sb.String()
}
