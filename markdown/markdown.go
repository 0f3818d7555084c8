// Package markdown adapts goldmark's Markdown AST to the parser-agnostic
// source nodes consumed by the builder package.
//
// The adapter walks the goldmark tree rather than rendering it: block nodes
// become [builder.Node] values, inline content is flattened into text and
// link spans, and GFM tables (via goldmark's Table extension) become table
// nodes.
//
// Reference-style links need special handling. Goldmark resolves them during
// parsing and demotes links with unknown labels to literal bracket text. The
// adapter therefore re-scans the source for reference definitions (goldmark
// consumes them internally) and re-detects unresolved bracket literals in
// text runs, carrying them as [builder.RefLinkInline] nodes so the build
// phase can fail with a precise label.
package markdown

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/tsawler/folio/builder"
	"github.com/tsawler/folio/model"
)

// Parse parses Markdown source into builder nodes plus the document's
// reference-definition map.
func Parse(source []byte) ([]builder.Node, *model.RefMap) {
	refs := ScanReferenceDefinitions(source)

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(gtext.NewReader(source))

	w := &walker{source: source}
	var nodes []builder.Node
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		w.walkBlock(c, &nodes)
	}
	return nodes, refs
}

type walker struct {
	source []byte
}

func (w *walker) walkBlock(n ast.Node, out *[]builder.Node) {
	switch n := n.(type) {
	case *ast.Heading:
		*out = append(*out, builder.HeadingNode{Level: n.Level, Inlines: w.inlines(n)})

	case *ast.Paragraph:
		if img, ok := w.soleImage(n); ok {
			*out = append(*out, builder.ImageNode{
				Alt:    w.flatText(img),
				Source: string(img.Destination),
			})
			return
		}
		*out = append(*out, builder.ParagraphNode{Inlines: w.inlines(n)})

	case *ast.List:
		w.walkList(n, 0, out)

	case *ast.ThematicBreak:
		*out = append(*out, builder.RuleNode{})

	case *east.Table:
		w.walkTable(n, out)

	case *ast.Blockquote:
		// Quote content flows as ordinary blocks.
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			w.walkBlock(c, out)
		}

	case *ast.CodeBlock:
		*out = append(*out, builder.ParagraphNode{Inlines: literalLines(n, w.source)})

	case *ast.FencedCodeBlock:
		*out = append(*out, builder.ParagraphNode{Inlines: literalLines(n, w.source)})

	case *ast.HTMLBlock:
		// Raw HTML is not renderable content here.
	}
}

func (w *walker) walkList(list *ast.List, depth int, out *[]builder.Node) {
	index := list.Start
	if index < 1 {
		index = 1
	}

	for c := list.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}

		var inlines []builder.Inline
		var nested []*ast.List
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch ic := ic.(type) {
			case *ast.TextBlock:
				inlines = append(inlines, w.inlines(ic)...)
			case *ast.Paragraph:
				inlines = append(inlines, w.inlines(ic)...)
			case *ast.List:
				nested = append(nested, ic)
			}
		}

		node := builder.ListItemNode{
			Ordered: list.IsOrdered(),
			Depth:   depth,
			Inlines: inlines,
		}
		if list.IsOrdered() {
			node.Index = index
			index++
		}
		*out = append(*out, node)

		for _, sub := range nested {
			w.walkList(sub, depth+1, out)
		}
	}
}

func (w *walker) walkTable(table *east.Table, out *[]builder.Node) {
	var header []string
	var rows [][]string

	for c := table.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *east.TableHeader:
			header = w.cellTexts(c)
		case *east.TableRow:
			rows = append(rows, w.cellTexts(c))
		}
	}

	if len(header) == 0 {
		return
	}
	// Goldmark pads or trims data cells to the header width already, but a
	// defensive normalization keeps the builder's row invariant intact.
	for i, row := range rows {
		for len(row) < len(header) {
			row = append(row, "")
		}
		rows[i] = row[:len(header)]
	}
	*out = append(*out, builder.TableNode{Header: header, Rows: rows})
}

func (w *walker) cellTexts(row ast.Node) []string {
	var cells []string
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		if cell, ok := c.(*east.TableCell); ok {
			cells = append(cells, strings.TrimSpace(w.flatText(cell)))
		}
	}
	return cells
}

// inlines flattens the inline children of a block node into builder inlines,
// splitting unresolved reference-link literals out of plain text runs.
func (w *walker) inlines(n ast.Node) []builder.Inline {
	var result []builder.Inline
	var buf strings.Builder

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		result = append(result, splitRefLiterals(buf.String())...)
		buf.Reset()
	}

	var visit func(ast.Node)
	visit = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.Text:
				buf.Write(c.Segment.Value(w.source))
				if c.SoftLineBreak() || c.HardLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.String:
				buf.Write(c.Value)
			case *ast.Link:
				flush()
				result = append(result, builder.LinkInline{
					Text: w.flatText(c),
					URL:  string(c.Destination),
				})
			case *ast.AutoLink:
				flush()
				url := string(c.URL(w.source))
				result = append(result, builder.LinkInline{Text: url, URL: url})
			case *ast.Image:
				// Inline images inside mixed content degrade to alt text.
				buf.WriteString(w.flatText(c))
			case *ast.CodeSpan:
				// Code spans are literal text; brackets inside them are
				// never link syntax, so they bypass the reference scan.
				flush()
				if t := w.flatText(c); t != "" {
					result = append(result, builder.TextInline{Text: t})
				}
			case *ast.RawHTML:
				// skip
			default:
				visit(c)
			}
		}
	}
	visit(n)
	flush()
	return result
}

// flatText returns the concatenated plain text of a node's inline subtree.
func (w *walker) flatText(n ast.Node) string {
	var sb strings.Builder
	var visit func(ast.Node)
	visit = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.Text:
				sb.Write(c.Segment.Value(w.source))
				if c.SoftLineBreak() || c.HardLineBreak() {
					sb.WriteByte(' ')
				}
			case *ast.String:
				sb.Write(c.Value)
			default:
				visit(c)
			}
		}
	}
	visit(n)
	return sb.String()
}

func literalLines(n ast.Node, source []byte) []builder.Inline {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	text := strings.TrimRight(sb.String(), "\n")
	text = strings.ReplaceAll(text, "\n", " ")
	if text == "" {
		return nil
	}
	return []builder.Inline{builder.TextInline{Text: text}}
}

// soleImage reports whether the paragraph consists of exactly one image
// (ignoring surrounding whitespace), in which case the image is promoted to
// a block of its own.
func (w *walker) soleImage(p *ast.Paragraph) (*ast.Image, bool) {
	var img *ast.Image
	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Image:
			if img != nil {
				return nil, false
			}
			img = c
		case *ast.Text:
			if strings.TrimSpace(string(c.Segment.Value(w.source))) != "" {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return img, img != nil
}

// refLiteral matches the bracket text goldmark leaves behind for reference
// links with no matching definition: [text][label] or the collapsed form
// [label][]. A backslash-escaped opening bracket is literal text, not link
// syntax, and is skipped during splitting.
var refLiteral = regexp.MustCompile(`\[([^\[\]]+)\]\[([^\[\]]*)\]`)

func splitRefLiterals(text string) []builder.Inline {
	matches := refLiteral.FindAllStringSubmatchIndex(text, -1)

	var result []builder.Inline
	prev := 0
	for _, m := range matches {
		if m[0] < prev || bracketEscaped(text, m[0]) {
			continue
		}
		if m[0] > prev {
			result = append(result, builder.TextInline{Text: text[prev:m[0]]})
		}
		display := text[m[2]:m[3]]
		label := text[m[4]:m[5]]
		if label == "" {
			label = display
		}
		result = append(result, builder.RefLinkInline{Text: display, Label: label})
		prev = m[1]
	}
	if prev < len(text) {
		result = append(result, builder.TextInline{Text: text[prev:]})
	}
	return result
}

// bracketEscaped reports whether the bracket at pos sits behind an odd run
// of backslashes.
func bracketEscaped(text string, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && text[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}
