// Package htmlout renders positioned pages as HTML.
//
// Each page becomes a div with class "page"; blocks become semantic
// elements (h1-h6, p, table, img, hr) positioned by inline style from the
// emitter's bounding boxes. The output is built as a golang.org/x/net/html
// node tree and serialized with html.Render, so all text and attribute
// escaping follows the HTML5 serialization rules.
package htmlout

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/folio/emit"
	"github.com/tsawler/folio/model"
)

// Render writes the pages as a standalone HTML document.
func Render(w io.Writer, pages []emit.RenderedPage) error {
	return html.Render(w, buildDocument(pages))
}

// Writer is an emit.Backend that accumulates rendered pages and serializes
// them on Flush.
type Writer struct {
	out   io.Writer
	pages []emit.RenderedPage
}

// NewWriter creates a backend writing to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// RenderPage implements emit.Backend.
func (w *Writer) RenderPage(page emit.RenderedPage) error {
	w.pages = append(w.pages, page)
	return nil
}

// Flush serializes all accumulated pages.
func (w *Writer) Flush() error {
	return Render(w.out, w.pages)
}

func buildDocument(pages []emit.RenderedPage) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := elem(atom.Html, "html")
	doc.AppendChild(root)

	head := elem(atom.Head, "head")
	meta := elem(atom.Meta, "meta", attr("charset", "utf-8"))
	head.AppendChild(meta)
	root.AppendChild(head)

	body := elem(atom.Body, "body")
	root.AppendChild(body)

	for _, page := range pages {
		body.AppendChild(buildPage(page))
	}
	return doc
}

func buildPage(page emit.RenderedPage) *html.Node {
	div := elem(atom.Div, "div",
		attr("class", "page"),
		attr("data-page", strconv.Itoa(page.Number)),
	)
	for _, pb := range page.Blocks {
		div.AppendChild(buildBlock(pb))
	}
	return div
}

func buildBlock(pb emit.PositionedBlock) *html.Node {
	style := attr("style", fmt.Sprintf("top:%.1fpt;height:%.1fpt", pb.BBox.Y, pb.BBox.Height))

	switch b := pb.Block.(type) {
	case *model.Heading:
		a, tag := headingTag(b.Level)
		n := elem(a, tag, style)
		appendRun(n, b.Content)
		return n

	case *model.Paragraph:
		n := elem(atom.P, "p", style)
		appendRun(n, b.Content)
		return n

	case *model.ListItem:
		n := elem(atom.P, "p",
			attr("class", "list-item"),
			attr("data-depth", strconv.Itoa(b.Depth)),
			style,
		)
		appendRun(n, b.Content)
		return n

	case *model.Table:
		return buildTable(b, style)

	case *model.Image:
		return elem(atom.Img, "img",
			attr("src", b.Source),
			attr("alt", b.Alt),
			style,
		)

	case *model.Rule:
		return elem(atom.Hr, "hr", style)

	default:
		return elem(atom.Div, "div", style)
	}
}

func buildTable(t *model.Table, style html.Attribute) *html.Node {
	class := "table"
	if t.Continuation {
		class = "table continued"
	}
	table := elem(atom.Table, "table", attr("class", class), style)

	thead := elem(atom.Thead, "thead")
	headRow := elem(atom.Tr, "tr")
	for _, cell := range t.Header {
		th := elem(atom.Th, "th")
		th.AppendChild(text(cell))
		headRow.AppendChild(th)
	}
	thead.AppendChild(headRow)
	table.AppendChild(thead)

	tbody := elem(atom.Tbody, "tbody")
	for _, row := range t.Rows {
		tr := elem(atom.Tr, "tr")
		for _, cell := range row {
			td := elem(atom.Td, "td")
			td.AppendChild(text(cell))
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)

	return table
}

func appendRun(n *html.Node, run model.InlineRun) {
	for _, span := range run {
		if span.Kind == model.SpanLink {
			a := elem(atom.A, "a", attr("href", span.URL))
			a.AppendChild(text(span.Text))
			n.AppendChild(a)
			continue
		}
		n.AppendChild(text(span.Text))
	}
}

func headingTag(level int) (atom.Atom, string) {
	switch level {
	case 1:
		return atom.H1, "h1"
	case 2:
		return atom.H2, "h2"
	case 3:
		return atom.H3, "h3"
	case 4:
		return atom.H4, "h4"
	case 5:
		return atom.H5, "h5"
	default:
		return atom.H6, "h6"
	}
}

func elem(a atom.Atom, tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     tag,
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
