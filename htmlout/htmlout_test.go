package htmlout

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/folio/emit"
	"github.com/tsawler/folio/model"
)

func positioned(b model.Block, y, h float64) emit.PositionedBlock {
	return emit.PositionedBlock{Block: b, BBox: model.BBox{Y: y, Width: 468, Height: h}}
}

func renderString(t *testing.T, pages []emit.RenderedPage) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, pages); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

// findAll returns every element node with the given tag, in document order.
func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == a {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func innerText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func TestRenderPagesAndBlocks(t *testing.T) {
	pages := []emit.RenderedPage{
		{
			Number: 1,
			Blocks: []emit.PositionedBlock{
				positioned(&model.Heading{Level: 1, Content: model.PlainRun("Title"), Height: 30}, 72, 30),
				positioned(&model.Paragraph{Content: model.InlineRun{
					{Kind: model.SpanText, Text: "See "},
					{Kind: model.SpanLink, Text: "docs", URL: "https://example.com/docs"},
					{Kind: model.SpanText, Text: "."},
				}, Height: 20}, 102, 20),
			},
			ContentHeight: 50,
		},
		{
			Number: 2,
			Blocks: []emit.PositionedBlock{
				positioned(&model.Rule{Height: 12}, 72, 12),
			},
			ContentHeight: 12,
		},
	}

	out := renderString(t, pages)
	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}

	divs := findAll(doc, atom.Div)
	var pageDivs []*html.Node
	for _, d := range divs {
		if attrVal(d, "class") == "page" {
			pageDivs = append(pageDivs, d)
		}
	}
	if len(pageDivs) != 2 {
		t.Fatalf("page divs = %d, want 2", len(pageDivs))
	}
	if got := attrVal(pageDivs[0], "data-page"); got != "1" {
		t.Errorf("first page data-page = %q, want %q", got, "1")
	}
	if got := attrVal(pageDivs[1], "data-page"); got != "2" {
		t.Errorf("second page data-page = %q, want %q", got, "2")
	}

	h1s := findAll(doc, atom.H1)
	if len(h1s) != 1 || innerText(h1s[0]) != "Title" {
		t.Errorf("h1 = %v, want one h1 with text Title", h1s)
	}

	anchors := findAll(doc, atom.A)
	if len(anchors) != 1 {
		t.Fatalf("anchors = %d, want 1", len(anchors))
	}
	if got := attrVal(anchors[0], "href"); got != "https://example.com/docs" {
		t.Errorf("href = %q", got)
	}
	if got := innerText(anchors[0]); got != "docs" {
		t.Errorf("anchor text = %q, want %q", got, "docs")
	}

	if len(findAll(doc, atom.Hr)) != 1 {
		t.Error("expected one hr on page 2")
	}
}

func TestRenderPositionStyle(t *testing.T) {
	pages := []emit.RenderedPage{
		{
			Number: 1,
			Blocks: []emit.PositionedBlock{
				positioned(&model.Paragraph{Content: model.PlainRun("x"), Height: 20}, 72, 20),
			},
			ContentHeight: 20,
		},
	}
	out := renderString(t, pages)
	if !strings.Contains(out, "top:72.0pt") {
		t.Errorf("output missing top offset: %s", out)
	}
	if !strings.Contains(out, "height:20.0pt") {
		t.Errorf("output missing height: %s", out)
	}
}

func TestRenderTable(t *testing.T) {
	table := &model.Table{
		Header:       model.TableRow{"Name", "Qty"},
		Rows:         []model.TableRow{{"bolt", "4"}, {"nut", "8"}},
		Columns:      2,
		Continuation: true,
	}
	pages := []emit.RenderedPage{
		{Number: 1, Blocks: []emit.PositionedBlock{positioned(table, 72, 40)}, ContentHeight: 40},
	}

	out := renderString(t, pages)
	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}

	tables := findAll(doc, atom.Table)
	if len(tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(tables))
	}
	if got := attrVal(tables[0], "class"); got != "table continued" {
		t.Errorf("continuation class = %q, want %q", got, "table continued")
	}

	ths := findAll(doc, atom.Th)
	if len(ths) != 2 || innerText(ths[0]) != "Name" || innerText(ths[1]) != "Qty" {
		t.Errorf("header cells wrong: %d cells", len(ths))
	}
	tds := findAll(doc, atom.Td)
	if len(tds) != 4 {
		t.Errorf("body cells = %d, want 4", len(tds))
	}
	if innerText(tds[2]) != "nut" {
		t.Errorf("cell[2] = %q, want %q", innerText(tds[2]), "nut")
	}
}

func TestRenderEscapesText(t *testing.T) {
	pages := []emit.RenderedPage{
		{
			Number: 1,
			Blocks: []emit.PositionedBlock{
				positioned(&model.Paragraph{Content: model.PlainRun("a < b & c"), Height: 20}, 72, 20),
			},
			ContentHeight: 20,
		},
	}
	out := renderString(t, pages)
	if strings.Contains(out, "a < b") {
		t.Errorf("unescaped text in output: %s", out)
	}
	if !strings.Contains(out, "a &lt; b &amp; c") {
		t.Errorf("expected escaped text, got: %s", out)
	}
}

func TestWriterBackend(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	for i := 1; i <= 3; i++ {
		page := emit.RenderedPage{
			Number: i,
			Blocks: []emit.PositionedBlock{
				positioned(&model.Paragraph{Content: model.PlainRun("p"), Height: 10}, 72, 10),
			},
			ContentHeight: 10,
		}
		if err := w.RenderPage(page); err != nil {
			t.Fatalf("RenderPage(%d): %v", i, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	doc, err := html.Parse(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	var pages int
	for _, d := range findAll(doc, atom.Div) {
		if attrVal(d, "class") == "page" {
			pages++
		}
	}
	if pages != 3 {
		t.Errorf("pages = %d, want 3", pages)
	}
}

func TestRenderEmpty(t *testing.T) {
	out := renderString(t, nil)
	if !strings.Contains(out, "<body></body>") {
		t.Errorf("empty input should produce empty body, got: %s", out)
	}
}
