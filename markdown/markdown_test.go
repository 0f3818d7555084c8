package markdown

import (
	"testing"

	"github.com/tsawler/folio/builder"
)

func TestParse_BlockKinds(t *testing.T) {
	source := []byte(`# Title

Intro paragraph.

- first
- second

1. one
2. two

---

| Name | Qty |
|------|-----|
| Widget | 3 |
| Gadget | 7 |

![diagram](images/diagram.png)
`)

	nodes, _ := Parse(source)

	var kinds []string
	for _, n := range nodes {
		switch n.(type) {
		case builder.HeadingNode:
			kinds = append(kinds, "heading")
		case builder.ParagraphNode:
			kinds = append(kinds, "paragraph")
		case builder.ListItemNode:
			kinds = append(kinds, "item")
		case builder.RuleNode:
			kinds = append(kinds, "rule")
		case builder.TableNode:
			kinds = append(kinds, "table")
		case builder.ImageNode:
			kinds = append(kinds, "image")
		}
	}

	want := []string{"heading", "paragraph", "item", "item", "item", "item", "rule", "table", "image"}
	if len(kinds) != len(want) {
		t.Fatalf("got %d nodes %v, want %d", len(kinds), kinds, len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("node %d: %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestParse_HeadingLevelsAndText(t *testing.T) {
	nodes, _ := Parse([]byte("## Section Two\n\n### Sub"))

	h1 := nodes[0].(builder.HeadingNode)
	if h1.Level != 2 {
		t.Errorf("level = %d, want 2", h1.Level)
	}
	if text := h1.Inlines[0].(builder.TextInline).Text; text != "Section Two" {
		t.Errorf("text = %q", text)
	}

	h2 := nodes[1].(builder.HeadingNode)
	if h2.Level != 3 {
		t.Errorf("level = %d, want 3", h2.Level)
	}
}

func TestParse_InlineLink(t *testing.T) {
	nodes, _ := Parse([]byte("See [the site](https://example.com) now."))

	p := nodes[0].(builder.ParagraphNode)
	var link builder.LinkInline
	found := false
	for _, in := range p.Inlines {
		if l, ok := in.(builder.LinkInline); ok {
			link = l
			found = true
		}
	}
	if !found {
		t.Fatalf("no link in %+v", p.Inlines)
	}
	if link.Text != "the site" || link.URL != "https://example.com" {
		t.Errorf("link = %+v", link)
	}
}

func TestParse_ResolvedReferenceLink(t *testing.T) {
	source := []byte("See [the docs][docs].\n\n[docs]: https://example.com/docs \"Docs\"\n")
	nodes, refs := Parse(source)

	def, ok := refs.Lookup("DOCS")
	if !ok {
		t.Fatal("reference definition not scanned")
	}
	if def.URL != "https://example.com/docs" || def.Title != "Docs" {
		t.Errorf("def = %+v", def)
	}

	// Goldmark resolves the link itself since the definition exists.
	p := nodes[0].(builder.ParagraphNode)
	foundLink := false
	for _, in := range p.Inlines {
		if l, ok := in.(builder.LinkInline); ok {
			foundLink = true
			if l.URL != "https://example.com/docs" {
				t.Errorf("URL = %q", l.URL)
			}
		}
	}
	if !foundLink {
		t.Errorf("resolved reference should surface as a link: %+v", p.Inlines)
	}
}

func TestParse_UnresolvedReferenceLiteral(t *testing.T) {
	nodes, refs := Parse([]byte("See [broken][nowhere] here."))

	if refs.Len() != 0 {
		t.Errorf("unexpected definitions: %d", refs.Len())
	}

	p := nodes[0].(builder.ParagraphNode)
	var ref builder.RefLinkInline
	found := false
	for _, in := range p.Inlines {
		if r, ok := in.(builder.RefLinkInline); ok {
			ref = r
			found = true
		}
	}
	if !found {
		t.Fatalf("no RefLinkInline in %+v", p.Inlines)
	}
	if ref.Label != "nowhere" || ref.Text != "broken" {
		t.Errorf("ref = %+v", ref)
	}
}

func TestParse_CollapsedReferenceLiteral(t *testing.T) {
	nodes, _ := Parse([]byte("See [missing][]."))

	p := nodes[0].(builder.ParagraphNode)
	for _, in := range p.Inlines {
		if r, ok := in.(builder.RefLinkInline); ok {
			if r.Label != "missing" {
				t.Errorf("label = %q", r.Label)
			}
			return
		}
	}
	t.Fatalf("no RefLinkInline in %+v", p.Inlines)
}

func TestParse_CodeSpanBracketsStayLiteral(t *testing.T) {
	nodes, refs := Parse([]byte("Use `arr[i][j]` to index."))

	p := nodes[0].(builder.ParagraphNode)
	for _, in := range p.Inlines {
		if r, ok := in.(builder.RefLinkInline); ok {
			t.Fatalf("code span text misread as reference %+v", r)
		}
	}

	var text string
	for _, in := range p.Inlines {
		if tx, ok := in.(builder.TextInline); ok {
			text += tx.Text
		}
	}
	if text != "Use arr[i][j] to index." {
		t.Errorf("text = %q", text)
	}

	// The document has no references at all, so the build must succeed.
	if _, err := builder.Build(nodes, refs); err != nil {
		t.Fatalf("valid document failed to build: %v", err)
	}
}

func TestParse_EscapedBracketsStayLiteral(t *testing.T) {
	nodes, refs := Parse([]byte(`Literal \[x][y] text.`))

	p := nodes[0].(builder.ParagraphNode)
	for _, in := range p.Inlines {
		if r, ok := in.(builder.RefLinkInline); ok {
			t.Fatalf("escaped bracket misread as reference %+v", r)
		}
	}
	if _, err := builder.Build(nodes, refs); err != nil {
		t.Fatalf("valid document failed to build: %v", err)
	}

	// An escaped backslash before the bracket leaves the bracket itself
	// unescaped, so the reference literal is real again.
	nodes, _ = Parse([]byte(`Real \\[x][y] here.`))
	p = nodes[0].(builder.ParagraphNode)
	found := false
	for _, in := range p.Inlines {
		if _, ok := in.(builder.RefLinkInline); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("no RefLinkInline in %+v", p.Inlines)
	}
}

func TestParse_NestedListDepth(t *testing.T) {
	source := []byte("- top\n  - nested\n    - deeper\n- top again\n")
	nodes, _ := Parse(source)

	type itemView struct {
		text  string
		depth int
	}
	var items []itemView
	for _, n := range nodes {
		it := n.(builder.ListItemNode)
		text := ""
		if len(it.Inlines) > 0 {
			text = it.Inlines[0].(builder.TextInline).Text
		}
		items = append(items, itemView{text, it.Depth})
	}

	want := []itemView{
		{"top", 0},
		{"nested", 1},
		{"deeper", 2},
		{"top again", 0},
	}
	if len(items) != len(want) {
		t.Fatalf("items = %+v", items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, items[i], want[i])
		}
	}
}

func TestParse_OrderedListIndexes(t *testing.T) {
	nodes, _ := Parse([]byte("3. third\n4. fourth\n"))

	first := nodes[0].(builder.ListItemNode)
	second := nodes[1].(builder.ListItemNode)
	if !first.Ordered || first.Index != 3 {
		t.Errorf("first = %+v", first)
	}
	if second.Index != 4 {
		t.Errorf("second = %+v", second)
	}
}

func TestParse_TableCells(t *testing.T) {
	source := []byte("| Name | Qty | Price |\n|---|---|---|\n| Widget | 3 | 1.50 |\n| Gadget | 7 | 0.25 |\n")
	nodes, _ := Parse(source)

	table := nodes[0].(builder.TableNode)
	if len(table.Header) != 3 {
		t.Fatalf("header = %v", table.Header)
	}
	if table.Header[0] != "Name" || table.Header[2] != "Price" {
		t.Errorf("header = %v", table.Header)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %v", table.Rows)
	}
	if table.Rows[1][0] != "Gadget" || table.Rows[1][2] != "0.25" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestParse_StandaloneImageBecomesBlock(t *testing.T) {
	nodes, _ := Parse([]byte("![chart of results](charts/results.png)\n"))

	img, ok := nodes[0].(builder.ImageNode)
	if !ok {
		t.Fatalf("node = %T", nodes[0])
	}
	if img.Alt != "chart of results" || img.Source != "charts/results.png" {
		t.Errorf("img = %+v", img)
	}
}

func TestParse_InlineImageDegradesToAltText(t *testing.T) {
	nodes, _ := Parse([]byte("Before ![icon](i.png) after.\n"))

	p, ok := nodes[0].(builder.ParagraphNode)
	if !ok {
		t.Fatalf("node = %T", nodes[0])
	}
	text := ""
	for _, in := range p.Inlines {
		if ti, ok := in.(builder.TextInline); ok {
			text += ti.Text
		}
	}
	if text != "Before icon after." {
		t.Errorf("text = %q", text)
	}
}

func TestParse_SoftBreakBecomesSpace(t *testing.T) {
	nodes, _ := Parse([]byte("line one\nline two\n"))

	p := nodes[0].(builder.ParagraphNode)
	text := ""
	for _, in := range p.Inlines {
		if ti, ok := in.(builder.TextInline); ok {
			text += ti.Text
		}
	}
	if text != "line one line two" {
		t.Errorf("text = %q", text)
	}
}

func TestScanReferenceDefinitions(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		label   string
		wantURL string
		wantHit bool
	}{
		{"plain", "[a]: https://example.com/a\n", "a", "https://example.com/a", true},
		{"double quoted title", "[b]: https://example.com/b \"Title B\"\n", "b", "https://example.com/b", true},
		{"single quoted title", "[c]: https://example.com/c 'Title C'\n", "c", "https://example.com/c", true},
		{"paren title", "[d]: https://example.com/d (Title D)\n", "d", "https://example.com/d", true},
		{"angle brackets", "[e]: <https://example.com/e spaced>\n", "e", "https://example.com/e spaced", true},
		{"indented three spaces", "   [f]: https://example.com/f\n", "f", "https://example.com/f", true},
		{"indented four spaces is code", "    [g]: https://example.com/g\n", "g", "", false},
		{"inside fence", "```\n[h]: https://example.com/h\n```\n", "h", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs := ScanReferenceDefinitions([]byte(tt.source))
			def, ok := refs.Lookup(tt.label)
			if ok != tt.wantHit {
				t.Fatalf("Lookup(%q) hit = %v, want %v", tt.label, ok, tt.wantHit)
			}
			if ok && def.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", def.URL, tt.wantURL)
			}
		})
	}
}
