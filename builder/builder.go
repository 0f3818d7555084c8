// Package builder normalizes parsed source nodes into the ordered block
// sequence consumed by the layout pipeline.
//
// The input is a parser-agnostic node tree (see [Node] and [Inline]) plus the
// document's reference-definition map. Reference-style links are resolved
// eagerly here, before any measurement or pagination work begins, so that a
// malformed document fails fast with [UnresolvedReferenceError].
package builder

import (
	"fmt"

	"github.com/tsawler/folio/model"
)

// Node is a parsed block-level source node. The variant set mirrors the
// block model: HeadingNode, ParagraphNode, ListItemNode, TableNode,
// ImageNode and RuleNode.
type Node interface {
	node()
}

// Inline is a parsed inline source node: plain text, an inline link with a
// known destination, or a reference-style link still carrying its label.
type Inline interface {
	inline()
}

// HeadingNode is a heading with a level of 1-6. Out-of-range levels are
// clamped during build.
type HeadingNode struct {
	Level   int
	Inlines []Inline
}

// ParagraphNode is a paragraph of inline content.
type ParagraphNode struct {
	Inlines []Inline
}

// ListItemNode is a single list item. Nested items carry a larger Depth.
type ListItemNode struct {
	Ordered bool
	Depth   int
	Index   int // 1-based ordinal for ordered items
	Inlines []Inline
}

// TableNode is a table with a header row and data rows of plain cell text.
type TableNode struct {
	Header []string
	Rows   [][]string
}

// ImageNode is an image reference.
type ImageNode struct {
	Alt    string
	Source string
}

// RuleNode is a thematic break.
type RuleNode struct{}

func (HeadingNode) node()   {}
func (ParagraphNode) node() {}
func (ListItemNode) node()  {}
func (TableNode) node()     {}
func (ImageNode) node()     {}
func (RuleNode) node()      {}

// TextInline is a run of plain text.
type TextInline struct {
	Text string
}

// LinkInline is an inline link whose destination is already known.
type LinkInline struct {
	Text string
	URL  string
}

// RefLinkInline is a reference-style link that still needs its label
// resolved against the document's reference definitions.
type RefLinkInline struct {
	Text  string
	Label string
}

func (TextInline) inline()    {}
func (LinkInline) inline()    {}
func (RefLinkInline) inline() {}

// UnresolvedReferenceError reports a reference-style link whose label has no
// matching definition. It is fatal: the document is malformed and no layout
// work is attempted.
type UnresolvedReferenceError struct {
	Label string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("folio: unresolved link reference %q", e.Label)
}

// Build normalizes nodes into the ordered block sequence, resolving every
// reference-style link against refs. It is a pure transform: the first
// unresolved label aborts with *UnresolvedReferenceError and no blocks are
// returned.
func Build(nodes []Node, refs *model.RefMap) ([]model.Block, error) {
	if refs == nil {
		refs = model.NewRefMap()
	}

	blocks := make([]model.Block, 0, len(nodes))
	for i, n := range nodes {
		block, err := buildNode(n, refs)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func buildNode(n Node, refs *model.RefMap) (model.Block, error) {
	switch n := n.(type) {
	case HeadingNode:
		run, err := resolveInlines(n.Inlines, refs)
		if err != nil {
			return nil, err
		}
		return &model.Heading{Level: clampLevel(n.Level), Content: run}, nil

	case ParagraphNode:
		run, err := resolveInlines(n.Inlines, refs)
		if err != nil {
			return nil, err
		}
		return &model.Paragraph{Content: run}, nil

	case ListItemNode:
		run, err := resolveInlines(n.Inlines, refs)
		if err != nil {
			return nil, err
		}
		depth := n.Depth
		if depth < 0 {
			depth = 0
		}
		return &model.ListItem{Ordered: n.Ordered, Depth: depth, Index: n.Index, Content: run}, nil

	case TableNode:
		header := make(model.TableRow, len(n.Header))
		copy(header, n.Header)
		rows := make([]model.TableRow, len(n.Rows))
		for i, r := range n.Rows {
			rows[i] = make(model.TableRow, len(r))
			copy(rows[i], r)
		}
		return model.NewTable(header, rows)

	case ImageNode:
		return &model.Image{Alt: n.Alt, Source: n.Source}, nil

	case RuleNode:
		return &model.Rule{}, nil

	default:
		return nil, fmt.Errorf("builder: unknown node type %T", n)
	}
}

func resolveInlines(inlines []Inline, refs *model.RefMap) (model.InlineRun, error) {
	run := make(model.InlineRun, 0, len(inlines))
	for _, in := range inlines {
		switch in := in.(type) {
		case TextInline:
			if in.Text == "" {
				continue
			}
			run = append(run, model.Span{Kind: model.SpanText, Text: in.Text})

		case LinkInline:
			run = append(run, model.Span{Kind: model.SpanLink, Text: in.Text, URL: in.URL})

		case RefLinkInline:
			def, ok := refs.Lookup(in.Label)
			if !ok || def.URL == "" {
				return nil, &UnresolvedReferenceError{Label: in.Label}
			}
			text := in.Text
			if text == "" {
				text = in.Label
			}
			run = append(run, model.Span{Kind: model.SpanLink, Text: text, URL: def.URL})

		default:
			return nil, fmt.Errorf("builder: unknown inline type %T", in)
		}
	}
	return run, nil
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}
