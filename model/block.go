package model

// BlockKind identifies the concrete variant of a Block.
type BlockKind int

const (
	KindUnknown BlockKind = iota
	KindHeading
	KindParagraph
	KindListItem
	KindTable
	KindImage
	KindRule
)

func (k BlockKind) String() string {
	switch k {
	case KindHeading:
		return "Heading"
	case KindParagraph:
		return "Paragraph"
	case KindListItem:
		return "ListItem"
	case KindTable:
		return "Table"
	case KindImage:
		return "Image"
	case KindRule:
		return "Rule"
	default:
		return "Unknown"
	}
}

// Block is the interface implemented by all block variants.
//
// The variant set is closed: Heading, Paragraph, ListItem, Table, Image and
// Rule. Consumers dispatch on Kind with explicit switches.
type Block interface {
	Kind() BlockKind

	// MeasuredHeight returns the height in points assigned by the
	// measurement phase, or 0 if the block has not been measured.
	MeasuredHeight() float64
}

// Heading represents a heading block (levels 1-6).
type Heading struct {
	Level   int // 1-6
	Content InlineRun
	Height  float64
}

func (h *Heading) Kind() BlockKind         { return KindHeading }
func (h *Heading) MeasuredHeight() float64 { return h.Height }
func (h *Heading) Text() string            { return h.Content.Text() }

// Paragraph represents a paragraph of inline content.
type Paragraph struct {
	Content InlineRun
	Height  float64
}

func (p *Paragraph) Kind() BlockKind         { return KindParagraph }
func (p *Paragraph) MeasuredHeight() float64 { return p.Height }
func (p *Paragraph) Text() string            { return p.Content.Text() }

// ListItem represents a single item of an ordered or unordered list.
// List items are flattened into the block sequence; nesting is expressed by
// Depth rather than by containment.
type ListItem struct {
	Ordered bool
	Depth   int // 0 = top level
	Index   int // 1-based ordinal for ordered items, 0 otherwise
	Content InlineRun
	Height  float64
}

func (l *ListItem) Kind() BlockKind         { return KindListItem }
func (l *ListItem) MeasuredHeight() float64 { return l.Height }
func (l *ListItem) Text() string            { return l.Content.Text() }

// Image represents an image referenced by source URL.
type Image struct {
	Alt    string
	Source string
	Height float64

	// Fallback records that natural dimensions were unavailable and
	// Height holds the configured fallback constant instead of a value
	// derived from the image's aspect ratio.
	Fallback bool
}

func (i *Image) Kind() BlockKind         { return KindImage }
func (i *Image) MeasuredHeight() float64 { return i.Height }

// Rule represents a thematic break. It carries no content; its measured
// height is the fixed separator spacing.
type Rule struct {
	Height float64
}

func (r *Rule) Kind() BlockKind         { return KindRule }
func (r *Rule) MeasuredHeight() float64 { return r.Height }
