package paginate

import (
	"fmt"

	"github.com/tsawler/folio/model"
)

// Config holds pagination configuration.
type Config struct {
	// PageContentHeight is the usable height per page in points.
	PageContentHeight float64
}

// DefaultConfig returns the default configuration: US letter content height
// with one-inch margins.
func DefaultConfig() Config {
	return Config{PageContentHeight: 648}
}

// Paginator packs measured blocks into pages.
type Paginator struct {
	config Config
}

// NewPaginator creates a paginator with default configuration.
func NewPaginator() *Paginator {
	return &Paginator{config: DefaultConfig()}
}

// NewPaginatorWithConfig creates a paginator with custom configuration.
func NewPaginatorWithConfig(config Config) *Paginator {
	return &Paginator{config: config}
}

// Paginate distributes blocks onto pages in a single forward pass. Blocks
// must already be measured; their heights are read, never recomputed.
//
// An empty input yields zero pages. Escape-valve placements surface as
// warnings, never as errors.
func (p *Paginator) Paginate(blocks []model.Block) ([]Page, []model.Warning, error) {
	if p.config.PageContentHeight <= 0 {
		return nil, nil, fmt.Errorf("folio: page content height must be positive, got %v", p.config.PageContentHeight)
	}

	r := &run{maxHeight: p.config.PageContentHeight, state: stateAccumulating}

	for i, b := range blocks {
		var err error
		if t, ok := b.(*model.Table); ok {
			err = r.placeTable(i, t)
		} else {
			err = r.placeAtomic(i, b)
		}
		if err != nil {
			return nil, nil, err
		}
	}

	if len(r.current) > 0 {
		if err := r.emitPage(); err != nil {
			return nil, nil, err
		}
	}
	if err := r.advance(stateDone); err != nil {
		return nil, nil, err
	}

	return r.pages, r.warnings, nil
}

// run holds the mutable state of one pagination pass.
type run struct {
	maxHeight float64
	state     state

	pages    []Page
	current  []model.Block
	height   float64
	warnings []model.Warning
}

func (r *run) place(b model.Block) {
	r.current = append(r.current, b)
	r.height += b.MeasuredHeight()
}

// emitPage seals the current page and starts a new one.
func (r *run) emitPage() error {
	if err := r.advance(stateEmitPage); err != nil {
		return err
	}
	r.pages = append(r.pages, Page{
		Number: len(r.pages) + 1,
		Blocks: r.current,
		Height: r.height,
	})
	r.current = nil
	r.height = 0
	return r.advance(stateAccumulating)
}

// placeAtomic places a block that must never be split. A block taller than
// the page content height is placed alone and allowed to overflow.
func (r *run) placeAtomic(index int, b model.Block) error {
	h := b.MeasuredHeight()

	if r.height+h > r.maxHeight && len(r.current) > 0 {
		if err := r.emitPage(); err != nil {
			return err
		}
	}

	r.place(b)

	if h > r.maxHeight {
		r.overflowWarning(index, fmt.Sprintf("%s block height %.1f exceeds page content height %.1f", b.Kind(), h, r.maxHeight))
		return r.emitPage()
	}
	return nil
}

// placeTable places a table row by row, splitting it into fragments at page
// boundaries. Every continuation fragment repeats the header row. An
// oversized single row gets the same escape-valve treatment as an oversized
// atomic block, applied per row.
func (r *run) placeTable(index int, t *model.Table) error {
	// Reserve the header before placing anything: a header that would
	// overflow the current page starts a fresh one.
	if r.height+t.HeaderHeight > r.maxHeight && len(r.current) > 0 {
		if err := r.emitPage(); err != nil {
			return err
		}
	}

	frag := tableFragment(t, false)
	fragHeight := t.HeaderHeight

	closeFragment := func() {
		frag.Height = fragHeight
		r.place(frag)
	}

	appendRow := func(j int) {
		frag.Rows = append(frag.Rows, t.Rows[j])
		frag.RowHeights = append(frag.RowHeights, t.RowHeights[j])
		fragHeight += t.RowHeights[j]
	}

	for j := range t.Rows {
		rowHeight := t.RowHeights[j]

		if r.height+fragHeight+rowHeight <= r.maxHeight {
			appendRow(j)
			continue
		}

		// The row does not fit. If the fragment is bare (header only) at
		// the top of an otherwise empty page, no page could ever hold this
		// row: place it anyway and let it overflow.
		if len(r.current) == 0 && len(frag.Rows) == 0 {
			appendRow(j)
			r.overflowWarning(index, fmt.Sprintf("table row height %.1f exceeds page content height %.1f", rowHeight, r.maxHeight))
			closeFragment()
			if err := r.emitPage(); err != nil {
				return err
			}
			frag = tableFragment(t, true)
			fragHeight = t.HeaderHeight
			continue
		}

		// End the page mid-table and continue with a repeated header.
		closeFragment()
		if err := r.emitPage(); err != nil {
			return err
		}
		frag = tableFragment(t, true)
		fragHeight = t.HeaderHeight

		if t.HeaderHeight+rowHeight > r.maxHeight {
			appendRow(j)
			r.overflowWarning(index, fmt.Sprintf("table row height %.1f exceeds page content height %.1f", rowHeight, r.maxHeight))
			closeFragment()
			if err := r.emitPage(); err != nil {
				return err
			}
			frag = tableFragment(t, true)
			fragHeight = t.HeaderHeight
			continue
		}
		appendRow(j)
	}

	// An empty table still emits its header as a fragment; a trailing
	// continuation header with no rows left is dropped. A header taller
	// than the page is an escape-valve placement like any other.
	if len(frag.Rows) > 0 || !frag.Continuation {
		if fragHeight > r.maxHeight {
			r.overflowWarning(index, fmt.Sprintf("table header height %.1f exceeds page content height %.1f", t.HeaderHeight, r.maxHeight))
		}
		closeFragment()
	}
	return nil
}

func (r *run) overflowWarning(index int, message string) {
	r.warnings = append(r.warnings, model.Warning{
		Kind:    model.WarnPageOverflow,
		Message: message,
		Block:   index,
	})
}

// tableFragment starts an empty fragment sharing the parent table's header
// and geometry.
func tableFragment(t *model.Table, continuation bool) *model.Table {
	return &model.Table{
		Header:       t.Header,
		Columns:      t.Columns,
		HeaderHeight: t.HeaderHeight,
		Continuation: continuation,
	}
}
