// Package emit converts paginated block groups into positioned output.
//
// The [Emitter] assigns each block a bounding box within its page, with
// vertical offsets increasing monotonically from the configured top margin.
// No page-break decisions are made here; those live entirely in the
// paginate package. The positioned result is backend-agnostic: rendering
// backends implement [Backend] and receive one [RenderedPage] at a time.
package emit

import (
	"fmt"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/paginate"
)

// Config holds emission configuration.
type Config struct {
	// TopMargin is the vertical offset of the first block on each page.
	TopMargin float64

	// PageContentWidth is the width assigned to each positioned block.
	PageContentWidth float64
}

// DefaultConfig returns the default configuration, matching the measurement
// defaults for a US letter page with one-inch margins.
func DefaultConfig() Config {
	return Config{
		TopMargin:        72,
		PageContentWidth: 468,
	}
}

// PositionedBlock is a block with its final bounding box on a page.
type PositionedBlock struct {
	Block model.Block
	BBox  model.BBox
}

// RenderedPage is an ordered list of positioned blocks for one page.
type RenderedPage struct {
	Number        int
	Blocks        []PositionedBlock
	ContentHeight float64 // sum of block heights, excluding the top margin
}

// Backend renders positioned pages. Implementations draw glyphs and shapes;
// the emitter only supplies geometry.
type Backend interface {
	RenderPage(page RenderedPage) error
}

// Emitter assigns positions to paginated blocks.
type Emitter struct {
	config Config
}

// NewEmitter creates an emitter with default configuration.
func NewEmitter() *Emitter {
	return &Emitter{config: DefaultConfig()}
}

// NewEmitterWithConfig creates an emitter with custom configuration.
func NewEmitterWithConfig(config Config) *Emitter {
	return &Emitter{config: config}
}

// Emit positions every block of a page. Offsets start at the top margin and
// increase by each block's measured height; blocks are never reordered or
// mutated.
func (e *Emitter) Emit(page paginate.Page) RenderedPage {
	rendered := RenderedPage{
		Number:        page.Number,
		Blocks:        make([]PositionedBlock, 0, len(page.Blocks)),
		ContentHeight: page.Height,
	}

	y := e.config.TopMargin
	for _, b := range page.Blocks {
		h := b.MeasuredHeight()
		rendered.Blocks = append(rendered.Blocks, PositionedBlock{
			Block: b,
			BBox:  model.NewBBox(0, y, e.config.PageContentWidth, h),
		})
		y += h
	}
	return rendered
}

// EmitAll positions every page in order.
func (e *Emitter) EmitAll(pages []paginate.Page) []RenderedPage {
	rendered := make([]RenderedPage, 0, len(pages))
	for _, page := range pages {
		rendered = append(rendered, e.Emit(page))
	}
	return rendered
}

// Render positions pages and streams them to a backend in order.
func (e *Emitter) Render(pages []paginate.Page, backend Backend) error {
	for _, page := range pages {
		if err := backend.RenderPage(e.Emit(page)); err != nil {
			return fmt.Errorf("rendering page %d: %w", page.Number, err)
		}
	}
	return nil
}
