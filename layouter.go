package folio

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/tsawler/folio/emit"
	"github.com/tsawler/folio/htmlout"
	"github.com/tsawler/folio/mdout"
	"github.com/tsawler/folio/measure"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/paginate"
)

// Layouter provides a fluent interface for laying out a document.
// Each configuration method returns a new Layouter instance, making it
// safe for concurrent use and allowing method chaining.
type Layouter struct {
	// Source (exactly one is set)
	source []byte
	blocks []model.Block

	// Configuration
	options layoutOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Layouter with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (l *Layouter) clone() *Layouter {
	return &Layouter{
		source:  l.source,
		blocks:  l.blocks,
		options: l.options.clone(),
		err:     l.err,
	}
}

// ============================================================================
// Configuration Methods (return new Layouter instance)
// ============================================================================

// PageSize sets the usable content area of a page in points: the width text
// wraps against and the height blocks are packed into.
//
// Example:
//
//	pages, _, err := folio.FromMarkdown(src).PageSize(468, 648).Pages()
func (l *Layouter) PageSize(width, height float64) *Layouter {
	newL := l.clone()
	if width <= 0 || height <= 0 {
		newL.err = fmt.Errorf("folio: page size %gx%g is not positive", width, height)
		return newL
	}
	newL.options.pageContentWidth = width
	newL.options.pageContentHeight = height
	return newL
}

// TopMargin sets the vertical offset of the first block on each page.
//
// Example:
//
//	pages, _, err := folio.FromMarkdown(src).TopMargin(36).Pages()
func (l *Layouter) TopMargin(margin float64) *Layouter {
	newL := l.clone()
	newL.options.topMargin = margin
	return newL
}

// FallbackRowHeight sets the minimum height assigned to a table row whose
// cells could not be fully measured.
func (l *Layouter) FallbackRowHeight(h float64) *Layouter {
	newL := l.clone()
	newL.options.fallbackRowHeight = h
	return newL
}

// FallbackImageHeight sets the height assigned to an image whose natural
// size cannot be determined.
func (l *Layouter) FallbackImageHeight(h float64) *Layouter {
	newL := l.clone()
	newL.options.fallbackImageHeight = h
	return newL
}

// Parallelism sets the number of goroutines used during measurement.
// Values below 1 are treated as 1. Pagination itself is always sequential;
// only the per-block measurement work is fanned out.
//
// Example:
//
//	pages, _, err := folio.FromMarkdown(src).Parallelism(4).Pages()
func (l *Layouter) Parallelism(n int) *Layouter {
	newL := l.clone()
	newL.options.parallelism = n
	return newL
}

// WithMetrics supplies the font metrics used to wrap and measure text.
// The default is the built-in fixed-width face.
func (l *Layouter) WithMetrics(metrics measure.FontMetrics) *Layouter {
	newL := l.clone()
	newL.options.metrics = metrics
	return newL
}

// WithImageSizer supplies the sizer used to find images' natural dimensions.
// Without one, every image falls back to the configured fallback height.
func (l *Layouter) WithImageSizer(sizer measure.ImageSizer) *Layouter {
	newL := l.clone()
	newL.options.images = sizer
	return newL
}

// WithImageFS sizes local images by decoding their headers from the given
// filesystem. It is a convenience for WithImageSizer(measure.NewDecodeSizer(fsys)).
//
// Example:
//
//	pages, _, err := folio.FromMarkdown(src).WithImageFS(os.DirFS("assets")).Pages()
func (l *Layouter) WithImageFS(fsys fs.FS) *Layouter {
	newL := l.clone()
	newL.options.imageFS = fsys
	newL.options.images = measure.NewDecodeSizer(fsys)
	return newL
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Blocks runs the front end and measurement phases and returns the measured
// block sequence without paginating it.
func (l *Layouter) Blocks() ([]model.Block, []Warning, error) {
	blocks, warnings, err := l.measuredBlocks()
	if err != nil {
		return nil, nil, err
	}
	return blocks, warnings, nil
}

// Pages runs the full pipeline and returns the paginated block sequence.
// Warnings report non-fatal degradations such as metric fallbacks or blocks
// taller than a page.
//
// Example:
//
//	pages, warnings, err := folio.FromMarkdown(src).Pages()
func (l *Layouter) Pages() ([]paginate.Page, []Warning, error) {
	pages, warnings, err := l.paginated()
	if err != nil {
		return nil, nil, err
	}
	return pages, warnings, nil
}

// Rendered runs the full pipeline and returns pages with per-block vertical
// offsets assigned.
func (l *Layouter) Rendered() ([]emit.RenderedPage, []Warning, error) {
	pages, warnings, err := l.paginated()
	if err != nil {
		return nil, nil, err
	}
	emitter := emit.NewEmitterWithConfig(l.emitConfig())
	return emitter.EmitAll(pages), warnings, nil
}

// HTML runs the full pipeline and renders the pages as a standalone HTML
// document.
//
// Example:
//
//	html, warnings, err := folio.FromMarkdown(src).HTML()
func (l *Layouter) HTML() (string, []Warning, error) {
	rendered, warnings, err := l.Rendered()
	if err != nil {
		return "", nil, err
	}
	var sb strings.Builder
	if err := htmlout.Render(&sb, rendered); err != nil {
		return "", nil, fmt.Errorf("folio: rendering HTML: %w", err)
	}
	return sb.String(), warnings, nil
}

// Markdown runs the full pipeline and renders the pages back to Markdown,
// pages separated by a horizontal rule. Continuation table fragments repeat
// their header row.
func (l *Layouter) Markdown() (string, []Warning, error) {
	pages, warnings, err := l.paginated()
	if err != nil {
		return "", nil, err
	}
	return mdout.Render(pages), warnings, nil
}

// Render runs the full pipeline and streams each positioned page to the
// given backend in order.
func (l *Layouter) Render(backend emit.Backend) ([]Warning, error) {
	pages, warnings, err := l.paginated()
	if err != nil {
		return nil, err
	}
	emitter := emit.NewEmitterWithConfig(l.emitConfig())
	if err := emitter.Render(pages, backend); err != nil {
		return nil, err
	}
	return warnings, nil
}

// Stats runs the full pipeline and returns summary counts about the layout.
func (l *Layouter) Stats() (Stats, error) {
	pages, warnings, err := l.paginated()
	if err != nil {
		return Stats{}, err
	}
	return buildStats(pages, warnings), nil
}

// ============================================================================
// Pipeline
// ============================================================================

func (l *Layouter) measuredBlocks() ([]model.Block, []Warning, error) {
	if l.err != nil {
		return nil, nil, l.err
	}

	blocks := l.blocks
	if blocks == nil {
		var err error
		blocks, err = parse(l.source)
		if err != nil {
			return nil, nil, err
		}
	}

	measurer := measure.NewMeasurerWithConfig(l.options.metrics, l.options.images, l.measureConfig())
	warnings, err := measurer.MeasureAll(blocks)
	if err != nil {
		return nil, nil, err
	}
	return blocks, warnings, nil
}

func (l *Layouter) paginated() ([]paginate.Page, []Warning, error) {
	blocks, warnings, err := l.measuredBlocks()
	if err != nil {
		return nil, nil, err
	}

	paginator := paginate.NewPaginatorWithConfig(paginate.Config{
		PageContentHeight: l.options.pageContentHeight,
	})
	pages, pageWarnings, err := paginator.Paginate(blocks)
	if err != nil {
		return nil, nil, err
	}
	return pages, append(warnings, pageWarnings...), nil
}

func (l *Layouter) measureConfig() measure.Config {
	config := measure.DefaultConfig()
	config.PageContentWidth = l.options.pageContentWidth
	config.FallbackRowHeight = l.options.fallbackRowHeight
	config.FallbackImageHeight = l.options.fallbackImageHeight
	config.Parallelism = l.options.parallelism
	return config
}

func (l *Layouter) emitConfig() emit.Config {
	return emit.Config{
		TopMargin:        l.options.topMargin,
		PageContentWidth: l.options.pageContentWidth,
	}
}
