package measure

import (
	"fmt"
	"sync"

	"github.com/tsawler/folio/model"
)

// Config holds measurement configuration.
type Config struct {
	// PageContentWidth is the usable width per page in points.
	PageContentWidth float64

	// FallbackRowHeight is the minimum height for a table row whose cells
	// could not be measured (default: 18 points).
	FallbackRowHeight float64

	// FallbackImageHeight is the height assigned to an image whose natural
	// dimensions are unavailable (default: 180 points).
	FallbackImageHeight float64

	// Parallelism is the number of measurement workers. Values below 2
	// measure sequentially.
	Parallelism int

	// ParagraphSpacing is the vertical spacing added after a paragraph.
	ParagraphSpacing float64

	// HeadingSpacing is the vertical spacing added after a heading.
	HeadingSpacing float64

	// ItemSpacing is the vertical spacing added after a list item.
	ItemSpacing float64

	// RuleSpacing is the fixed height consumed by a thematic break.
	RuleSpacing float64

	// ListIndent is the horizontal indent per list nesting level.
	ListIndent float64

	// CellPadding is the padding inside each table cell, applied on all
	// sides.
	CellPadding float64
}

// DefaultConfig returns sensible default configuration: US letter content
// area width with one-inch margins and modest spacing.
func DefaultConfig() Config {
	return Config{
		PageContentWidth:    468,
		FallbackRowHeight:   18,
		FallbackImageHeight: 180,
		Parallelism:         1,
		ParagraphSpacing:    6,
		HeadingSpacing:      10,
		ItemSpacing:         2,
		RuleSpacing:         12,
		ListIndent:          18,
		CellPadding:         3,
	}
}

// Measurer assigns heights to blocks. Heights are set exactly once; the
// paginator never recomputes them.
type Measurer struct {
	config  Config
	metrics FontMetrics
	images  ImageSizer
}

// NewMeasurer creates a measurer with default configuration. A nil metrics
// provider falls back to DefaultMetrics; a nil sizer makes every image use
// the configured fallback height.
func NewMeasurer(metrics FontMetrics, images ImageSizer) *Measurer {
	return NewMeasurerWithConfig(metrics, images, DefaultConfig())
}

// NewMeasurerWithConfig creates a measurer with custom configuration.
func NewMeasurerWithConfig(metrics FontMetrics, images ImageSizer, config Config) *Measurer {
	if metrics == nil {
		metrics = DefaultMetrics()
	}
	return &Measurer{
		config:  config,
		metrics: metrics,
		images:  images,
	}
}

// MeasureAll measures every block in order, mutating the blocks in place.
// Recoverable conditions (unknown glyphs, unavailable image dimensions)
// degrade locally and surface as warnings; only invalid configuration is an
// error.
func (m *Measurer) MeasureAll(blocks []model.Block) ([]model.Warning, error) {
	if m.config.PageContentWidth <= 0 {
		return nil, fmt.Errorf("folio: page content width must be positive, got %v", m.config.PageContentWidth)
	}

	if m.config.Parallelism > 1 && len(blocks) > 1 {
		return m.measureParallel(blocks), nil
	}

	var warnings []model.Warning
	for i, b := range blocks {
		warnings = append(warnings, m.measureBlock(i, b)...)
	}
	return warnings, nil
}

// measureParallel fans block measurement out across workers. Each worker
// writes only its own block and warning slot, so results are identical to a
// sequential pass.
func (m *Measurer) measureParallel(blocks []model.Block) []model.Warning {
	perBlock := make([][]model.Warning, len(blocks))

	workers := m.config.Parallelism
	if workers > len(blocks) {
		workers = len(blocks)
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				perBlock[i] = m.measureBlock(i, blocks[i])
			}
		}()
	}
	for i := range blocks {
		indices <- i
	}
	close(indices)
	wg.Wait()

	var warnings []model.Warning
	for _, ws := range perBlock {
		warnings = append(warnings, ws...)
	}
	return warnings
}

func (m *Measurer) measureBlock(index int, block model.Block) []model.Warning {
	var warnings []model.Warning
	lh := m.metrics.LineHeight()
	width := m.config.PageContentWidth

	switch b := block.(type) {
	case *model.Heading:
		lines, degraded := lineCount(m.metrics, b.Content.Text(), width)
		if lines == 0 {
			lines = 1
		}
		b.Height = float64(lines)*lh*headingScale(b.Level) + m.config.HeadingSpacing
		if degraded {
			warnings = append(warnings, metricsWarning(index, b.Content.Text()))
		}

	case *model.Paragraph:
		lines, degraded := lineCount(m.metrics, b.Content.Text(), width)
		if lines == 0 {
			lines = 1
		}
		b.Height = float64(lines)*lh + m.config.ParagraphSpacing
		if degraded {
			warnings = append(warnings, metricsWarning(index, b.Content.Text()))
		}

	case *model.ListItem:
		itemWidth := width - m.config.ListIndent*float64(b.Depth+1)
		if itemWidth < lh {
			itemWidth = lh
		}
		lines, degraded := lineCount(m.metrics, b.Content.Text(), itemWidth)
		if lines == 0 {
			lines = 1
		}
		b.Height = float64(lines)*lh + m.config.ItemSpacing
		if degraded {
			warnings = append(warnings, metricsWarning(index, b.Content.Text()))
		}

	case *model.Image:
		natW, natH, err := m.naturalSize(b.Source)
		if err == nil && (natW <= 0 || natH <= 0) {
			err = fmt.Errorf("%w: degenerate dimensions %dx%d", ErrImageMetricsUnavailable, natW, natH)
		}
		if err != nil {
			b.Height = m.config.FallbackImageHeight
			b.Fallback = true
			warnings = append(warnings, model.Warning{
				Kind:    model.WarnImageFallback,
				Message: fmt.Sprintf("image %q: %v", b.Source, err),
				Block:   index,
			})
			break
		}
		b.Height = width * float64(natH) / float64(natW)

	case *model.Rule:
		b.Height = m.config.RuleSpacing

	case *model.Table:
		warnings = append(warnings, m.measureTable(index, b)...)
	}

	return warnings
}

// measureTable measures the header row and each data row independently:
// rows wrap to different heights depending on cell text length. Column
// widths are equal shares of the content width; there is no content-based
// sizing.
func (m *Measurer) measureTable(index int, t *model.Table) []model.Warning {
	var warnings []model.Warning

	colWidth := m.config.PageContentWidth/float64(t.Columns) - 2*m.config.CellPadding
	if colWidth < m.metrics.LineHeight() {
		colWidth = m.metrics.LineHeight()
	}

	rowHeight := func(row model.TableRow) (float64, bool) {
		maxLines := 1
		degraded := false
		for _, cell := range row {
			lines, d := lineCount(m.metrics, cell, colWidth)
			if d {
				degraded = true
			}
			if lines > maxLines {
				maxLines = lines
			}
		}
		h := float64(maxLines)*m.metrics.LineHeight() + 2*m.config.CellPadding
		if degraded && h < m.config.FallbackRowHeight {
			h = m.config.FallbackRowHeight
		}
		return h, degraded
	}

	headerHeight, degraded := rowHeight(t.Header)
	if degraded {
		warnings = append(warnings, metricsWarning(index, "table header"))
	}
	t.HeaderHeight = headerHeight

	t.RowHeights = make([]float64, len(t.Rows))
	total := headerHeight
	for i, row := range t.Rows {
		h, d := rowHeight(row)
		if d {
			warnings = append(warnings, metricsWarning(index, fmt.Sprintf("table row %d", i)))
		}
		t.RowHeights[i] = h
		total += h
	}
	t.Height = total

	return warnings
}

func (m *Measurer) naturalSize(src string) (int, int, error) {
	if m.images == nil {
		return 0, 0, ErrImageMetricsUnavailable
	}
	return m.images.NaturalSize(src)
}

func metricsWarning(index int, context string) model.Warning {
	const limit = 40
	if len(context) > limit {
		context = context[:limit] + "..."
	}
	return model.Warning{
		Kind:    model.WarnMetricsFallback,
		Message: fmt.Sprintf("fallback width used for %q", context),
		Block:   index,
	}
}

func headingScale(level int) float64 {
	switch level {
	case 1:
		return 2.0
	case 2:
		return 1.6
	case 3:
		return 1.3
	default:
		return 1.15
	}
}
