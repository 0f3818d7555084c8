package folio

import (
	"io/fs"

	"github.com/tsawler/folio/measure"
)

// layoutOptions holds configuration for the layout pipeline.
type layoutOptions struct {
	// Page geometry (points)
	pageContentWidth  float64
	pageContentHeight float64
	topMargin         float64

	// Measurement fallbacks
	fallbackRowHeight   float64
	fallbackImageHeight float64

	// Processing options
	parallelism int

	// Pluggable measurement backends (nil means package defaults)
	metrics measure.FontMetrics
	images  measure.ImageSizer
	imageFS fs.FS
}

// defaultOptions returns the default layout options: US Letter content area
// with one-inch margins, sequential measurement, built-in font metrics.
func defaultOptions() layoutOptions {
	return layoutOptions{
		pageContentWidth:    468,
		pageContentHeight:   648,
		topMargin:           72,
		fallbackRowHeight:   18,
		fallbackImageHeight: 180,
		parallelism:         1,
	}
}

// clone creates a copy of layoutOptions. The metrics and sizer backends are
// shared, not copied; both are read-only during layout.
func (o layoutOptions) clone() layoutOptions {
	return layoutOptions{
		pageContentWidth:    o.pageContentWidth,
		pageContentHeight:   o.pageContentHeight,
		topMargin:           o.topMargin,
		fallbackRowHeight:   o.fallbackRowHeight,
		fallbackImageHeight: o.fallbackImageHeight,
		parallelism:         o.parallelism,
		metrics:             o.metrics,
		images:              o.images,
		imageFS:             o.imageFS,
	}
}
