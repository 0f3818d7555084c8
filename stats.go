package folio

import (
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/paginate"
)

// Stats summarizes a completed layout run.
type Stats struct {
	// Pages is the number of pages produced.
	Pages int

	// Blocks counts the blocks placed across all pages. A table split into
	// fragments counts once per fragment.
	Blocks int

	// TableFragments counts continuation table fragments; a table that fit
	// on one page contributes zero.
	TableFragments int

	// MetricFallbacks counts blocks measured with estimated glyph widths.
	MetricFallbacks int

	// ImageFallbacks counts images laid out at the fallback height.
	ImageFallbacks int

	// Overflows counts pages taller than the configured page height, which
	// happens only when a single block cannot fit on any page.
	Overflows int
}

func buildStats(pages []paginate.Page, warnings []Warning) Stats {
	var s Stats
	s.Pages = len(pages)
	for _, page := range pages {
		s.Blocks += len(page.Blocks)
		for _, b := range page.Blocks {
			if t, ok := b.(*model.Table); ok && t.Continuation {
				s.TableFragments++
			}
		}
	}
	for _, w := range warnings {
		switch w.Kind {
		case model.WarnMetricsFallback:
			s.MetricFallbacks++
		case model.WarnImageFallback:
			s.ImageFallbacks++
		case model.WarnPageOverflow:
			s.Overflows++
		}
	}
	return s
}
