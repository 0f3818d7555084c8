package measure

import "strings"

// fallbackGlyphFactor estimates the width of an unmeasurable rune as a
// fraction of the line height. Deliberately wide so degraded runs wrap
// sooner rather than overflow.
const fallbackGlyphFactor = 0.6

// lineCount returns the number of lines text occupies when greedily wrapped
// to width. A word wider than the whole line stays on one line (no
// hyphenation). degraded reports whether any run needed the fallback width.
func lineCount(metrics FontMetrics, text string, width float64) (lines int, degraded bool) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0, false
	}

	fallbackGlyph := metrics.LineHeight() * fallbackGlyphFactor

	spaceWidth, err := metrics.StringWidth(" ")
	if err != nil {
		spaceWidth = fallbackGlyph
		degraded = true
	}

	lines = 1
	lineWidth := 0.0
	for _, word := range words {
		w, err := metrics.StringWidth(word)
		if err != nil {
			w = float64(len([]rune(word))) * fallbackGlyph
			degraded = true
		}

		switch {
		case lineWidth == 0:
			lineWidth = w
		case lineWidth+spaceWidth+w <= width:
			lineWidth += spaceWidth + w
		default:
			lines++
			lineWidth = w
		}
	}
	return lines, degraded
}
