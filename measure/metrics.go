package measure

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrMetricsUnavailable indicates the font metrics provider could not size a
// text run (for example, an unknown glyph). It is recoverable: measurement
// substitutes a conservative fallback width and continues.
var ErrMetricsUnavailable = errors.New("folio: font metrics unavailable")

// FontMetrics sizes text runs for wrapping calculations.
type FontMetrics interface {
	// StringWidth returns the advance width of s in points.
	StringWidth(s string) (float64, error)

	// LineHeight returns the height of a single wrapped line in points.
	LineHeight() float64
}

// FaceMetrics adapts a golang.org/x/image/font Face as a FontMetrics
// provider.
type FaceMetrics struct {
	face font.Face
}

// NewFaceMetrics wraps face. The face must be safe for concurrent use if
// measurement runs with Parallelism > 1.
func NewFaceMetrics(face font.Face) *FaceMetrics {
	return &FaceMetrics{face: face}
}

// DefaultMetrics returns metrics backed by the fixed-size basicfont face.
// It requires no font files and is deterministic across platforms.
func DefaultMetrics() *FaceMetrics {
	return NewFaceMetrics(basicfont.Face7x13)
}

// StringWidth sums glyph advances for s. A rune with no glyph in the face
// yields ErrMetricsUnavailable.
func (m *FaceMetrics) StringWidth(s string) (float64, error) {
	var total fixed.Int26_6
	for _, r := range s {
		adv, ok := m.face.GlyphAdvance(r)
		if !ok {
			return 0, fmt.Errorf("%w: no glyph for %q", ErrMetricsUnavailable, r)
		}
		total += adv
	}
	return fromFixed(total), nil
}

// LineHeight returns the face's line height in points.
func (m *FaceMetrics) LineHeight() float64 {
	return fromFixed(m.face.Metrics().Height)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
