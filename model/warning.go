package model

import "fmt"

// WarningKind classifies a non-fatal layout condition.
type WarningKind int

const (
	// WarnMetricsFallback indicates a text run could not be measured and a
	// conservative fallback width was used.
	WarnMetricsFallback WarningKind = iota
	// WarnImageFallback indicates an image's natural dimensions were
	// unavailable and the configured fallback height was used.
	WarnImageFallback
	// WarnPageOverflow indicates a single atomic block or table row taller
	// than the page content height was placed alone and allowed to
	// overflow (the escape valve).
	WarnPageOverflow
)

func (k WarningKind) String() string {
	switch k {
	case WarnMetricsFallback:
		return "metrics-fallback"
	case WarnImageFallback:
		return "image-fallback"
	case WarnPageOverflow:
		return "page-overflow"
	default:
		return "unknown"
	}
}

// Warning describes a non-fatal condition encountered during layout.
// Warnings never abort a run; they are accumulated and returned alongside
// results so callers can decide how to surface them.
type Warning struct {
	Kind    WarningKind
	Message string

	// Block is the index of the affected block in the input sequence, or
	// -1 if the warning is not tied to a particular block.
	Block int
}

func (w Warning) String() string {
	if w.Block >= 0 {
		return fmt.Sprintf("%s (block %d): %s", w.Kind, w.Block, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}
