// Package folio provides a fluent API for laying out Markdown documents as
// a sequence of fixed-height pages.
//
// Basic usage:
//
//	pages, warnings, err := folio.FromMarkdown(source).Pages()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", folio.FormatWarnings(warnings))
//	}
//
// With options:
//
//	html, _, err := folio.FromMarkdown(source).
//	    PageSize(468, 648).
//	    TopMargin(72).
//	    Parallelism(4).
//	    HTML()
//
// The pipeline runs in four phases: the Markdown source is parsed into an
// ordered block sequence, each block is measured against the page width,
// blocks are packed greedily onto pages, and finally each page's blocks
// receive vertical offsets. The lower-level markdown, measure, paginate and
// emit packages are also available for advanced use.
package folio

import (
	"github.com/tsawler/folio/builder"
	"github.com/tsawler/folio/markdown"
	"github.com/tsawler/folio/model"
)

// FromMarkdown creates a Layouter for the given Markdown source.
//
// Example:
//
//	pages, warnings, err := folio.FromMarkdown(source).Pages()
func FromMarkdown(source []byte) *Layouter {
	return &Layouter{
		source:  source,
		options: defaultOptions(),
	}
}

// FromBlocks creates a Layouter from an already-built block sequence,
// bypassing the Markdown parsing phase. This is useful when blocks come
// from another front end or are constructed programmatically.
//
// Example:
//
//	pages, warnings, err := folio.FromBlocks(blocks).Pages()
func FromBlocks(blocks []model.Block) *Layouter {
	return &Layouter{
		blocks:  blocks,
		options: defaultOptions(),
	}
}

// parse runs the front end: Markdown to nodes, nodes plus the reference
// table to resolved blocks.
func parse(source []byte) ([]model.Block, error) {
	nodes, refs := markdown.Parse(source)
	return builder.Build(nodes, refs)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	stats := folio.Must(folio.FromMarkdown(source).Stats())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustPages is a helper that wraps a call to a terminal operation returning
// (T, []Warning, error) and panics if the error is non-nil. It discards
// warnings and returns just the value. It is intended for use in scripts or
// tests where error handling would be cumbersome.
//
// Example:
//
//	pages := folio.MustPages(folio.FromMarkdown(source).Pages())
func MustPages[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
