// Package model provides the intermediate representation (IR) for paginated
// document layout.
//
// This package defines the block-level data structures that flow through the
// layout pipeline: build -> measure -> paginate -> emit. All stages consume
// and produce these types, making them the primary API for inspecting layout
// results.
//
// # Blocks
//
// All block-level content implements the [Block] interface. The concrete
// variants are:
//
//   - [Heading] - headings (levels 1-6)
//   - [Paragraph] - text paragraphs
//   - [ListItem] - ordered or unordered list items
//   - [Table] - tables with a header row and data rows
//   - [Image] - images referenced by source URL
//   - [Rule] - thematic breaks
//
// The variant set is closed: stages dispatch on [Block.Kind] with explicit
// switches, never by probing for behavior.
//
// # Inline Content
//
// Text-bearing blocks hold an [InlineRun], an ordered sequence of [Span]
// values (plain text and resolved links). Reference-style links are resolved
// eagerly during the build phase against a [RefMap]; a [Span] of kind
// [SpanLink] always carries a non-empty URL.
//
// # Measurement
//
// Each block carries a measured height in points, assigned exactly once by
// the measurement phase and never recomputed after pagination begins.
// [Table] additionally carries per-row heights so the paginator can split it
// at row boundaries.
//
// # Geometry
//
// [BBox] and [Point] support the positioned output produced by the emit
// phase. The coordinate system has the origin at the top-left of the page
// content area with Y growing downward.
//
// # Warnings
//
// Non-fatal layout conditions (metric fallbacks, escape-valve overflow) are
// reported as [Warning] values accumulated across the pipeline.
package model
