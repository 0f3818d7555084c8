// Package paginate packs an ordered, measured block sequence into
// fixed-height pages.
//
// The [Paginator] makes a single forward pass and never backtracks, so a
// run is O(n) in the total number of blocks and table rows. Atomic blocks
// (headings, paragraphs, list items, images, rules) are never split across
// pages. Tables split at row boundaries: when a page ends mid-table, the
// continuation fragment on the next page repeats the header row and is
// marked Continuation=true.
//
// # Escape Valve
//
// A single atomic block, or a single table row, taller than the page
// content height cannot be split and cannot fit. Such a block is placed
// alone on its own page and allowed to overflow, surfacing a
// [model.WarnPageOverflow] warning instead of failing or looping.
//
// # Determinism
//
// Pagination depends only on the input order and the measured heights.
// Re-running with identical inputs and configuration yields an identical
// page sequence.
package paginate
