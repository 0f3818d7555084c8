package paginate

import "github.com/tsawler/folio/model"

// Page is an ordered group of blocks assigned to one output page.
//
// Height is the sum of the measured heights of the page's blocks. It never
// exceeds the configured page content height except on escape-valve pages,
// which hold exactly one oversized block (or table fragment whose single
// row is oversized).
type Page struct {
	Number int // 1-indexed
	Blocks []model.Block
	Height float64
}

// BlockCount returns the number of blocks on the page.
func (p Page) BlockCount() int {
	return len(p.Blocks)
}
