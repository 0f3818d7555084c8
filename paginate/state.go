package paginate

import "fmt"

// state tracks the paginator's position in its single forward pass.
type state int

const (
	// stateAccumulating collects blocks onto the current page.
	stateAccumulating state = iota
	// stateEmitPage seals the current page, either because it is full or
	// because the input is exhausted.
	stateEmitPage
	// stateDone is terminal.
	stateDone
)

func (s state) String() string {
	switch s {
	case stateAccumulating:
		return "ACCUMULATING"
	case stateEmitPage:
		return "EMIT_PAGE"
	case stateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

func (s state) canAdvanceTo(to state) bool {
	switch s {
	case stateAccumulating:
		return to == stateEmitPage || to == stateDone
	case stateEmitPage:
		return to == stateAccumulating || to == stateDone
	default:
		return false
	}
}

// advance performs a validated state transition.
func (r *run) advance(to state) error {
	if !r.state.canAdvanceTo(to) {
		return fmt.Errorf("folio: invalid pagination transition %s -> %s", r.state, to)
	}
	r.state = to
	return nil
}
