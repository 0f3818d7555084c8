package folio

import (
	"strings"

	"github.com/tsawler/folio/model"
)

// Warning is a non-fatal problem reported by a terminal operation, such as a
// font-metrics fallback or a block too tall for any page. It is an alias for
// model.Warning so callers of the fluent API rarely need to import the
// model package directly.
type Warning = model.Warning

// FormatWarnings formats a slice of warnings as a single human-readable
// string, one warning per line. It returns the empty string for an empty
// slice.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
