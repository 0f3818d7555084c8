package markdown

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/tsawler/folio/model"
)

// refDefLine matches a link reference definition on a single line:
// up to three spaces of indentation, [label]: destination "optional title".
// Titles may use double quotes, single quotes, or parentheses.
var refDefLine = regexp.MustCompile(
	`^ {0,3}\[([^\]]+)\]:\s*(<[^<>]*>|\S+)(?:\s+(?:"([^"]*)"|'([^']*)'|\(([^()]*)\)))?\s*$`)

// ScanReferenceDefinitions collects link reference definitions from the raw
// source into a RefMap. Goldmark consumes definitions during parsing without
// exposing them, so the map is rebuilt here with the same first-wins and
// case-fold matching semantics. Lines inside fenced code blocks are skipped.
func ScanReferenceDefinitions(source []byte) *model.RefMap {
	refs := model.NewRefMap()

	inFence := false
	scanner := bufio.NewScanner(bytes.NewReader(source))
	for scanner.Scan() {
		line := scanner.Text()

		trimmed := strings.TrimLeft(line, " ")
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		m := refDefLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		url := m[2]
		if strings.HasPrefix(url, "<") && strings.HasSuffix(url, ">") {
			url = url[1 : len(url)-1]
		}

		title := m[3]
		if title == "" {
			title = m[4]
		}
		if title == "" {
			title = m[5]
		}

		refs.Define(m[1], url, title)
	}
	return refs
}
