package model

import (
	"fmt"
	"strings"
)

// TableRow is an ordered sequence of cell strings.
type TableRow []string

// Table represents a table block with a header row and zero or more data
// rows. Every row, including the header, has exactly Columns cells.
//
// Pagination may split a table into several fragments at row boundaries.
// Each continuation fragment repeats the header row and is marked with
// Continuation=true so consumers can reassemble the logical table.
type Table struct {
	Header  TableRow
	Rows    []TableRow
	Columns int

	// Measured geometry, assigned by the measurement phase.
	HeaderHeight float64
	RowHeights   []float64 // parallel to Rows
	Height       float64   // header plus all rows

	// Continuation marks a fragment that repeats the header of an earlier
	// fragment of the same logical table.
	Continuation bool
}

func (t *Table) Kind() BlockKind         { return KindTable }
func (t *Table) MeasuredHeight() float64 { return t.Height }

// NewTable creates a table from a header row and data rows, validating that
// every row has the same cell count as the header.
func NewTable(header TableRow, rows []TableRow) (*Table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("table: empty header row")
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("table: row %d has %d cells, header has %d", i, len(row), len(header))
		}
	}
	return &Table{
		Header:  header,
		Rows:    rows,
		Columns: len(header),
	}, nil
}

// RowCount returns the number of data rows (the header is not counted).
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns.
func (t *Table) ColCount() int {
	return t.Columns
}

// Text returns the tab-separated cell text of all rows, header first.
func (t *Table) Text() string {
	var sb strings.Builder
	writeRow := func(row TableRow) {
		for j, cell := range row {
			sb.WriteString(cell)
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	writeRow(t.Header)
	for _, row := range t.Rows {
		writeRow(row)
	}
	return sb.String()
}

// ToMarkdown serializes the table (or fragment) as a Markdown pipe table,
// including the delimiter row after the header.
func (t *Table) ToMarkdown() string {
	var sb strings.Builder

	writeRow := func(row TableRow) {
		for _, cell := range row {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(cell, "\n", " "))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(t.Header)
	for range t.Header {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")
	for _, row := range t.Rows {
		writeRow(row)
	}

	return sb.String()
}
