package cli

import (
	"regexp"
	"strings"
)

// ansiPattern matches SGR escape sequences, which take no width on screen.
var ansiPattern = regexp.MustCompile("\033\\[[0-9;]*m")

// Table renders rows in aligned columns.
type Table struct {
	headers    []string
	rows       [][]string
	padding    int
	rightAlign map[int]bool
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:    headers,
		padding:    2,
		rightAlign: make(map[int]bool),
	}
}

// AlignRight right-aligns the given column, which suits numbers.
func (t *Table) AlignRight(colIndex int) {
	t.rightAlign[colIndex] = true
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	normalised := make([]string, len(t.headers))
	copy(normalised, row)
	t.rows = append(t.rows, normalised)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = visibleLen(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], visibleLen(cell))
		}
	}

	sep := strings.Repeat(" ", t.padding)
	var sb strings.Builder

	t.writeLine(&sb, t.headers, widths, sep)
	dashes := make([]string, len(widths))
	for i, w := range widths {
		dashes[i] = strings.Repeat("-", w)
	}
	sb.WriteString(strings.Join(dashes, sep))
	sb.WriteString("\n")

	for _, row := range t.rows {
		t.writeLine(&sb, row, widths, sep)
	}

	return sb.String()
}

func (t *Table) writeLine(sb *strings.Builder, cells []string, widths []int, sep string) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		fill := strings.Repeat(" ", widths[i]-visibleLen(cell))
		if t.rightAlign[i] {
			parts[i] = fill + cell
		} else {
			parts[i] = cell + fill
		}
	}
	sb.WriteString(strings.TrimRight(strings.Join(parts, sep), " "))
	sb.WriteString("\n")
}

// visibleLen returns the display width of s ignoring ANSI escapes.
func visibleLen(s string) int {
	return len(ansiPattern.ReplaceAllString(s, ""))
}
