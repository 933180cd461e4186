// File path: internal/assembler/blocks.go
package assembler

import (
	"regexp"
	"strings"
)

// Block is a typed piece of section content handed to the renderer.
type Block interface {
	isBlock()
}

// Paragraph is a plain body-text line.
type Paragraph struct {
	Text string
}

// SubHeading is a line like "3.1 Overview" inside generated content. It is
// rendered as bold body text with outline detection suppressed: only the
// top-level UDD section titles may appear in the document's table of
// contents.
type SubHeading struct {
	Text string
}

// Table is a delimited block promoted to a structured table. Rows all have
// exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

func (Paragraph) isBlock()  {}
func (SubHeading) isBlock() {}
func (Table) isBlock()      {}

var subheadingRe = regexp.MustCompile(`^\d+\.\d+\.?\s`)

// Parse re-reads a generated section body into typed blocks. A run of two or
// more consecutive lines each containing a '|' is treated as a table
// candidate; a lone '|' line stays plain text. Candidates that do not parse
// into uniform rows are demoted to a paragraph rather than rendered ragged.
func Parse(body string) []Block {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	lines := strings.Split(body, "\n")
	var blocks []Block

	i := 0
	for i < len(lines) {
		line := lines[i]
		if strings.Count(line, "|") >= 1 && i+1 < len(lines) && strings.Count(lines[i+1], "|") >= 1 {
			buf := []string{line}
			i++
			for i < len(lines) && strings.Count(lines[i], "|") >= 1 {
				buf = append(buf, lines[i])
				i++
			}
			chunk := strings.TrimSpace(strings.Join(buf, "\n"))
			if columns, rows, ok := parseDelimitedTable(chunk); ok {
				blocks = append(blocks, Table{Columns: columns, Rows: rows})
			} else {
				blocks = append(blocks, Paragraph{Text: chunk})
			}
			continue
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			if subheadingRe.MatchString(trimmed) {
				blocks = append(blocks, SubHeading{Text: trimmed})
			} else {
				blocks = append(blocks, Paragraph{Text: trimmed})
			}
		}
		i++
	}
	return blocks
}

// parseDelimitedTable splits a markdown-style table into a header and data
// rows. Promotion requires at least two lines, a '|' opening the header, and
// every row matching the header's column count.
func parseDelimitedTable(chunk string) ([]string, [][]string, bool) {
	var lines []string
	for _, raw := range strings.Split(chunk, "\n") {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) < 2 || !strings.HasPrefix(lines[0], "|") {
		return nil, nil, false
	}
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		cells := strings.Split(strings.Trim(line, "|"), "|")
		for j := range cells {
			cells[j] = strings.TrimSpace(cells[j])
		}
		rows = append(rows, cells)
	}
	header := rows[0]
	data := rows[1:]
	for _, row := range data {
		if len(row) != len(header) {
			return nil, nil, false
		}
	}
	return header, data, true
}
