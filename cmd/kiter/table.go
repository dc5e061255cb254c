package main

import (
	"fmt"
	"io"
	"strings"
)

type Table struct {
	rows []Row
}

type Row struct {
	cells  []Cell
	header bool
}

type Cell struct {
	text string
}

func NewTable() *Table {
	return &Table{
		rows: make([]Row, 0),
	}
}

// WriteTo renders the table with every column padded to its widest cell.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	cols := 0
	for _, row := range t.rows {
		if cols < len(row.cells) {
			cols = len(row.cells)
		}
	}

	widths := make([]int, cols)
	for _, row := range t.rows {
		for col, cell := range row.cells {
			if widths[col] < len(cell.text) {
				widths[col] = len(cell.text)
			}
		}
	}

	var sb strings.Builder
	for _, row := range t.rows {
		line := make([]string, len(row.cells))
		for col, cell := range row.cells {
			text := cell.text
			if row.header {
				text = strings.ToUpper(text)
			}
			line[col] = text + strings.Repeat(" ", widths[col]-len(cell.text))
		}
		sb.WriteString(strings.TrimRight(strings.Join(line, "  "), " "))
		sb.WriteByte('\n')
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func (t *Table) AddRow() *Row {
	t.rows = append(t.rows, Row{
		cells: make([]Cell, 0),
	})
	return &t.rows[len(t.rows)-1]
}

func (t *Table) AddRowWith(labels ...string) *Row {
	row := t.AddRow()
	for _, label := range labels {
		row.AddCellWithf("%s", label)
	}
	return row
}

func (r *Row) Header() {
	r.header = true
}

func (r *Row) AddCell() *Cell {
	r.cells = append(r.cells, Cell{
		text: "-",
	})
	return &r.cells[len(r.cells)-1]
}

func (r *Row) AddCellWithf(format string, a ...interface{}) *Cell {
	cell := r.AddCell()
	cell.Printf(format, a...)
	return cell
}

func (c *Cell) Printf(format string, a ...interface{}) {
	c.text = fmt.Sprintf(format, a...)
	if c.text == "" {
		c.text = "-"
	}
}
