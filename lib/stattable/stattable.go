// Package stattable holds the tabular data model produced by scraping
// stat tables off of html pages.
package stattable

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// ErrMissing is returned when a numeric conversion is attempted on a
// cell whose value was absent from the source page.
var ErrMissing = errors.New("cell value is missing")

// Cell is a single value in a stat table. Valid is false when the
// source page left the value empty or used a placeholder dash, in
// which case Text is empty. Href carries the target of a link the
// cell's text was wrapped in, if any.
type Cell struct {
	Text  string
	Href  string
	Valid bool
}

func (c Cell) String() string {
	return c.Text
}

func (c Cell) Float64() (float64, error) {
	if !c.Valid {
		return 0, ErrMissing
	}
	// thousands separators show up in minutes and similar columns
	text := strings.ReplaceAll(c.Text, ",", "")
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", c.Text, err)
	}
	return value, nil
}

func (c Cell) Int() (int, error) {
	if !c.Valid {
		return 0, ErrMissing
	}
	text := strings.ReplaceAll(c.Text, ",", "")
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", c.Text, err)
	}
	return value, nil
}

// StatTable is a rectangular grid of cells with named columns. every
// row has exactly len(Columns) cells.
type StatTable struct {
	// Name is the identifier of the source table on the page.
	Name    string
	Columns []string
	Rows    [][]Cell
}

// ColumnIndex returns the position of the given column or -1 when the
// table has no such column.
func (t *StatTable) ColumnIndex(name string) int {
	return slices.Index(t.Columns, name)
}

// Cell returns the cell at the given row under the given column.
func (t *StatTable) Cell(row int, column string) (Cell, bool) {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return Cell{}, false
	}
	return t.Rows[row][idx], true
}

// Column returns all cells under the given column in row order.
func (t *StatTable) Column(name string) ([]Cell, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]Cell, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, true
}

// RenameColumn renames a column in place. it is a no-op when the
// table has no column under the old name.
func (t *StatTable) RenameColumn(old, new string) {
	idx := t.ColumnIndex(old)
	if idx < 0 {
		return
	}
	t.Columns[idx] = new
}

// DropColumns removes the named columns and their cells. unknown
// names are ignored.
func (t *StatTable) DropColumns(names ...string) {
	keep := make([]int, 0, len(t.Columns))
	for i, col := range t.Columns {
		if !slices.Contains(names, col) {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(t.Columns) {
		return
	}

	columns := make([]string, len(keep))
	for i, idx := range keep {
		columns[i] = t.Columns[idx]
	}
	rows := make([][]Cell, len(t.Rows))
	for r, row := range t.Rows {
		cells := make([]Cell, len(keep))
		for i, idx := range keep {
			cells[i] = row[idx]
		}
		rows[r] = cells
	}

	t.Columns = columns
	t.Rows = rows
}

// FilterRows removes every row the given function returns false for.
func (t *StatTable) FilterRows(keep func(row []Cell) bool) {
	rows := make([][]Cell, 0, len(t.Rows))
	for _, row := range t.Rows {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	t.Rows = rows
}

// Render formats the table for terminal output.
func (t *StatTable) Render() string {
	w := table.NewWriter()
	w.SetStyle(table.StyleRounded)

	header := make(table.Row, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	w.AppendHeader(header)

	for _, row := range t.Rows {
		cells := make(table.Row, len(row))
		for i, c := range row {
			cells[i] = c.Text
		}
		w.AppendRow(cells)
	}

	return w.Render()
}
