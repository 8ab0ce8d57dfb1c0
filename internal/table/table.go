// Package table holds the in-memory table of cells a session displays.
// Rows may be ragged; a column index past the end of a short row is reported
// as types.ErrIndexOutOfRange, never a panic.
package table

import (
	"fmt"
	"sync"

	"github.com/mesh-intelligence/tabview/pkg/types"
)

// Table is an ordered sequence of rows. The held rows are only ever swapped
// wholesale by Replace, so concurrent readers observe either the old or the
// new rows, never a mix.
type Table struct {
	mu   sync.RWMutex
	rows types.Rows
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// FromRows returns a table holding rows.
func FromRows(rows types.Rows) *Table {
	return &Table{rows: rows}
}

// RowCount returns the number of rows currently held.
func (t *Table) RowCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// ColumnCount returns the number of cells in the given row.
// Returns ErrIndexOutOfRange if row is not a valid row index.
func (t *Table) ColumnCount(row int) (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return columnCount(t.rows, row)
}

// Cell returns the cell at (row, col). The column bound is that of the
// specific row. Returns ErrIndexOutOfRange if either index is out of bounds.
func (t *Table) Cell(row, col int) (types.CellValue, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return cell(t.rows, row, col)
}

// Replace swaps the held rows for rows. The table takes ownership of the
// slice; callers must not modify it afterwards.
func (t *Table) Replace(rows types.Rows) {
	t.mu.Lock()
	t.rows = rows
	t.mu.Unlock()
}

// Snapshot returns a read-only view of the rows held at the time of the
// call. Later replacements do not affect it.
func (t *Table) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot{rows: t.rows}
}

// Shape reports the row count and column spread of the current rows.
func (t *Table) Shape() Shape {
	return t.Snapshot().Shape()
}

// Snapshot is an immutable view of a table's rows, used by a renderer to
// read one consistent table across a whole drawing pass.
type Snapshot struct {
	rows types.Rows
}

// RowCount returns the number of rows in the snapshot.
func (s Snapshot) RowCount() int { return len(s.rows) }

// ColumnCount returns the number of cells in the given row.
func (s Snapshot) ColumnCount(row int) (int, error) { return columnCount(s.rows, row) }

// Cell returns the cell at (row, col).
func (s Snapshot) Cell(row, col int) (types.CellValue, error) { return cell(s.rows, row, col) }

// Row returns a copy of the cells of the given row.
func (s Snapshot) Row(row int) (types.Row, error) {
	if row < 0 || row >= len(s.rows) {
		return nil, fmt.Errorf("row %d of %d: %w", row, len(s.rows), types.ErrIndexOutOfRange)
	}
	out := make(types.Row, len(s.rows[row]))
	copy(out, s.rows[row])
	return out, nil
}

// Shape reports the row count and column spread of the snapshot.
func (s Snapshot) Shape() Shape {
	sh := Shape{Rows: len(s.rows)}
	for i, r := range s.rows {
		n := len(r)
		if i == 0 || n < sh.MinColumns {
			sh.MinColumns = n
		}
		if n > sh.MaxColumns {
			sh.MaxColumns = n
		}
	}
	sh.Ragged = sh.MinColumns != sh.MaxColumns
	return sh
}

// Shape summarizes a table's dimensions. Ragged is true when rows differ in
// width.
type Shape struct {
	Rows       int  `json:"rows"`
	MinColumns int  `json:"min_columns"`
	MaxColumns int  `json:"max_columns"`
	Ragged     bool `json:"ragged"`
}

func columnCount(rows types.Rows, row int) (int, error) {
	if row < 0 || row >= len(rows) {
		return 0, fmt.Errorf("row %d of %d: %w", row, len(rows), types.ErrIndexOutOfRange)
	}
	return len(rows[row]), nil
}

func cell(rows types.Rows, row, col int) (types.CellValue, error) {
	if row < 0 || row >= len(rows) {
		return types.CellValue{}, fmt.Errorf("row %d of %d: %w", row, len(rows), types.ErrIndexOutOfRange)
	}
	r := rows[row]
	if col < 0 || col >= len(r) {
		return types.CellValue{}, fmt.Errorf("column %d of %d in row %d: %w", col, len(r), row, types.ErrIndexOutOfRange)
	}
	return r[col], nil
}
