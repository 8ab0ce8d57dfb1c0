package session

import (
	"github.com/mesh-intelligence/tabview/internal/table"
)

// Frame is everything a renderer needs to draw one pass: rows in display
// order with their physical index, selection flag and formatted cells.
type Frame struct {
	Source   string
	Reversed bool
	Shape    table.Shape
	Selected int
	Rows     []FrameRow
}

// FrameRow is one displayed row. Cells has the row's own width; ragged rows
// are not padded.
type FrameRow struct {
	Logical  int
	Physical int
	Selected bool
	Cells    []string
}

// Frame builds the display frame from a single snapshot of the table.
func (s *Session) Frame() Frame {
	snap := s.table.Snapshot()
	n := snap.RowCount()

	f := Frame{
		Source:   s.source,
		Reversed: s.view.Reversed(),
		Shape:    snap.Shape(),
		Rows:     make([]FrameRow, 0, n),
	}
	for logical, physical := range s.view.Order(n) {
		row, err := snap.Row(physical)
		if err != nil {
			// Order never yields an index outside the snapshot.
			continue
		}
		selected := s.view.IsSelected(physical)
		if selected {
			f.Selected++
		}
		f.Rows = append(f.Rows, FrameRow{
			Logical:  logical,
			Physical: physical,
			Selected: selected,
			Cells:    row.Strings(),
		})
	}
	return f
}

// SelectedRows returns only the selected rows of the frame, in display order.
func (f Frame) SelectedRows() []FrameRow {
	var out []FrameRow
	for _, r := range f.Rows {
		if r.Selected {
			out = append(out, r)
		}
	}
	return out
}
