// Package view holds the per-session view state: the sort direction and the
// set of selected rows. Selected indices are physical, that is indices into
// the table as loaded, so they stay valid when the sort direction flips.
package view

import (
	"fmt"
	"sort"

	"github.com/mesh-intelligence/tabview/pkg/types"
)

// ViewState tracks sort direction and selection for one table.
// It is not safe for concurrent use; the session drives it from a single
// step function.
type ViewState struct {
	reversed  bool
	selection map[int]struct{}

	// rowCount is the row count of the table the selection refers to.
	rowCount int
}

// New returns a fresh view state: ascending order, nothing selected.
func New() *ViewState {
	return &ViewState{selection: make(map[int]struct{})}
}

// Restore returns a view state holding p verbatim. The restored selection
// refers to the table of the session that saved it and lasts until the next
// OnTableReplaced.
func Restore(p types.PersistedView) *ViewState {
	v := New()
	v.reversed = p.Reversed
	for _, idx := range p.Selection {
		if idx >= 0 {
			v.selection[idx] = struct{}{}
		}
	}
	return v
}

// Reversed reports whether rows are displayed last-to-first.
func (v *ViewState) Reversed() bool { return v.reversed }

// RowCount returns the row count of the table the view is bound to.
func (v *ViewState) RowCount() int { return v.rowCount }

// ToggleSort flips the sort direction. The selection is unaffected.
func (v *ViewState) ToggleSort() {
	v.reversed = !v.reversed
}

// LogicalToPhysical maps a displayed row position to a table row index.
// Returns ErrIndexOutOfRange if logical is not in [0, rowCount).
func (v *ViewState) LogicalToPhysical(logical, rowCount int) (int, error) {
	if logical < 0 || logical >= rowCount {
		return 0, fmt.Errorf("logical row %d of %d: %w", logical, rowCount, types.ErrIndexOutOfRange)
	}
	if v.reversed {
		return rowCount - 1 - logical, nil
	}
	return logical, nil
}

// PhysicalToLogical is the inverse of LogicalToPhysical.
func (v *ViewState) PhysicalToLogical(physical, rowCount int) (int, error) {
	if physical < 0 || physical >= rowCount {
		return 0, fmt.Errorf("physical row %d of %d: %w", physical, rowCount, types.ErrIndexOutOfRange)
	}
	// The reversed mapping is its own inverse.
	if v.reversed {
		return rowCount - 1 - physical, nil
	}
	return physical, nil
}

// Order returns the physical row indices in display order.
func (v *ViewState) Order(rowCount int) []int {
	if rowCount <= 0 {
		return nil
	}
	order := make([]int, rowCount)
	for i := range order {
		if v.reversed {
			order[i] = rowCount - 1 - i
		} else {
			order[i] = i
		}
	}
	return order
}

// ToggleRowSelection selects the row if it is not selected and deselects it
// otherwise. Returns ErrIndexOutOfRange if physical is not a row of the
// bound table.
func (v *ViewState) ToggleRowSelection(physical int) error {
	if physical < 0 || physical >= v.rowCount {
		return fmt.Errorf("physical row %d of %d: %w", physical, v.rowCount, types.ErrIndexOutOfRange)
	}
	if _, ok := v.selection[physical]; ok {
		delete(v.selection, physical)
	} else {
		v.selection[physical] = struct{}{}
	}
	return nil
}

// IsSelected reports whether the row is selected. Any index, including one
// out of range for the current table, is accepted; unknown rows are simply
// not selected.
func (v *ViewState) IsSelected(physical int) bool {
	_, ok := v.selection[physical]
	return ok
}

// OnTableReplaced binds the view to a newly loaded table of newRowCount rows.
// The selection is cleared; the sort direction is kept.
func (v *ViewState) OnTableReplaced(newRowCount int) {
	if newRowCount < 0 {
		newRowCount = 0
	}
	v.rowCount = newRowCount
	clear(v.selection)
}

// ClearSelection deselects every row.
func (v *ViewState) ClearSelection() {
	clear(v.selection)
}

// SelectedCount returns the number of selected rows.
func (v *ViewState) SelectedCount() int { return len(v.selection) }

// Selection returns the selected physical indices in ascending order.
func (v *ViewState) Selection() []int {
	out := make([]int, 0, len(v.selection))
	for idx := range v.selection {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Persisted returns the part of the view that survives a restart.
func (v *ViewState) Persisted() types.PersistedView {
	return types.PersistedView{
		Reversed:  v.reversed,
		Selection: v.Selection(),
	}
}
