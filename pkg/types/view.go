package types

import "sort"

// PersistedView is the part of the view state that survives a restart.
// Table contents are never part of it.
type PersistedView struct {
	Reversed  bool  `json:"reversed" yaml:"reversed"`
	Selection []int `json:"selection" yaml:"selection"`
}

// Normalized returns a copy with the selection sorted ascending and
// duplicates and negative indices removed.
func (p PersistedView) Normalized() PersistedView {
	seen := make(map[int]bool, len(p.Selection))
	sel := make([]int, 0, len(p.Selection))
	for _, idx := range p.Selection {
		if idx < 0 || seen[idx] {
			continue
		}
		seen[idx] = true
		sel = append(sel, idx)
	}
	sort.Ints(sel)
	return PersistedView{Reversed: p.Reversed, Selection: sel}
}

// ViewStore loads and saves the persisted view. The session calls Load once
// at startup and Save at every checkpoint.
type ViewStore interface {
	// Load returns the stored view, or the zero PersistedView when nothing
	// has been stored yet.
	Load() (PersistedView, error)

	// Save replaces the stored view.
	Save(view PersistedView) error
}
