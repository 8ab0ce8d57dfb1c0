package session

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/tabview/internal/loader"
	"github.com/mesh-intelligence/tabview/pkg/types"
)

// Event is one user interaction delivered to Step.
type Event interface {
	apply(ctx context.Context, s *Session, res *StepResult) error
}

// ToggleSort flips the display order.
type ToggleSort struct{}

func (ToggleSort) apply(_ context.Context, s *Session, _ *StepResult) error {
	s.view.ToggleSort()
	return nil
}

// ClickRow toggles the selection of the row displayed at Logical.
type ClickRow struct {
	Logical int
}

func (e ClickRow) apply(_ context.Context, s *Session, _ *StepResult) error {
	physical, err := s.view.LogicalToPhysical(e.Logical, s.table.RowCount())
	if err != nil {
		s.log.WithError(err).Debug("click outside table")
		return err
	}
	return s.view.ToggleRowSelection(physical)
}

// DropFile loads the tab-delimited file at Path.
type DropFile struct {
	Path string
}

func (e DropFile) apply(_ context.Context, s *Session, res *StepResult) error {
	return s.load(res, e.Path, func() (types.Rows, int64, error) {
		return loader.LoadFileSize(e.Path)
	})
}

// DropBytes loads tab-delimited content delivered without a path. Name
// labels the source in messages.
type DropBytes struct {
	Name string
	Data []byte
}

func (e DropBytes) apply(_ context.Context, s *Session, res *StepResult) error {
	name := e.Name
	if name == "" {
		name = "dropped content"
	}
	return s.load(res, name, func() (types.Rows, int64, error) {
		rows, err := loader.DecodeText(e.Data)
		return rows, int64(len(e.Data)), err
	})
}

// RunQuery loads the result of Query run against a relational source.
type RunQuery struct {
	Driver string
	DSN    string
	Query  string
}

func (e RunQuery) apply(ctx context.Context, s *Session, res *StepResult) error {
	source := fmt.Sprintf("%s query", e.Driver)
	return s.load(res, source, func() (types.Rows, int64, error) {
		rows, err := loader.LoadSource(ctx, e.Driver, e.DSN, e.Query)
		return rows, -1, err
	})
}

// Checkpoint saves the view state to the store.
type Checkpoint struct{}

func (Checkpoint) apply(_ context.Context, s *Session, _ *StepResult) error {
	return s.checkpoint()
}
