// Package session ties a table, its view state and a view store together.
// A renderer drives a Session one interaction step at a time through Step
// and reads the result back through Frame; the session never runs a loop of
// its own.
package session

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/tabview/internal/table"
	"github.com/mesh-intelligence/tabview/internal/view"
	"github.com/mesh-intelligence/tabview/pkg/types"
)

// Session owns the current table and the view state over it. It is driven
// from a single goroutine; the table alone may be read concurrently.
type Session struct {
	table  *table.Table
	view   *view.ViewState
	store  types.ViewStore
	log    logrus.FieldLogger
	source string
}

// New restores the persisted view from store and returns a session with an
// empty table. A store that cannot be read is logged and the session starts
// from a fresh view.
func New(store types.ViewStore, log logrus.FieldLogger) *Session {
	s := &Session{
		table: table.New(),
		store: store,
		log:   log,
	}

	persisted, err := store.Load()
	if err != nil {
		log.WithError(err).Warn("restoring view state failed, starting fresh")
		s.view = view.New()
		return s
	}
	s.view = view.Restore(persisted)
	log.WithFields(logrus.Fields{
		"reversed":  persisted.Reversed,
		"selection": len(persisted.Selection),
	}).Debug("view state restored")
	return s
}

// StepResult reports what one Step did. Message is the user-visible status
// line of the last load, success or failure.
type StepResult struct {
	Message string
	Loaded  bool
	Errors  []error
}

// Err returns the first error of the step, or nil.
func (r StepResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

// Step applies events in order. A failing event is recorded and the
// remaining events still run; no failure is fatal to the session.
func (s *Session) Step(ctx context.Context, events ...Event) StepResult {
	var res StepResult
	for _, ev := range events {
		if err := ev.apply(ctx, s, &res); err != nil {
			res.Errors = append(res.Errors, err)
		}
	}
	return res
}

// Close checkpoints the view state.
func (s *Session) Close() error {
	return s.checkpoint()
}

// Table returns the current table for direct reads. Loads go through Step.
func (s *Session) Table() *table.Table { return s.table }

// View returns the view state. Mutations belong in Step.
func (s *Session) View() *view.ViewState { return s.view }

func (s *Session) checkpoint() error {
	if err := s.store.Save(s.view.Persisted()); err != nil {
		return fmt.Errorf("checkpoint view state: %w", err)
	}
	return nil
}

// replace installs rows as the current table and rebinds the view.
func (s *Session) replace(rows types.Rows, source string) {
	s.table.Replace(rows)
	s.view.OnTableReplaced(len(rows))
	s.source = source
}

// load runs fn and replaces the table with its rows on success. On failure
// the current table stays in place. fn also returns the size of the raw
// input in bytes, or -1 when unknown.
func (s *Session) load(res *StepResult, source string, fn func() (types.Rows, int64, error)) error {
	entry := s.log.WithFields(logrus.Fields{
		"load_id": newLoadID(),
		"source":  source,
	})

	rows, size, err := fn()
	if err != nil {
		entry.WithError(err).Info("load failed, keeping current table")
		res.Message = fmt.Sprintf("load %s failed: %v", source, err)
		return fmt.Errorf("load %s: %w", source, err)
	}

	s.replace(rows, source)
	shape := s.table.Shape()
	entry.WithFields(logrus.Fields{
		"rows":   shape.Rows,
		"ragged": shape.Ragged,
	}).Info("table loaded")
	if shape.Ragged {
		entry.WithFields(logrus.Fields{
			"min_columns": shape.MinColumns,
			"max_columns": shape.MaxColumns,
		}).Debug("rows have uneven column counts")
	}

	res.Loaded = true
	res.Message = loadMessage(shape.Rows, source, size)
	return nil
}

func loadMessage(rows int, source string, size int64) string {
	noun := "rows"
	if rows == 1 {
		noun = "row"
	}
	if size >= 0 {
		return fmt.Sprintf("loaded %d %s from %s (%s)", rows, noun, source, humanize.Bytes(uint64(size)))
	}
	return fmt.Sprintf("loaded %d %s from %s", rows, noun, source)
}

// newLoadID returns an identifier correlating the log lines of one load.
func newLoadID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
