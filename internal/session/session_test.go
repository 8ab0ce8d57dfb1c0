package session

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tabview/internal/logging"
	"github.com/mesh-intelligence/tabview/internal/state"
	"github.com/mesh-intelligence/tabview/pkg/types"

	_ "modernc.org/sqlite"
)

const sample = "1\tfoo\tbar\n2\tbaz\tqux\n3\tquux\tcorge\n"

func newSession(t *testing.T, view types.PersistedView) (*Session, *state.MemoryStore) {
	t.Helper()
	store := state.NewMemoryStore(view)
	return New(store, logging.Discard()), store
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewRestoresPersistedView(t *testing.T) {
	s, _ := newSession(t, types.PersistedView{Reversed: true, Selection: []int{1}})

	assert.True(t, s.View().Reversed())
	assert.True(t, s.View().IsSelected(1))
	assert.Equal(t, 0, s.Table().RowCount(), "tables are never persisted")
	assert.Empty(t, s.Frame().Source)
}

type failingStore struct{}

func (failingStore) Load() (types.PersistedView, error) {
	return types.PersistedView{}, errors.New("disk gone")
}
func (failingStore) Save(types.PersistedView) error { return errors.New("disk gone") }

func TestNewWithUnreadableStoreStartsFresh(t *testing.T) {
	s := New(failingStore{}, logging.Discard())
	assert.False(t, s.View().Reversed())
	assert.Empty(t, s.View().Selection())

	res := s.Step(context.Background(), Checkpoint{})
	assert.Error(t, res.Err())
	assert.Error(t, s.Close())
}

func TestDropFileReplacesTableAndClearsSelection(t *testing.T) {
	s, _ := newSession(t, types.PersistedView{Reversed: true, Selection: []int{0, 2}})
	path := writeFile(t, "data.tsv", sample)

	res := s.Step(context.Background(), DropFile{Path: path})
	require.NoError(t, res.Err())
	assert.True(t, res.Loaded)
	assert.Contains(t, res.Message, "loaded 3 rows")
	assert.Contains(t, res.Message, "B)")

	assert.Equal(t, 3, s.Table().RowCount())
	assert.Empty(t, s.View().Selection())
	assert.True(t, s.View().Reversed(), "sort direction survives a load")
	assert.Equal(t, path, s.Frame().Source)

	c, err := s.Table().Cell(1, 2)
	require.NoError(t, err)
	assert.Equal(t, "qux", c.String())
}

func TestFailedLoadKeepsPreviousTable(t *testing.T) {
	s, _ := newSession(t, types.PersistedView{})
	path := writeFile(t, "data.tsv", sample)
	ctx := context.Background()

	require.NoError(t, s.Step(ctx, DropFile{Path: path}, ClickRow{Logical: 1}).Err())
	require.Equal(t, []int{1}, s.View().Selection())

	tests := []struct {
		name    string
		event   Event
		wantErr error
	}{
		{name: "missing file", event: DropFile{Path: filepath.Join(t.TempDir(), "gone.tsv")}, wantErr: types.ErrSourceUnreadable},
		{name: "binary bytes", event: DropBytes{Name: "blob.bin", Data: []byte{0xFF, 0x00, 0xC3}}, wantErr: types.ErrDecode},
		{name: "unreachable source", event: RunQuery{Driver: types.DriverSQLite, DSN: filepath.Join(t.TempDir(), "none.db"), Query: "SELECT 1"}, wantErr: types.ErrConnectionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Step(ctx, tt.event)
			assert.ErrorIs(t, res.Err(), tt.wantErr)
			assert.False(t, res.Loaded)
			assert.Contains(t, res.Message, "failed")

			assert.Equal(t, 3, s.Table().RowCount())
			assert.Equal(t, path, s.Frame().Source)
			assert.Equal(t, []int{1}, s.View().Selection(), "a failed load does not touch the selection")
		})
	}
}

func TestClickRowMapsThroughSortDirection(t *testing.T) {
	s, _ := newSession(t, types.PersistedView{})
	ctx := context.Background()

	res := s.Step(ctx,
		DropBytes{Name: "sample", Data: []byte(sample)},
		ToggleSort{},
		ClickRow{Logical: 0},
	)
	require.NoError(t, res.Err())

	// Reversed: logical 0 is the last physical row.
	assert.Equal(t, []int{2}, s.View().Selection())

	p, err := s.View().LogicalToPhysical(0, s.Table().RowCount())
	require.NoError(t, err)
	assert.Equal(t, 2, p)

	res = s.Step(ctx, ToggleSort{}, ClickRow{Logical: 0})
	require.NoError(t, res.Err())
	assert.Equal(t, []int{0, 2}, s.View().Selection())
}

func TestClickRowOutOfRange(t *testing.T) {
	s, _ := newSession(t, types.PersistedView{})
	ctx := context.Background()

	res := s.Step(ctx, ClickRow{Logical: 0})
	assert.ErrorIs(t, res.Err(), types.ErrIndexOutOfRange)

	res = s.Step(ctx, DropBytes{Data: []byte("a\nb\n")}, ClickRow{Logical: 5}, ClickRow{Logical: 1})
	require.Len(t, res.Errors, 1)
	assert.ErrorIs(t, res.Errors[0], types.ErrIndexOutOfRange)
	assert.Equal(t, []int{1}, s.View().Selection(), "later events still run")
}

func TestCheckpointSavesViewOnly(t *testing.T) {
	s, store := newSession(t, types.PersistedView{})
	ctx := context.Background()

	res := s.Step(ctx, DropBytes{Data: []byte(sample)}, ClickRow{Logical: 0}, ToggleSort{}, Checkpoint{})
	require.NoError(t, res.Err())
	assert.Equal(t, 1, store.Saves())

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, types.PersistedView{Reversed: true, Selection: []int{0}}, saved)

	require.NoError(t, s.Close())
	assert.Equal(t, 2, store.Saves())
}

func TestRunQueryLoadsRelationalRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.db")
	db, err := sql.Open(types.DriverSQLite, path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE t (n INTEGER, b BLOB, x TEXT);
INSERT INTO t VALUES (1, x'00FF', NULL), (2, NULL, 'two');`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s, _ := newSession(t, types.PersistedView{})
	res := s.Step(context.Background(), RunQuery{Driver: types.DriverSQLite, DSN: path, Query: "SELECT n, b, x FROM t ORDER BY n"})
	require.NoError(t, res.Err())
	assert.Equal(t, "loaded 2 rows from sqlite query", res.Message)

	f := s.Frame()
	require.Len(t, f.Rows, 2)
	assert.Equal(t, []string{"1", types.BlobSentinel, types.NullSentinel}, f.Rows[0].Cells)
	assert.Equal(t, []string{"2", types.NullSentinel, "two"}, f.Rows[1].Cells)
}

func TestRunQueryBadStatement(t *testing.T) {
	s, _ := newSession(t, types.PersistedView{})
	res := s.Step(context.Background(), RunQuery{Driver: types.DriverSQLite, DSN: ":memory:", Query: "NOT SQL"})
	assert.ErrorIs(t, res.Err(), types.ErrQueryFailed)
	assert.Equal(t, 0, s.Table().RowCount())
}

func TestFrame(t *testing.T) {
	s, _ := newSession(t, types.PersistedView{})
	ctx := context.Background()

	require.NoError(t, s.Step(ctx, DropBytes{Name: "ragged", Data: []byte("a\tb\n c\nd\te\tf\n")}).Err())
	require.NoError(t, s.Step(ctx, ClickRow{Logical: 1}).Err())

	f := s.Frame()
	assert.Equal(t, "ragged", f.Source)
	assert.False(t, f.Reversed)
	assert.True(t, f.Shape.Ragged)
	assert.Equal(t, 3, f.Shape.MaxColumns)
	assert.Equal(t, 1, f.Selected)
	require.Len(t, f.Rows, 3)
	assert.Equal(t, FrameRow{Logical: 1, Physical: 1, Selected: true, Cells: []string{" c"}}, f.Rows[1])

	require.NoError(t, s.Step(ctx, ToggleSort{}).Err())
	f = s.Frame()
	assert.True(t, f.Reversed)
	assert.Equal(t, 2, f.Rows[0].Physical)
	assert.Equal(t, []string{"d", "e", "f"}, f.Rows[0].Cells)
	assert.Equal(t, 1, f.Rows[1].Physical)
	assert.True(t, f.Rows[1].Selected)

	sel := f.SelectedRows()
	require.Len(t, sel, 1)
	assert.Equal(t, 1, sel[0].Physical)
}

func TestFrameEmptySession(t *testing.T) {
	s, _ := newSession(t, types.PersistedView{Selection: []int{4}})
	f := s.Frame()
	assert.Empty(t, f.Rows)
	assert.Equal(t, 0, f.Selected, "restored selection has no rows to show")
}

func TestLoadMessage(t *testing.T) {
	assert.Equal(t, "loaded 1 row from x (10 B)", loadMessage(1, "x", 10))
	assert.Equal(t, "loaded 0 rows from x (0 B)", loadMessage(0, "x", 0))
	assert.Equal(t, "loaded 2 rows from q", loadMessage(2, "q", -1))
	assert.Equal(t, "loaded 5 rows from big (2.0 kB)", loadMessage(5, "big", 2000))
}

func TestTableAndViewAccessors(t *testing.T) {
	s, _ := newSession(t, types.PersistedView{})
	res := s.Step(context.Background(), DropBytes{Data: []byte("a\tb\nc\n")}, ToggleSort{})
	require.NoError(t, res.Err())

	assert.Equal(t, 2, s.Table().RowCount())
	assert.True(t, s.Table().Shape().Ragged)
	assert.True(t, s.View().Reversed())
	assert.Equal(t, []int{1, 0}, s.View().Order(s.Table().RowCount()))
	assert.Equal(t, "dropped content", s.Frame().Source)
}
