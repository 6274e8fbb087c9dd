package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/weekboard/internal/models"
)

type storeFactory struct {
	name string
	file string
}

var factories = []storeFactory{
	{name: "sqlite", file: "weekboard.db"},
	{name: "json", file: "weekboard.json"},
}

func setupTestStore(t *testing.T, f storeFactory) Provider {
	t.Helper()
	store := New(filepath.Join(t.TempDir(), f.file))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleState() models.BoardState {
	return models.BoardState{
		Year: 2026,
		Week: 42,
		Columns: []models.ColumnState{
			{Position: 0, RequiredWorkers: 2},
			{Position: 1, RequiredWorkers: 1},
			{Position: 2, RequiredWorkers: 1},
			{Position: 3, RequiredWorkers: 1},
			{Position: 4, RequiredWorkers: 1},
			{Position: 5, RequiredWorkers: 1},
			{Position: 6, RequiredWorkers: 3},
		},
		Rows: []models.RowState{
			{Position: 0, Label: "Anna", Included: true, Tiles: []models.TileState{"Praca", "A", "U", "A", "A", "A", "Praca"}},
			{Position: 1, Label: "Bob", Included: false, Tiles: []models.TileState{"A", "A", "A", "A", "Praca", "U", "A"}},
		},
	}
}

func TestNewSelectsProviderByExtension(t *testing.T) {
	tests := []struct {
		path string
		json bool
	}{
		{"board.json", true},
		{"/tmp/Board.JSON", true},
		{"weekboard.db", false},
		{"/tmp/json/weekboard", false},
	}
	for _, tt := range tests {
		_, isJSON := New(tt.path).(*JSONStore)
		if isJSON != tt.json {
			t.Errorf("New(%q) JSON store = %v, want %v", tt.path, isJSON, tt.json)
		}
	}
}

func TestSaveAndLoadBoard(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			store := setupTestStore(t, f)
			want := sampleState()

			if err := store.SaveBoard("current", want); err != nil {
				t.Fatalf("SaveBoard failed: %v", err)
			}

			got, err := store.LoadBoard("current")
			if err != nil {
				t.Fatalf("LoadBoard failed: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("loaded board mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveBoardOverwrites(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			store := setupTestStore(t, f)
			first := sampleState()
			second := sampleState()
			second.Rows = second.Rows[:1]
			second.Rows[0].Label = "Anna K."

			if err := store.SaveBoard("current", first); err != nil {
				t.Fatalf("SaveBoard failed: %v", err)
			}
			if err := store.SaveBoard("current", second); err != nil {
				t.Fatalf("SaveBoard (overwrite) failed: %v", err)
			}

			got, err := store.LoadBoard("current")
			if err != nil {
				t.Fatalf("LoadBoard failed: %v", err)
			}
			if diff := cmp.Diff(second, got); diff != "" {
				t.Errorf("overwrite mismatch (-want +got):\n%s", diff)
			}

			infos, err := store.ListBoards()
			if err != nil {
				t.Fatalf("ListBoards failed: %v", err)
			}
			if len(infos) != 1 || infos[0].Rows != 1 {
				t.Errorf("expected one board with 1 row, got %+v", infos)
			}
		})
	}
}

func TestLoadBoardNotFound(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			store := setupTestStore(t, f)

			_, err := store.LoadBoard("missing")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
			if err := store.DeleteBoard("missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("DeleteBoard: expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestListAndDeleteBoards(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			store := setupTestStore(t, f)

			empty := models.BoardState{}
			if err := store.SaveBoard("week-43", empty); err != nil {
				t.Fatalf("SaveBoard failed: %v", err)
			}
			if err := store.SaveBoard("current", sampleState()); err != nil {
				t.Fatalf("SaveBoard failed: %v", err)
			}

			infos, err := store.ListBoards()
			if err != nil {
				t.Fatalf("ListBoards failed: %v", err)
			}
			if len(infos) != 2 {
				t.Fatalf("expected 2 boards, got %d", len(infos))
			}
			if infos[0].Key != "current" || infos[1].Key != "week-43" {
				t.Errorf("boards not sorted by key: %+v", infos)
			}
			if infos[0].Year != 2026 || infos[0].Week != 42 || infos[0].Rows != 2 {
				t.Errorf("unexpected summary for current: %+v", infos[0])
			}
			if infos[0].UpdatedAt.IsZero() {
				t.Error("expected UpdatedAt to be set")
			}

			if err := store.DeleteBoard("week-43"); err != nil {
				t.Fatalf("DeleteBoard failed: %v", err)
			}
			infos, err = store.ListBoards()
			if err != nil {
				t.Fatalf("ListBoards failed: %v", err)
			}
			if len(infos) != 1 {
				t.Errorf("expected 1 board after delete, got %d", len(infos))
			}
		})
	}
}

func TestBoardsSurviveReopen(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), f.file)
			store := New(path)
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			if err := store.SaveBoard("current", sampleState()); err != nil {
				t.Fatalf("SaveBoard failed: %v", err)
			}
			store.Close()

			reopened := New(path)
			if err := reopened.Load(); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			defer reopened.Close()

			got, err := reopened.LoadBoard("current")
			if err != nil {
				t.Fatalf("LoadBoard failed: %v", err)
			}
			if diff := cmp.Diff(sampleState(), got); diff != "" {
				t.Errorf("reopened board mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadUninitialized(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			store := New(filepath.Join(t.TempDir(), f.file))

			if err := store.Load(); !errors.Is(err, ErrNotLoaded) {
				t.Errorf("Load: expected ErrNotLoaded, got %v", err)
			}
			if _, err := store.LoadBoard("current"); !errors.Is(err, ErrNotLoaded) {
				t.Errorf("LoadBoard: expected ErrNotLoaded, got %v", err)
			}
			if err := store.SaveBoard("current", sampleState()); !errors.Is(err, ErrNotLoaded) {
				t.Errorf("SaveBoard: expected ErrNotLoaded, got %v", err)
			}
		})
	}
}

func TestSaveBoardRejectsEmptyKey(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			store := setupTestStore(t, f)
			if err := store.SaveBoard("  ", sampleState()); err == nil {
				t.Error("expected error for empty key")
			}
		})
	}
}

func TestJSONStoreFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weekboard.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.SaveBoard("current", sampleState()); err != nil {
		t.Fatalf("SaveBoard failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected file mode 0600, got %o", perm)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the store file, temp files left behind: %v", entries)
	}

	if err := store.Init(); err == nil {
		t.Error("expected second Init to fail on an existing file")
	}
}

func TestJSONStoreRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weekboard.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "boards": {}}`), 0600); err != nil {
		t.Fatal(err)
	}

	if err := NewJSONStore(path).Load(); err == nil {
		t.Error("expected Load to refuse a newer store version")
	}
}

func TestSQLiteSchemaVersion(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "weekboard.db"))
	if _, _, err := store.SchemaVersion(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded before Init, got %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer store.Close()

	current, latest, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != latest || latest < 1 {
		t.Errorf("expected fully migrated schema, got current=%d latest=%d", current, latest)
	}
}
