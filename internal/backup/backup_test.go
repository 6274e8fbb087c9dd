package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/weekboard/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS test_data (
		id INTEGER PRIMARY KEY,
		name TEXT,
		value INTEGER
	)`)
	if err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec("INSERT INTO test_data (id, name, value) VALUES (1, 'test1', 100), (2, 'test2', 200)"); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}

	return dbPath
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM test_data").Scan(&count); err != nil {
		t.Fatalf("failed to query database: %v", err)
	}
	return count
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath, 0)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if filepath.Dir(backupPath) != mgr.GetBackupDir() {
		t.Errorf("backup written outside the backup dir: %s", backupPath)
	}
	if filepath.Ext(backupPath) != ".db" {
		t.Errorf("expected .db backup, got %s", backupPath)
	}
	if count := countRows(t, backupPath); count != 2 {
		t.Errorf("expected 2 rows in backup, got %d", count)
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)

	const keep = 4
	mgr := NewManager(dbPath, keep)

	for i := 0; i < keep+5; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != keep {
		t.Errorf("expected %d backups after rotation, got %d", keep, len(backups))
	}

	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups are not sorted correctly: backup %d is newer than backup %d", i, i-1)
		}
	}
}

func TestDefaultMaxBackups(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "weekboard.db"), -1)
	if mgr.maxBackups != constants.MaxBackups {
		t.Errorf("expected default limit %d, got %d", constants.MaxBackups, mgr.maxBackups)
	}
}

func TestListBackups(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	// Unrelated files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
	for _, backup := range backups {
		if backup.Path == "" || backup.Size == 0 || backup.Timestamp.IsZero() {
			t.Errorf("incomplete backup info: %+v", backup)
		}
	}
}

func TestParseName(t *testing.T) {
	mgr := NewManager("/tmp/weekboard.db", 0)
	base := time.Date(2026, 10, 19, 8, 30, 15, 0, time.Local)

	tests := []struct {
		name string
		want time.Time
		ok   bool
	}{
		{"weekboard-20261019-083015.db", base, true},
		{"weekboard-20261019-083015-3.db", base.Add(3), true},
		{"weekboard-20261019-083015.json", time.Time{}, false},
		{"weekboard-20261019.db", time.Time{}, false},
		{"weekboard-20261019-083015-x.db", time.Time{}, false},
		{"otherapp-20261019-083015.db", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := mgr.parseName(tt.name)
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("parseName(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("INSERT INTO test_data (id, name, value) VALUES (3, 'test3', 300)"); err != nil {
		t.Fatalf("failed to insert data: %v", err)
	}
	db.Close()

	if count := countRows(t, dbPath); count != 3 {
		t.Fatalf("expected 3 rows before restore, got %d", count)
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	if count := countRows(t, dbPath); count != 2 {
		t.Errorf("expected 2 rows after restore, got %d", count)
	}
	if safety == "" {
		t.Fatal("expected a safety copy of the pre-restore store")
	}
	if count := countRows(t, safety); count != 3 {
		t.Errorf("safety copy should hold the pre-restore data, got %d rows", count)
	}
}

func TestVerifyBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if err := mgr.verify(backupPath); err != nil {
		t.Errorf("verify failed for valid backup: %v", err)
	}

	invalidPath := filepath.Join(mgr.GetBackupDir(), "invalid.db")
	if err := os.WriteFile(invalidPath, []byte("not a database"), 0600); err != nil {
		t.Fatalf("failed to create invalid file: %v", err)
	}
	if err := mgr.verify(invalidPath); err == nil {
		t.Error("verify should fail for invalid backup")
	}
	if _, err := mgr.RestoreBackup(invalidPath); err == nil {
		t.Error("expected error when restoring from corrupted backup")
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)
	fixed := time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	paths := make(map[string]bool)
	for i := 0; i < 5; i++ {
		backupPath, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		filename := filepath.Base(backupPath)
		if paths[filename] {
			t.Errorf("duplicate backup filename: %s", filename)
		}
		paths[filename] = true
	}
}

func TestBackupWithNoStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "nonexistent.db"), 0)
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error when backing up a missing store")
	}
}
