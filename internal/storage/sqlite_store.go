package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/weekboard/internal/migration"
	"github.com/julianstephens/weekboard/internal/models"
	"github.com/julianstephens/weekboard/migrations"
)

const timeFormat = time.RFC3339Nano

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("%w: run 'weekboard init' first", ErrNotLoaded)
	}

	if err := s.open(); err != nil {
		return err
	}

	// Older databases are brought forward; newer ones are refused.
	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// The autosaver and the UI share the handle; one connection keeps SQLite
	// writes serialized.
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *SQLiteStore) runMigrations() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations()
	return err
}

// SchemaVersion reports the applied and the latest known schema versions.
func (s *SQLiteStore) SchemaVersion() (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, ErrNotLoaded
	}
	runner, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, err
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

func (s *SQLiteStore) LoadBoard(key string) (models.BoardState, error) {
	if s.db == nil {
		return models.BoardState{}, ErrNotLoaded
	}

	var raw string
	err := s.db.QueryRow("SELECT state FROM boards WHERE key = ?", key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BoardState{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return models.BoardState{}, fmt.Errorf("failed to load board %q: %w", key, err)
	}

	var state models.BoardState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return models.BoardState{}, fmt.Errorf("failed to parse board %q: %w", key, err)
	}
	return state, nil
}

func (s *SQLiteStore) SaveBoard(key string, state models.BoardState) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("board key cannot be empty")
	}
	if s.db == nil {
		return ErrNotLoaded
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize board: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO boards (key, state, updated_at, row_count)
		VALUES (?, ?, ?, ?)`,
		key, string(data), time.Now().UTC().Format(timeFormat), len(state.Rows),
	)
	if err != nil {
		return fmt.Errorf("failed to save board %q: %w", key, err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) DeleteBoard(key string) error {
	if s.db == nil {
		return ErrNotLoaded
	}

	res, err := s.db.Exec("DELETE FROM boards WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete board %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return nil
}

func (s *SQLiteStore) ListBoards() ([]BoardInfo, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}

	rows, err := s.db.Query(`
		SELECT key, updated_at, row_count,
			COALESCE(json_extract(state, '$.year'), 0),
			COALESCE(json_extract(state, '$.week'), 0)
		FROM boards
		ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	defer rows.Close()

	var infos []BoardInfo
	for rows.Next() {
		var (
			info    BoardInfo
			updated string
		)
		if err := rows.Scan(&info.Key, &updated, &info.Rows, &info.Year, &info.Week); err != nil {
			return nil, err
		}
		if t, err := time.Parse(timeFormat, updated); err == nil {
			info.UpdatedAt = t
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB exposes the handle for maintenance tasks such as backups.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
