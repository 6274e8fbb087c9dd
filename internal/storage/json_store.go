package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/weekboard/internal/models"
)

const jsonStoreVersion = 1

type boardRecord struct {
	State     models.BoardState `json:"state"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type Store struct {
	Version int                    `json:"version"`
	Boards  map[string]boardRecord `json:"boards"`
}

// JSONStore keeps every board in one JSON document. Writes replace the file
// atomically.
type JSONStore struct {
	path string

	mu    sync.RWMutex
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = &Store{
		Version: jsonStoreVersion,
		Boards:  make(map[string]boardRecord),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: run 'weekboard init' first", ErrNotLoaded)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if store.Version > jsonStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade weekboard", store.Version, jsonStoreVersion)
	}
	if store.Boards == nil {
		store.Boards = make(map[string]boardRecord)
	}

	s.mu.Lock()
	s.store = store
	s.mu.Unlock()
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes the document to a temp file in the same directory and renames
// it over the old one. Callers hold s.mu.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) LoadBoard(key string) (models.BoardState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return models.BoardState{}, ErrNotLoaded
	}

	rec, ok := s.store.Boards[key]
	if !ok {
		return models.BoardState{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return rec.State.Clone(), nil
}

func (s *JSONStore) SaveBoard(key string, state models.BoardState) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("board key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNotLoaded
	}

	prev, existed := s.store.Boards[key]
	s.store.Boards[key] = boardRecord{State: state.Clone(), UpdatedAt: time.Now().UTC()}
	if err := s.save(); err != nil {
		if existed {
			s.store.Boards[key] = prev
		} else {
			delete(s.store.Boards, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) DeleteBoard(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNotLoaded
	}

	prev, ok := s.store.Boards[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	delete(s.store.Boards, key)
	if err := s.save(); err != nil {
		s.store.Boards[key] = prev
		return err
	}
	return nil
}

func (s *JSONStore) ListBoards() ([]BoardInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return nil, ErrNotLoaded
	}

	infos := make([]BoardInfo, 0, len(s.store.Boards))
	for key, rec := range s.store.Boards {
		infos = append(infos, BoardInfo{
			Key:       key,
			UpdatedAt: rec.UpdatedAt,
			Rows:      len(rec.State.Rows),
			Year:      rec.State.Year,
			Week:      rec.State.Week,
		})
	}
	slices.SortFunc(infos, func(a, b BoardInfo) int {
		return strings.Compare(a.Key, b.Key)
	})
	return infos, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
