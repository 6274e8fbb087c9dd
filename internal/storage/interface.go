package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/weekboard/internal/models"
)

var (
	// ErrNotFound means nothing has been saved under the requested key.
	ErrNotFound = errors.New("board not found")
	// ErrNotLoaded is returned when the store is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
)

// BoardInfo summarizes one saved board.
type BoardInfo struct {
	Key       string
	UpdatedAt time.Time
	Rows      int
	Year      int
	Week      int
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Boards
	LoadBoard(key string) (models.BoardState, error)
	SaveBoard(key string, state models.BoardState) error
	DeleteBoard(key string) error
	ListBoards() ([]BoardInfo, error)

	// Utils
	GetConfigPath() string
}

// New picks the provider for path by extension: ".json" files use the JSON
// store, anything else is a SQLite database.
func New(path string) Provider {
	if IsJSONPath(path) {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}

func IsJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
