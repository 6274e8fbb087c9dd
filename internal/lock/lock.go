// Package lock keeps two interactive sessions from editing the same store.
package lock

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/weekboard/internal/logger"
)

// ErrLocked means a live session already holds the lock.
var ErrLocked = errors.New("board is locked by another session")

// Info is the content of a lock file.
type Info struct {
	Session    string    `json:"session"`
	PID        int       `json:"pid"`
	Executable string    `json:"executable"`
	Host       string    `json:"host"`
	StartedAt  time.Time `json:"started_at"`
}

// Lock is a held session lock.
type Lock struct {
	path string
	info Info
}

// Acquire creates the lock file at path. A lock left behind by a process
// that is no longer running is replaced.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	info := Info{
		Session:    uuid.NewString(),
		PID:        os.Getpid(),
		Executable: executable(os.Getpid()),
		StartedAt:  time.Now().UTC(),
	}
	info.Host, _ = os.Hostname()

	data, err := json.Marshal(info)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, werr := f.Write(data)
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lock file: %w", errors.Join(werr, cerr))
			}
			logger.Debug("Session lock acquired", "path", path, "session", info.Session)
			return &Lock{path: path, info: info}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lock file: %w", err)
		}

		holder, alive, err := Inspect(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Unreadable lock file, treating as stale", "path", path, "error", err)
		}
		if alive {
			return nil, fmt.Errorf("%w (pid %d since %s)", ErrLocked, holder.PID, holder.StartedAt.Local().Format(time.DateTime))
		}
		logger.Info("Removing stale session lock", "path", path, "pid", holder.PID)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lock: %w", err)
		}
	}
	return nil, ErrLocked
}

// Info returns the lock's metadata.
func (l *Lock) Info() Info { return l.info }

// Release removes the lock file if it still belongs to this session.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	current, _, err := Inspect(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if current.Session != l.info.Session {
		logger.Warn("Session lock was taken over, leaving it in place", "path", l.path)
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// Inspect reads the lock at path and reports whether its process is still
// running. A missing file returns an error wrapping os.ErrNotExist.
func Inspect(path string) (Info, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, false, err
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return Info{}, false, fmt.Errorf("failed to parse lock file: %w", err)
	}
	return info, Alive(info), nil
}

// Alive reports whether the process recorded in info is still running. A
// recycled PID running a different executable counts as dead.
func Alive(info Info) bool {
	if info.PID <= 0 {
		return false
	}
	proc, err := ps.FindProcess(info.PID)
	if err != nil || proc == nil {
		return false
	}
	if info.Executable != "" && proc.Executable() != info.Executable {
		return false
	}
	return true
}

func executable(pid int) string {
	proc, err := ps.FindProcess(pid)
	if err != nil || proc == nil {
		return ""
	}
	return proc.Executable()
}
