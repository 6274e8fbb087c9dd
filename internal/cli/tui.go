package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/weekboard/internal/autosave"
	"github.com/julianstephens/weekboard/internal/backup"
	"github.com/julianstephens/weekboard/internal/constants"
	"github.com/julianstephens/weekboard/internal/controller"
	"github.com/julianstephens/weekboard/internal/history"
	"github.com/julianstephens/weekboard/internal/lock"
	"github.com/julianstephens/weekboard/internal/logger"
	"github.com/julianstephens/weekboard/internal/models"
	"github.com/julianstephens/weekboard/internal/tui"
	"github.com/julianstephens/weekboard/internal/watcher"
)

type TuiCmd struct {
	NoWatch bool `help:"Do not reload when other commands change the board."`
}

func (c *TuiCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if cfg == nil {
		return fmt.Errorf("no configuration loaded")
	}

	sessionLock, err := lock.Acquire(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := sessionLock.Release(); err != nil {
			logger.Warn("Failed to release session lock", "error", err)
		}
	}()

	b, loadErr := ctx.LoadBoard()
	switch {
	case errors.Is(loadErr, ErrUnreadableBoard):
		// The first autosave replaces the unreadable board, so a copy must exist first.
		if _, err := ctx.backupManager().CreateBackup(); err != nil {
			return fmt.Errorf("%w; not starting over it without a backup: %w", loadErr, err)
		}
	case loadErr != nil:
		return loadErr
	default:
		// Perform automatic backup on TUI startup (after successful load)
		ctx.PerformAutomaticBackup()
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var p *tea.Program
	send := func(msg tea.Msg) {
		if p != nil {
			p.Send(msg)
		}
	}

	key := ctx.key()
	saver, err := autosave.New(autosave.Config{
		QuietWindow: cfg.AutosaveDebounce,
		Save: func(_ context.Context, state models.BoardState) error {
			return ctx.Store.SaveBoard(key, state)
		},
		OnSaved: func(at time.Time, state models.BoardState) { send(tui.SavedMsg{At: at, State: state}) },
		OnError: func(err error) { send(tui.SaveFailedMsg{Err: err}) },
	})
	if err != nil {
		return err
	}

	ctrl := controller.New(controller.Config{
		Board:   b,
		History: history.New(cfg.HistoryCapacity),
		Saver:   saver,
	})

	model := tui.NewModel(tui.Config{
		Controller: ctrl,
		Exporter:   ctx.exporter("", ""),
		BoardKey:   key,
		Reload: func() (models.BoardState, error) {
			if err := ctx.Store.Load(); err != nil {
				return models.BoardState{}, err
			}
			return ctx.Store.LoadBoard(key)
		},
		Pending: saver.Pending,
		LoadErr: loadErr,
	})
	p = tea.NewProgram(model, tea.WithAltScreen())

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		if err := saver.Run(gctx); err != nil {
			return fmt.Errorf("autosave stopped: %w", err)
		}
		return nil
	})

	if !c.NoWatch {
		w, err := watcher.New(ctx.Store.GetConfigPath(), 2*constants.DefaultAutosaveDebounce, func() {
			send(tui.StoreChangedMsg{})
		})
		if err != nil {
			logger.Warn("Store watcher unavailable", "error", err)
		} else {
			g.Go(func() error {
				if err := w.Run(gctx); err != nil {
					logger.Warn("Store watcher stopped", "error", err)
				}
				return nil
			})
		}
	}

	if cfg.Backup.Interval > 0 {
		sched, err := backup.NewScheduler(ctx.backupManager(), func(path string, err error) {
			send(tui.BackupMsg{Path: path, Err: err})
		})
		if err != nil {
			return err
		}
		if _, err := sched.Every(cfg.Backup.Interval); err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				logger.Warn("Failed to stop backup scheduler", "error", err)
			}
		}()
	}

	_, runErr := p.Run()

	cancel()
	if err := g.Wait(); err != nil {
		logger.Error("Background task failed", "error", err)
	}

	// Whatever is still pending after the last keystroke gets written now.
	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := saver.Flush(flushCtx); err != nil {
		return err
	}

	if runErr != nil {
		return fmt.Errorf("tui exited: %w", runErr)
	}
	return nil
}
