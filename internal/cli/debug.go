package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/weekboard/internal/logger"
	"github.com/julianstephens/weekboard/internal/storage"
)

type DebugCmd struct {
	Path *DebugPathCmd `cmd:"" help:"Show store, config and log paths."`
	Dump *DebugDumpCmd `cmd:"" help:"Dump saved board state as JSON."`
}

type DebugPathCmd struct{}

func (cmd *DebugPathCmd) Run(ctx *Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"store":   ctx.Store.GetConfigPath(),
		"backups": ctx.backupManager().GetBackupDir(),
		"log":     logger.Path(),
	}
	if ctx.Config != nil {
		output["config"] = ctx.Config.Path()
		output["lock"] = ctx.Config.LockPath()
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	ctx.println(string(jsonBytes))
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" optional:"" help:"Board key to dump. Defaults to the selected board."`
}

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	key := cmd.Key
	if key == "" {
		key = ctx.key()
	}

	state, err := ctx.Store.LoadBoard(key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no board saved under key: %s", key)
		}
		return fmt.Errorf("failed to load board: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal board: %w", err)
	}

	ctx.println(string(jsonBytes))
	return nil
}
