package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/weekboard/internal/cli"
	"github.com/julianstephens/weekboard/internal/config"
	"github.com/julianstephens/weekboard/internal/constants"
	"github.com/julianstephens/weekboard/internal/errors"
	"github.com/julianstephens/weekboard/internal/logger"
	"github.com/julianstephens/weekboard/internal/storage"
)

var CLI struct {
	Version    kong.VersionFlag
	ConfigFile string `help:"Config file path." type:"path" default:"~/.config/weekboard/config.yaml"`
	Store      string `help:"Board store path, overriding storage_path. Files ending in .json use the JSON store." type:"path"`
	Board      string `short:"b" help:"Board key, overriding board_key."`
	LogDebug   bool   `name:"debug" help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize weekboard storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive board." default:"1"`
	Show     cli.ShowCmd     `cmd:"" help:"Print the board."`
	Status   cli.StatusCmd   `cmd:"" help:"Show per-day staffing status."`
	Row      cli.RowCmd      `cmd:"" help:"Manage employee rows."`
	Toggle   cli.ToggleCmd   `cmd:"" help:"Cycle a tile: A -> Praca -> U."`
	Set      cli.SetCmd      `cmd:"" help:"Set tiles of a row to a state."`
	Required cli.RequiredCmd `cmd:"" help:"Set required workers per day."`
	Week     cli.WeekCmd     `cmd:"" help:"Select the ISO year and week."`
	Export   cli.ExportCmd   `cmd:"" help:"Export the week to an .xlsx workbook."`
	Boards   cli.BoardsCmd   `cmd:"" help:"List or delete saved boards."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage board store backups."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Debug    cli.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
	Config   cli.ConfigCmd   `cmd:"" help:"Show or create the config file."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Weekly work-schedule board with staffing validation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.ConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.Format(err))
		os.Exit(1)
	}
	if CLI.Store != "" {
		cfg.StoragePath = CLI.Store
	}

	command := ctx.Command()
	if err := logger.Init(logger.Config{
		Debug:     CLI.LogDebug || cfg.Log.Debug,
		ConfigDir: cfg.Dir(),
		Quiet:     command == "tui",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Starting", "version", constants.Version, "command", command, "store", cfg.StoragePath)

	store := storage.New(cfg.StoragePath)
	defer store.Close()

	appCtx := &cli.Context{
		Store:    store,
		Config:   cfg,
		BoardKey: CLI.Board,
	}

	// Load the store before running the command (init, doctor and restore handle their own state)
	if needsStore(command) {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

func needsStore(command string) bool {
	for _, prefix := range []string{"init", "config", "doctor", "backup restore", "debug path"} {
		if strings.HasPrefix(command, prefix) {
			return false
		}
	}
	return true
}
