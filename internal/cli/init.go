package cli

import (
	"errors"
	"os"

	"github.com/julianstephens/weekboard/internal/config"
)

type InitCmd struct {
	NoConfig bool `help:"Do not write a default config file."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized weekboard storage at: %s\n", ctx.Store.GetConfigPath())

	if c.NoConfig || ctx.Config == nil {
		return nil
	}
	if _, err := os.Stat(ctx.Config.Path()); !errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := config.WriteDefault(ctx.Config.Path()); err != nil {
		return err
	}
	ctx.printf("Wrote default config to: %s\n", ctx.Config.Path())
	return nil
}
