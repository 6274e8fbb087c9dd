package cli

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/weekboard/internal/config"
)

type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration." default:"1"`
	Init ConfigInitCmd `cmd:"" help:"Write a commented default config file."`
}

type ConfigShowCmd struct{}

func (cmd *ConfigShowCmd) Run(ctx *Context) error {
	if ctx.Config == nil {
		return fmt.Errorf("no configuration loaded")
	}
	data, err := yaml.Marshal(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	ctx.printf("# %s\n%s", ctx.Config.Path(), data)
	return nil
}

type ConfigInitCmd struct{}

func (cmd *ConfigInitCmd) Run(ctx *Context) error {
	if ctx.Config == nil {
		return fmt.Errorf("no configuration loaded")
	}
	if err := config.WriteDefault(ctx.Config.Path()); err != nil {
		return err
	}
	ctx.printf("✓ Wrote default config to: %s\n", ctx.Config.Path())
	return nil
}
