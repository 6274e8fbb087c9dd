package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/julianstephens/weekboard/internal/export"
)

type ExportCmd struct {
	Output   string `short:"o" help:"Destination file or directory. Defaults to the configured output directory." type:"path"`
	Template string `help:"Template workbook overriding export.template_path." type:"existingfile"`
	WorkText string `help:"Cell text for Work tiles overriding export.work_text."`
}

func (cmd *ExportCmd) Run(ctx *Context) error {
	b, err := ctx.LoadBoard()
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res := ctx.exporter(cmd.Template, cmd.WorkText).Export(runCtx, b.State(), func(string) (string, bool) {
		return cmd.Output, true
	})
	switch res.Status {
	case export.Success:
		ctx.printf("✓ Exported week %d/%d to %s\n", b.Week(), b.Year(), res.Path)
		return nil
	case export.Cancelled:
		ctx.println("Export cancelled.")
		return nil
	default:
		return res.Err
	}
}

func (c *Context) exporter(template, workText string) *export.Exporter {
	var cfg export.Config
	if c.Config != nil {
		cfg = export.Config{
			TemplatePath: c.Config.Export.TemplatePath,
			OutputDir:    c.Config.Export.OutputDir,
			Sheet:        c.Config.Export.Sheet,
			WorkText:     c.Config.Export.WorkText,
		}
	}
	if template != "" {
		cfg.TemplatePath = template
	}
	if workText != "" {
		cfg.WorkText = workText
	}
	return export.New(cfg)
}
