package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/changelogbuilder/internal/config"
	"git.home.luguber.info/inful/changelogbuilder/internal/docfx"
)

// BuildCmd implements the 'build' command: the full release docs pipeline.
type BuildCmd struct {
	Depth         int  `help:"Shallow clone depth for the companion repository (0 = full history)" default:"1"`
	SkipRedirects bool `name:"skip-redirects" help:"Skip redirect stub generation"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return RunBuild(context.Background(), cfg, b.Depth, b.SkipRedirects)
}

// RunBuild runs update, generate, docfx and redirects in sequence.
// Each step blocks until completion; the first failure aborts the pipeline.
func RunBuild(ctx context.Context, cfg *config.Config, depth int, skipRedirects bool) error {
	fmt.Println("Starting release docs build")

	if err := RunUpdate(ctx, cfg, depth); err != nil {
		return fmt.Errorf("update step failed: %w", err)
	}

	if err := RunGenerate(cfg, false); err != nil {
		return fmt.Errorf("generate step failed: %w", err)
	}

	if docfx.ShouldRun() {
		if err := docfx.NewRunner(cfg.Docfx.Config).Run(); err != nil {
			return fmt.Errorf("docfx step failed: %w", err)
		}
	} else {
		slog.Info("Skipping docfx invocation", slog.String("reason", docfx.EnvSkip+"=1"))
	}

	if skipRedirects {
		slog.Info("Skipping redirect generation")
	} else if err := RunRedirects(cfg, ""); err != nil {
		return fmt.Errorf("redirects step failed: %w", err)
	}

	fmt.Println("Build completed successfully")
	return nil
}
