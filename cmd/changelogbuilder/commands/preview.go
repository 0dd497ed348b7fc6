package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/changelogbuilder/internal/config"
	"git.home.luguber.info/inful/changelogbuilder/internal/docfx"
	"git.home.luguber.info/inful/changelogbuilder/internal/preview"
)

// PreviewCmd implements the 'preview' command.
type PreviewCmd struct {
	Addr string `help:"Listen address for the preview server" default:"localhost:8080"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	siteDir, err := docfx.NewRunner(cfg.Docfx.Config).SiteDir()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server := preview.NewServer(p.Addr, siteDir, cfg.Changelog.Dir, func() error {
		return RunGenerate(cfg, false)
	})
	return server.Run(ctx)
}
