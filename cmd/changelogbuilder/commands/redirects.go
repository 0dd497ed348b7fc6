package commands

import (
	"fmt"

	"git.home.luguber.info/inful/changelogbuilder/internal/config"
	"git.home.luguber.info/inful/changelogbuilder/internal/redirects"
)

// RedirectsCmd implements the 'redirects' command.
type RedirectsCmd struct {
	Output string `short:"o" help:"Output directory for redirect stubs (default: docfx build dest)"`
}

func (r *RedirectsCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return RunRedirects(cfg, r.Output)
}

// RunRedirects emits the static redirect stubs into the site output dir.
func RunRedirects(cfg *config.Config, output string) error {
	outputDir, err := resolveRedirectOutput(output, cfg)
	if err != nil {
		return err
	}
	_, err = redirects.Generate(cfg.Redirects.File, outputDir)
	return err
}
