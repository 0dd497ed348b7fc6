package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/changelogbuilder/internal/changelog"
	"git.home.luguber.info/inful/changelogbuilder/internal/config"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	AuditLinks bool `name:"audit-links" help:"Audit links in generated pages after assembly"`
}

func (g *GenerateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return RunGenerate(cfg, g.AuditLinks)
}

// RunGenerate assembles the per-version changelog pages, toc.yml, index.md
// and full.md.
func RunGenerate(cfg *config.Config, auditLinks bool) error {
	versions := changelog.Versions{Current: cfg.Changelog.Current, Stable: cfg.Changelog.Stable}
	slog.Info("Generating changelog pages",
		slog.String("dir", cfg.Changelog.Dir),
		slog.Int("versions", len(versions.All())))

	assembler := changelog.NewAssembler(cfg.Changelog.Dir, versions)
	if err := assembler.Generate(); err != nil {
		return err
	}

	if auditLinks {
		issues, err := assembler.AuditLinks()
		if err != nil {
			return err
		}
		for _, issue := range issues {
			slog.Warn("Link audit finding", slog.String("issue", issue.String()))
		}
		slog.Info("Link audit completed", slog.Int("findings", len(issues)))
	}
	return nil
}
