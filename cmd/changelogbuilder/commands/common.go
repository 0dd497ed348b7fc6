package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/changelogbuilder/internal/config"
	"git.home.luguber.info/inful/changelogbuilder/internal/docfx"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"changelogbuilder.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Update    UpdateCmd    `cmd:"" help:"Download historical changelog entries from the companion repository"`
	Generate  GenerateCmd  `cmd:"" help:"Assemble changelog pages, table of contents and index files"`
	Redirects RedirectsCmd `cmd:"" help:"Emit static HTML redirect stubs from the redirect file"`
	Build     BuildCmd     `cmd:"" help:"Run the full release docs pipeline (update, generate, docfx, redirects)"`
	Preview   PreviewCmd   `cmd:"" help:"Serve the generated site locally, regenerating on fragment changes"`
	Init      InitCmd      `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel resolves the log level from CHANGELOGBUILDER_LOG_LEVEL or the
// verbose flag (env wins, so CI can force debug without flag plumbing).
func parseLogLevel(verbose bool) slog.Level {
	switch strings.ToLower(os.Getenv("CHANGELOGBUILDER_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// resolveRedirectOutput determines the redirect stub output directory.
// Priority: CLI flag > config redirects.output > docfx build dest.
func resolveRedirectOutput(cliOutput string, cfg *config.Config) (string, error) {
	if cliOutput != "" {
		return cliOutput, nil
	}
	if cfg.Redirects.Output != "" {
		return cfg.Redirects.Output, nil
	}
	return docfx.NewRunner(cfg.Docfx.Config).SiteDir()
}
