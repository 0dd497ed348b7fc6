package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/changelogbuilder/internal/changelog"
	"git.home.luguber.info/inful/changelogbuilder/internal/config"
	cberrors "git.home.luguber.info/inful/changelogbuilder/internal/errors"
	"git.home.luguber.info/inful/changelogbuilder/internal/fetch"
	"git.home.luguber.info/inful/changelogbuilder/internal/logfields"
	"git.home.luguber.info/inful/changelogbuilder/internal/workspace"
)

// UpdateCmd implements the 'update' command.
type UpdateCmd struct {
	Depth int `help:"Shallow clone depth for the companion repository (0 = full history)" default:"1"`
}

func (u *UpdateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return RunUpdate(context.Background(), cfg, u.Depth)
}

// RunUpdate clones the companion repository and stages its per-version detail
// files into the changelog source tree.
func RunUpdate(ctx context.Context, cfg *config.Config, depth int) error {
	// Token absence must fail before any filesystem work happens.
	token, err := cfg.Token()
	if err != nil {
		return err
	}

	slog.Info("Updating changelog details",
		logfields.URL(cfg.Companion.URL), logfields.Branch(cfg.Companion.Branch))

	ws := workspace.NewManager("")
	if err := ws.Create(); err != nil {
		return err
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			slog.Warn("Failed to cleanup workspace", logfields.Error(err))
		}
	}()

	client := fetch.NewClient(ws.Path())
	repoPath, err := client.Clone(ctx, fetch.Options{
		URL:    cfg.Companion.URL,
		Branch: cfg.Companion.Branch,
		Token:  token,
		Depth:  depth,
	})
	if err != nil {
		return classifyFetchError(err)
	}

	destDir := filepath.Join(cfg.Changelog.Dir, changelog.DetailsDir)
	copied, err := client.CopyDetails(repoPath, destDir)
	if err != nil {
		return err
	}

	slog.Info("Changelog details updated", logfields.Count(copied), logfields.Path(destDir))
	return nil
}

// classifyFetchError maps typed clone errors onto structured categories so
// the CLI boundary reports auth failures as fatal and timeouts as retryable.
func classifyFetchError(err error) error {
	var authErr *fetch.AuthError
	if errors.As(err, &authErr) {
		return cberrors.Wrap(err, cberrors.CategoryAuth, cberrors.SeverityFatal,
			"companion repository authentication failed")
	}
	var nfErr *fetch.NotFoundError
	if errors.As(err, &nfErr) {
		return cberrors.Wrap(err, cberrors.CategoryGit, cberrors.SeverityFatal,
			"companion repository not found")
	}
	var toErr *fetch.NetworkTimeoutError
	if errors.As(err, &toErr) {
		return cberrors.WrapRetryable(err, cberrors.CategoryGit, cberrors.SeverityError,
			"companion repository clone timed out")
	}
	return cberrors.Wrap(err, cberrors.CategoryGit, cberrors.SeverityError,
		"companion repository clone failed")
}
