// Package fetch downloads historical changelog entries from the companion
// repository.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"git.home.luguber.info/inful/changelogbuilder/internal/logfields"
)

// detailsSubdir is where the companion repository keeps per-version files.
const detailsSubdir = "details"

// Options configure a companion repository download.
type Options struct {
	URL    string
	Branch string
	Token  string
	// Depth limits clone history; 0 means full history.
	Depth int
}

// Client clones the companion repository into a workspace directory.
type Client struct {
	workspaceDir string
}

// NewClient creates a client that clones under workspaceDir.
func NewClient(workspaceDir string) *Client {
	return &Client{workspaceDir: workspaceDir}
}

// Clone performs a branch-pinned shallow clone and returns the checkout path.
func (c *Client) Clone(ctx context.Context, opts Options) (string, error) {
	if opts.URL == "" {
		return "", fmt.Errorf("companion repository URL is empty")
	}

	repoPath := filepath.Join(c.workspaceDir, "companion")
	slog.Debug("Cloning companion repository",
		logfields.URL(opts.URL), logfields.Branch(opts.Branch), logfields.Path(repoPath))
	if err := os.RemoveAll(repoPath); err != nil {
		return "", fmt.Errorf("failed to remove existing directory: %w", err)
	}

	cloneOptions := &git.CloneOptions{URL: opts.URL}
	if opts.Branch != "" {
		cloneOptions.ReferenceName = plumbing.ReferenceName("refs/heads/" + opts.Branch)
		cloneOptions.SingleBranch = true
	}
	if opts.Depth > 0 {
		cloneOptions.Depth = opts.Depth
	}
	if opts.Token != "" {
		// The username is ignored by forges that accept token auth over HTTP,
		// but go-git requires it to be non-empty.
		cloneOptions.Auth = &http.BasicAuth{Username: "changelogbuilder", Password: opts.Token}
	}

	repository, err := git.PlainCloneContext(ctx, repoPath, false, cloneOptions)
	if err != nil {
		return "", classifyCloneError(opts.URL, err)
	}

	if ref, herr := repository.Head(); herr == nil {
		slog.Info("Companion repository cloned",
			logfields.URL(opts.URL),
			slog.String("commit", ref.Hash().String()[:8]),
			logfields.Path(repoPath))
	} else {
		slog.Info("Companion repository cloned", logfields.URL(opts.URL), logfields.Path(repoPath))
	}
	return repoPath, nil
}

// CopyDetails copies every per-version markdown file from the companion
// checkout into destDir, overwriting existing files. Returns the number of
// files copied.
func (c *Client) CopyDetails(repoPath, destDir string) (int, error) {
	srcDir := filepath.Join(repoPath, detailsSubdir)
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, fmt.Errorf("companion repository has no %s directory: %w", detailsSubdir, err)
	}

	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return 0, fmt.Errorf("failed to create details directory: %w", err)
	}

	copied := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		src := filepath.Join(srcDir, entry.Name())
		dst := filepath.Join(destDir, entry.Name())
		if err := copyFile(src, dst); err != nil {
			return copied, fmt.Errorf("failed to copy %s: %w", entry.Name(), err)
		}
		slog.Debug("Copied changelog details", logfields.Fragment(entry.Name()), logfields.Path(dst))
		copied++
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = dstFile.Close()
	}()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
