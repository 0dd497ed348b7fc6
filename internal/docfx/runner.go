// Package docfx invokes the external documentation generator.
package docfx

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"git.home.luguber.info/inful/changelogbuilder/internal/logfields"
)

// EnvSkip disables the docfx invocation when set to "1" (useful in CI jobs
// that only regenerate markdown).
const EnvSkip = "CHANGELOGBUILDER_SKIP_DOCFX"

const binaryName = "docfx"

// Runner drives the documentation generator against its JSON configuration.
type Runner struct {
	configPath string
}

// NewRunner creates a runner for the given docfx.json path.
func NewRunner(configPath string) *Runner {
	return &Runner{configPath: configPath}
}

// buildConfig mirrors the subset of docfx.json the tool needs.
type buildConfig struct {
	Build struct {
		Dest string `json:"dest"`
	} `json:"build"`
}

// SiteDir resolves the generated-site output directory from the JSON
// configuration. The dest entry is relative to the config file's directory;
// a missing entry defaults to _site.
func (r *Runner) SiteDir() (string, error) {
	data, err := os.ReadFile(r.configPath)
	if err != nil {
		return "", fmt.Errorf("failed to read docfx configuration %s: %w", r.configPath, err)
	}

	var cfg buildConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return "", fmt.Errorf("failed to parse docfx configuration %s: %w", r.configPath, err)
	}

	dest := cfg.Build.Dest
	if dest == "" {
		dest = "_site"
	}
	return filepath.Join(filepath.Dir(r.configPath), dest), nil
}

// ShouldRun reports whether the docfx binary should be invoked.
// CHANGELOGBUILDER_SKIP_DOCFX=1 skips the invocation entirely.
func ShouldRun() bool {
	return os.Getenv(EnvSkip) != "1"
}

// Run executes `docfx <config>` with output passed through.
// The build blocks until the generator exits.
func (r *Runner) Run() error {
	if _, err := exec.LookPath(binaryName); err != nil {
		return fmt.Errorf("docfx binary not found in PATH: %w", err)
	}

	cmd := exec.Command(binaryName, r.configPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	slog.Info("Running docfx to render documentation site", logfields.Path(r.configPath))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docfx command failed: %w", err)
	}
	return nil
}
