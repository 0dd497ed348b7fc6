package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/changelogbuilder/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	docsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "docfx.json"),
		[]byte(`{"build": {"dest": "_site"}}`), 0o644))

	cfg := &config.Config{
		DocsDir: docsDir,
		Changelog: config.ChangelogConfig{
			Dir:     filepath.Join(docsDir, "changelog"),
			Current: "vNext",
			Stable:  []string{"v1.0.0"},
		},
		Docfx:     config.DocfxConfig{Config: filepath.Join(docsDir, "docfx.json")},
		Redirects: config.RedirectsConfig{File: filepath.Join(docsDir, "redirects.txt")},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRunGenerate_WritesChangelogArtifacts(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, RunGenerate(cfg, false))

	for _, name := range []string{"vNext.md", "v1.0.0.md", "toc.yml", "index.md", "full.md"} {
		_, err := os.Stat(filepath.Join(cfg.Changelog.Dir, name))
		require.NoError(t, err, "expected %s to be generated", name)
	}
}

func TestRunGenerate_WithAudit_Succeeds(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, RunGenerate(cfg, true))
}

func TestRunRedirects_MissingFile_NoErrorNoOutput(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, RunRedirects(cfg, ""))

	siteDir := filepath.Join(cfg.DocsDir, "_site")
	if entries, err := os.ReadDir(siteDir); err == nil {
		require.Empty(t, entries)
	}
}

func TestRunRedirects_WritesStubsIntoDocfxDest(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Redirects.File,
		[]byte("old-page https://example.com/new-page\n"), 0o644))

	require.NoError(t, RunRedirects(cfg, ""))

	stub, err := os.ReadFile(filepath.Join(cfg.DocsDir, "_site", "old-page.html"))
	require.NoError(t, err)
	require.Contains(t, string(stub), "https://example.com/new-page")
}

func TestResolveRedirectOutput_FlagWinsOverConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redirects.Output = "/from-config"

	out, err := resolveRedirectOutput("/from-flag", cfg)
	require.NoError(t, err)
	require.Equal(t, "/from-flag", out)

	out, err = resolveRedirectOutput("", cfg)
	require.NoError(t, err)
	require.Equal(t, "/from-config", out)
}

func TestResolveRedirectOutput_DefaultsToDocfxDest(t *testing.T) {
	cfg := testConfig(t)

	out, err := resolveRedirectOutput("", cfg)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(cfg.DocsDir, "_site"), out)
}
