package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	cberrors "git.home.luguber.info/inful/changelogbuilder/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "changelogbuilder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MinimalConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "changelog:\n  stable:\n    - v1.0.0\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "docs", cfg.DocsDir)
	require.Equal(t, filepath.Join("docs", "changelog"), cfg.Changelog.Dir)
	require.Equal(t, "vNext", cfg.Changelog.Current)
	require.Equal(t, "master", cfg.Companion.Branch)
	require.Equal(t, DefaultTokenEnv, cfg.Companion.TokenEnv)
	require.Equal(t, filepath.Join("docs", "docfx.json"), cfg.Docfx.Config)
	require.Equal(t, filepath.Join("docs", "redirects.txt"), cfg.Redirects.File)
}

func TestLoad_ExplicitValues_NotOverridden(t *testing.T) {
	path := writeConfig(t, `docs_dir: documentation
changelog:
  dir: documentation/history
  current: v2-dev
  stable:
    - v1.0.0
companion:
  url: https://example.com/changelog.git
  branch: main
  token_env: MY_TOKEN
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "documentation/history", cfg.Changelog.Dir)
	require.Equal(t, "v2-dev", cfg.Changelog.Current)
	require.Equal(t, "main", cfg.Companion.Branch)
	require.Equal(t, "MY_TOKEN", cfg.Companion.TokenEnv)
}

func TestLoad_MissingFile_ReturnsConfigError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, cberrors.IsCategory(err, cberrors.CategoryConfig))
}

func TestLoad_InvalidYAML_ReturnsConfigError(t *testing.T) {
	path := writeConfig(t, "changelog: [unclosed\n")

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, cberrors.IsCategory(err, cberrors.CategoryConfig))
}

func TestValidate_EmptyStableEntry_ReturnsValidationError(t *testing.T) {
	cfg := &Config{Changelog: ChangelogConfig{Current: "vNext", Stable: []string{"v1.0.0", ""}}}

	err := cfg.Validate()
	require.Error(t, err)
	require.True(t, cberrors.IsCategory(err, cberrors.CategoryValidation))
}

func TestToken_Set_ReturnsValue(t *testing.T) {
	t.Setenv("TEST_CHANGELOG_TOKEN", "secret")
	cfg := &Config{Companion: CompanionConfig{TokenEnv: "TEST_CHANGELOG_TOKEN"}}

	token, err := cfg.Token()
	require.NoError(t, err)
	require.Equal(t, "secret", token)
}

func TestToken_Missing_ReturnsFatalAuthError(t *testing.T) {
	t.Setenv("TEST_CHANGELOG_TOKEN", "")
	cfg := &Config{Companion: CompanionConfig{TokenEnv: "TEST_CHANGELOG_TOKEN"}}

	_, err := cfg.Token()
	require.Error(t, err)
	require.True(t, cberrors.IsCategory(err, cberrors.CategoryAuth))

	var cbe *cberrors.ChangelogBuilderError
	require.ErrorAs(t, err, &cbe)
	require.Equal(t, cberrors.SeverityFatal, cbe.Severity)
}

func TestInit_ExistingFileWithoutForce_Refuses(t *testing.T) {
	path := writeConfig(t, "changelog:\n  current: vNext\n")

	err := Init(path, false)
	require.Error(t, err)
	require.True(t, cberrors.IsCategory(err, cberrors.CategoryConfig))
}

func TestInit_Force_WritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changelogbuilder.yaml")

	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "vNext", cfg.Changelog.Current)
}
