// Package config loads and validates the changelogbuilder YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	cberrors "git.home.luguber.info/inful/changelogbuilder/internal/errors"
)

// DefaultTokenEnv is the environment variable consulted for the companion
// repository access token when the config does not name one.
const DefaultTokenEnv = "CHANGELOG_TOKEN"

// Config is the root configuration.
type Config struct {
	DocsDir   string          `yaml:"docs_dir"`
	Changelog ChangelogConfig `yaml:"changelog"`
	Companion CompanionConfig `yaml:"companion"`
	Docfx     DocfxConfig     `yaml:"docfx"`
	Redirects RedirectsConfig `yaml:"redirects"`
}

// ChangelogConfig describes the changelog source layout and the version list.
type ChangelogConfig struct {
	// Dir holds fragment subdirectories (header/, details/, footer/) and
	// receives the generated pages.
	Dir string `yaml:"dir"`
	// Current is the unreleased version label (listed first in the TOC).
	Current string `yaml:"current"`
	// Stable lists released versions. Order in the file is not significant;
	// versions are sorted newest-first when generating.
	Stable []string `yaml:"stable"`
}

// CompanionConfig locates the repository holding historical changelog details.
type CompanionConfig struct {
	URL      string `yaml:"url"`
	Branch   string `yaml:"branch"`
	TokenEnv string `yaml:"token_env"`
}

// DocfxConfig locates the external documentation generator configuration.
type DocfxConfig struct {
	Config string `yaml:"config"`
}

// RedirectsConfig locates the redirect definition file and output directory.
type RedirectsConfig struct {
	File string `yaml:"file"`
	// Output overrides the redirect stub output directory. Empty means the
	// docfx build destination.
	Output string `yaml:"output"`
}

// Load reads the configuration file, overlays .env files and applies defaults.
//
// godotenv never overrides variables already present in the process
// environment, so CI-provided tokens win over local .env files.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // missing .env is not an error

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cberrors.Wrap(err, cberrors.CategoryConfig, cberrors.SeverityFatal,
			fmt.Sprintf("failed to read configuration file %s", path))
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, cberrors.Wrap(err, cberrors.CategoryConfig, cberrors.SeverityFatal,
			fmt.Sprintf("failed to parse configuration file %s", path))
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DocsDir == "" {
		c.DocsDir = "docs"
	}
	if c.Changelog.Dir == "" {
		c.Changelog.Dir = filepath.Join(c.DocsDir, "changelog")
	}
	if c.Changelog.Current == "" {
		c.Changelog.Current = "vNext"
	}
	if c.Companion.Branch == "" {
		c.Companion.Branch = "master"
	}
	if c.Companion.TokenEnv == "" {
		c.Companion.TokenEnv = DefaultTokenEnv
	}
	if c.Docfx.Config == "" {
		c.Docfx.Config = filepath.Join(c.DocsDir, "docfx.json")
	}
	if c.Redirects.File == "" {
		c.Redirects.File = filepath.Join(c.DocsDir, "redirects.txt")
	}
}

// Validate checks structural invariants that every command depends on.
func (c *Config) Validate() error {
	if c.Changelog.Current == "" && len(c.Changelog.Stable) == 0 {
		return cberrors.New(cberrors.CategoryValidation, cberrors.SeverityFatal,
			"changelog version list is empty: set changelog.current or changelog.stable")
	}
	for _, v := range c.Changelog.Stable {
		if v == "" {
			return cberrors.New(cberrors.CategoryValidation, cberrors.SeverityFatal,
				"changelog.stable contains an empty version entry")
		}
	}
	return nil
}

// Token resolves the companion repository access token from the environment.
// An absent token is a fatal error for commands that fetch.
func (c *Config) Token() (string, error) {
	token := os.Getenv(c.Companion.TokenEnv)
	if token == "" {
		return "", cberrors.AuthError(
			fmt.Sprintf("access token environment variable %s is not set", c.Companion.TokenEnv))
	}
	return token, nil
}

// Init writes a starter configuration file. Refuses to overwrite unless force.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return cberrors.ConfigError(
				fmt.Sprintf("configuration file %s already exists (use --force to overwrite)", path))
		}
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

const defaultConfigYAML = `# changelogbuilder configuration
docs_dir: docs

changelog:
  dir: docs/changelog
  current: vNext
  stable: []

companion:
  url: ""
  branch: master
  token_env: CHANGELOG_TOKEN

docfx:
  config: docs/docfx.json

redirects:
  file: docs/redirects.txt
`
