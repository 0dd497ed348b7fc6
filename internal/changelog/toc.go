package changelog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/changelogbuilder/internal/logfields"
)

// TOCEntry is one row of toc.yml.
type TOCEntry struct {
	Name string `yaml:"name"`
	Href string `yaml:"href"`
}

// tocEntries returns the table of contents in its fixed order:
// current version, stable versions newest-first, then the full changelog.
func (a *Assembler) tocEntries() []TOCEntry {
	entries := make([]TOCEntry, 0, len(a.versions.Stable)+2)
	if a.versions.Current != "" {
		entries = append(entries, TOCEntry{Name: a.versions.Current, Href: a.versions.Current + ".md"})
	}
	for _, version := range a.versions.SortedStable() {
		entries = append(entries, TOCEntry{Name: version, Href: version + ".md"})
	}
	return append(entries, TOCEntry{Name: "Full ChangeLog", Href: "full.md"})
}

func (a *Assembler) writeTOC() error {
	data, err := yaml.Marshal(a.tocEntries())
	if err != nil {
		return fmt.Errorf("failed to marshal toc: %w", err)
	}

	path := filepath.Join(a.dir, "toc.yml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write toc: %w", err)
	}
	slog.Info("Changelog toc generated", logfields.Path(path))
	return nil
}
