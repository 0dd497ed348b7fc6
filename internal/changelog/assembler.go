// Package changelog assembles per-version changelog pages, the table of
// contents and the index pages from markdown fragments.
package changelog

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/changelogbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/changelogbuilder/internal/logfields"
)

// Fragment subdirectories under the changelog source dir.
const (
	HeaderDir  = "header"
	DetailsDir = "details"
	FooterDir  = "footer"
)

// additionalDetailsHeading introduces the footer fragment on a version page.
const additionalDetailsHeading = "## Additional details"

// Assembler stitches fragments into changelog pages under a single directory.
type Assembler struct {
	dir      string
	versions Versions
}

// NewAssembler creates an assembler for the given changelog directory.
func NewAssembler(dir string, versions Versions) *Assembler {
	return &Assembler{dir: dir, versions: versions}
}

// Generate writes every per-version page plus toc.yml, index.md and full.md.
func (a *Assembler) Generate() error {
	if err := os.MkdirAll(a.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create changelog directory: %w", err)
	}
	for _, version := range a.versions.All() {
		if err := a.writeVersionPage(version); err != nil {
			return err
		}
	}
	if err := a.writeTOC(); err != nil {
		return err
	}
	if err := a.writeIndex(); err != nil {
		return err
	}
	return a.writeFull()
}

// AssemblePage builds the markdown document for one version.
//
// Layout: frontmatter (uid), then header fragment, then details fragment,
// then an "Additional details" section containing the footer fragment. Every
// fragment is optional; a version with no fragments yields a valid
// frontmatter-only document.
func (a *Assembler) AssemblePage(version string) ([]byte, error) {
	var sections [][]byte

	if header, ok := a.readFragment(HeaderDir, version); ok {
		sections = append(sections, header)
	}
	if details, ok := a.readFragment(DetailsDir, version); ok {
		sections = append(sections, details)
	}
	if footer, ok := a.readFragment(FooterDir, version); ok {
		sections = append(sections, []byte(additionalDetailsHeading), footer)
	}

	body := joinSections(sections)
	return frontmatter.Compose(map[string]any{"uid": "changelog." + version}, body)
}

func (a *Assembler) writeVersionPage(version string) error {
	page, err := a.AssemblePage(version)
	if err != nil {
		return fmt.Errorf("failed to assemble page for %s: %w", version, err)
	}

	path := filepath.Join(a.dir, version+".md")
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return fmt.Errorf("failed to write changelog page: %w", err)
	}
	slog.Info("Changelog page generated", logfields.Version(version), logfields.Path(path))
	return nil
}

// readFragment reads one fragment file, stripping any frontmatter the
// fragment carries. Missing fragments are silently skipped.
func (a *Assembler) readFragment(kind, version string) ([]byte, bool) {
	path := filepath.Join(a.dir, kind, version+".md")
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read fragment, skipping",
				logfields.Fragment(kind), logfields.Version(version), logfields.Error(err))
		}
		return nil, false
	}

	body := bytes.TrimSpace(frontmatter.Body(content))
	if len(body) == 0 {
		return nil, false
	}
	return body, true
}

// writeFull concatenates every stable version's details newest-first into a
// single full-changelog page.
func (a *Assembler) writeFull() error {
	sections := [][]byte{[]byte("# Full ChangeLog")}
	for _, version := range a.versions.SortedStable() {
		details, ok := a.readFragment(DetailsDir, version)
		if !ok {
			continue
		}
		sections = append(sections, []byte("## "+version), details)
	}

	page, err := frontmatter.Compose(map[string]any{"uid": "changelog.full"}, joinSections(sections))
	if err != nil {
		return fmt.Errorf("failed to assemble full changelog: %w", err)
	}

	path := filepath.Join(a.dir, "full.md")
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return fmt.Errorf("failed to write full changelog: %w", err)
	}
	slog.Info("Full changelog generated", logfields.Path(path), logfields.Count(len(a.versions.Stable)))
	return nil
}

// writeIndex emits index.md linking every entry in TOC order.
func (a *Assembler) writeIndex() error {
	var buf bytes.Buffer
	buf.WriteString("# ChangeLog\n\n")
	for _, entry := range a.tocEntries() {
		fmt.Fprintf(&buf, "* [%s](%s)\n", entry.Name, entry.Href)
	}

	page, err := frontmatter.Compose(map[string]any{"uid": "changelog.index"}, buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to assemble changelog index: %w", err)
	}

	path := filepath.Join(a.dir, "index.md")
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return fmt.Errorf("failed to write changelog index: %w", err)
	}
	slog.Info("Changelog index generated", logfields.Path(path))
	return nil
}

func joinSections(sections [][]byte) []byte {
	if len(sections) == 0 {
		return nil
	}
	body := bytes.Join(sections, []byte("\n\n"))
	return append(body, '\n')
}
