package changelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFragment(t *testing.T, dir, kind, version, content string) {
	t.Helper()
	fragDir := filepath.Join(dir, kind)
	require.NoError(t, os.MkdirAll(fragDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(fragDir, version+".md"), []byte(content), 0o644))
}

func TestAssemblePage_AllFragments_OrderedHeaderDetailsAdditionalDetails(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, HeaderDir, "v1.2.0", "Release highlights.\n")
	writeFragment(t, dir, DetailsDir, "v1.2.0", "* Fixed the thing\n")
	writeFragment(t, dir, FooterDir, "v1.2.0", "Thanks to all contributors.\n")

	a := NewAssembler(dir, Versions{Stable: []string{"v1.2.0"}})
	page, err := a.AssemblePage("v1.2.0")
	require.NoError(t, err)

	content := string(page)
	require.True(t, strings.HasPrefix(content, "---\nuid: changelog.v1.2.0\n---\n"))

	headerIdx := strings.Index(content, "Release highlights.")
	detailsIdx := strings.Index(content, "* Fixed the thing")
	additionalIdx := strings.Index(content, "## Additional details")
	footerIdx := strings.Index(content, "Thanks to all contributors.")

	require.NotEqual(t, -1, headerIdx)
	require.NotEqual(t, -1, detailsIdx)
	require.NotEqual(t, -1, additionalIdx)
	require.NotEqual(t, -1, footerIdx)
	require.Less(t, headerIdx, detailsIdx)
	require.Less(t, detailsIdx, additionalIdx)
	require.Less(t, additionalIdx, footerIdx)
}

func TestAssemblePage_NoFragments_FrontmatterOnly(t *testing.T) {
	a := NewAssembler(t.TempDir(), Versions{Current: "vNext"})

	page, err := a.AssemblePage("vNext")
	require.NoError(t, err)
	require.Equal(t, "---\nuid: changelog.vNext\n---\n", string(page))
}

func TestAssemblePage_FooterOnly_EmitsAdditionalDetailsSection(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, FooterDir, "v1.0.0", "See milestone notes.\n")

	a := NewAssembler(dir, Versions{Stable: []string{"v1.0.0"}})
	page, err := a.AssemblePage("v1.0.0")
	require.NoError(t, err)
	require.Equal(t, "---\nuid: changelog.v1.0.0\n---\n\n## Additional details\n\nSee milestone notes.\n", string(page))
}

func TestAssemblePage_NoFooter_NoAdditionalDetailsHeading(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, HeaderDir, "v1.0.0", "Header.\n")
	writeFragment(t, dir, DetailsDir, "v1.0.0", "Details.\n")

	a := NewAssembler(dir, Versions{Stable: []string{"v1.0.0"}})
	page, err := a.AssemblePage("v1.0.0")
	require.NoError(t, err)
	require.NotContains(t, string(page), "## Additional details")
}

func TestAssemblePage_FragmentWithFrontmatter_FrontmatterStripped(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, DetailsDir, "v1.0.0", "---\nauthor: bot\n---\n* Change one\n")

	a := NewAssembler(dir, Versions{Stable: []string{"v1.0.0"}})
	page, err := a.AssemblePage("v1.0.0")
	require.NoError(t, err)
	require.Contains(t, string(page), "* Change one")
	require.NotContains(t, string(page), "author: bot")
}

func TestGenerate_WritesPagesTocIndexAndFull(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, DetailsDir, "v1.0.0", "* First release\n")
	writeFragment(t, dir, DetailsDir, "v1.1.0", "* Second release\n")

	a := NewAssembler(dir, Versions{Current: "vNext", Stable: []string{"v1.0.0", "v1.1.0"}})
	require.NoError(t, a.Generate())

	for _, name := range []string{"vNext.md", "v1.0.0.md", "v1.1.0.md", "toc.yml", "index.md", "full.md"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "expected %s to be generated", name)
	}
}

func TestGenerate_FullChangelog_StableDetailsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, DetailsDir, "v1.0.0", "old release\n")
	writeFragment(t, dir, DetailsDir, "v1.1.0", "new release\n")

	a := NewAssembler(dir, Versions{Current: "vNext", Stable: []string{"v1.0.0", "v1.1.0"}})
	require.NoError(t, a.Generate())

	full, err := os.ReadFile(filepath.Join(dir, "full.md"))
	require.NoError(t, err)

	content := string(full)
	require.Contains(t, content, "# Full ChangeLog")
	require.Less(t, strings.Index(content, "## v1.1.0"), strings.Index(content, "## v1.0.0"))
	require.Less(t, strings.Index(content, "new release"), strings.Index(content, "old release"))
	// Current version details never appear in the full changelog.
	require.NotContains(t, content, "## vNext")
}

func TestGenerate_Index_LinksInTocOrder(t *testing.T) {
	dir := t.TempDir()

	a := NewAssembler(dir, Versions{Current: "vNext", Stable: []string{"v1.0.0", "v1.1.0"}})
	require.NoError(t, a.Generate())

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)

	content := string(index)
	require.Contains(t, content, "[vNext](vNext.md)")
	require.Contains(t, content, "[Full ChangeLog](full.md)")
	require.Less(t, strings.Index(content, "(vNext.md)"), strings.Index(content, "(v1.1.0.md)"))
	require.Less(t, strings.Index(content, "(v1.1.0.md)"), strings.Index(content, "(v1.0.0.md)"))
	require.Less(t, strings.Index(content, "(v1.0.0.md)"), strings.Index(content, "(full.md)"))
}
