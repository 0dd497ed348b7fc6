package changelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestAuditLinks_MissingRelativeTarget_Reported(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "index.md", "---\nuid: changelog.index\n---\n\n* [v1.0.0](v1.0.0.md)\n")

	a := NewAssembler(dir, Versions{})
	issues, err := a.AuditLinks()
	require.NoError(t, err)
	require.Len(t, issues, 1)
	require.Equal(t, "index.md", issues[0].Page)
	require.Equal(t, "v1.0.0.md", issues[0].Destination)
}

func TestAuditLinks_ExistingRelativeTarget_NoFindings(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "v1.0.0.md", "---\nuid: changelog.v1.0.0\n---\n")
	writePage(t, dir, "index.md", "---\nuid: changelog.index\n---\n\n* [v1.0.0](v1.0.0.md)\n")

	a := NewAssembler(dir, Versions{})
	issues, err := a.AuditLinks()
	require.NoError(t, err)
	require.Empty(t, issues)
}

func TestAuditLinks_ExternalAndAnchorLinks_Ignored(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "index.md",
		"---\nuid: changelog.index\n---\n\n[site](https://example.com/missing)\n[top](#top)\n[mail](mailto:team@example.com)\n")

	a := NewAssembler(dir, Versions{})
	issues, err := a.AuditLinks()
	require.NoError(t, err)
	require.Empty(t, issues)
}

func TestAuditLinks_FragmentAnchorOnExistingFile_NoFindings(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "full.md", "---\nuid: changelog.full\n---\n")
	writePage(t, dir, "index.md", "---\nuid: changelog.index\n---\n\n[full](full.md#v100)\n")

	a := NewAssembler(dir, Versions{})
	issues, err := a.AuditLinks()
	require.NoError(t, err)
	require.Empty(t, issues)
}
