package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/changelogbuilder/internal/frontmatter"
)

// Issue describes one finding from the generated-page link audit.
type Issue struct {
	Page        string
	Destination string
	Reason      string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: link %q: %s", i.Page, i.Destination, i.Reason)
}

// AuditLinks parses every generated markdown page in the changelog dir and
// reports empty link destinations and relative links whose target file does
// not exist. External links are not validated.
func (a *Assembler) AuditLinks() ([]Issue, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read changelog directory: %w", err)
	}

	var issues []Issue
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(a.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		issues = append(issues, a.auditPage(entry.Name(), frontmatter.Body(content))...)
	}
	return issues, nil
}

func (a *Assembler) auditPage(page string, body []byte) []Issue {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var issues []Issue
	check := func(dest string) {
		if issue, ok := a.checkDestination(page, dest); ok {
			issues = append(issues, issue)
		}
	}

	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Link:
			check(string(node.Destination))
		case *gmast.Image:
			check(string(node.Destination))
		}
		return gmast.WalkContinue, nil
	})
	return issues
}

func (a *Assembler) checkDestination(page, dest string) (Issue, bool) {
	if dest == "" {
		return Issue{Page: page, Reason: "empty destination"}, true
	}
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") || strings.HasPrefix(dest, "#") {
		return Issue{}, false
	}

	target, _, _ := strings.Cut(dest, "#")
	if target == "" {
		return Issue{}, false
	}
	if _, err := os.Stat(filepath.Join(a.dir, filepath.FromSlash(target))); err != nil {
		return Issue{Page: page, Destination: dest, Reason: "target file does not exist"}, true
	}
	return Issue{}, false
}
