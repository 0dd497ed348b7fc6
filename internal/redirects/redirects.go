// Package redirects emits static HTML redirect stubs for moved pages.
package redirects

import (
	"bufio"
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/changelogbuilder/internal/logfields"
)

// stubTemplate is the client-side redirect page. The noindex directive keeps
// search engines from indexing the stub instead of the target.
//
// html/template entity-escapes the target (& becomes &amp;), which browsers
// decode back to the original URL before following it. Targets with schemes
// the sanitizer rejects are rewritten to #ZgotmplZ and reported by writeStub.
var stubTemplate = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Redirecting&hellip;</title>
  <meta http-equiv="refresh" content="0; url={{.}}">
  <meta name="robots" content="noindex">
  <link rel="canonical" href="{{.}}">
</head>
<body>
  <p>This page has moved. Redirecting to <a href="{{.}}">{{.}}</a>&hellip;</p>
</body>
</html>
`))

// Redirect is one parsed row of the redirect file.
type Redirect struct {
	Source string
	Target string
}

// ParseFile reads the whitespace-separated two-column redirect file.
// Blank lines and # comments are ignored; rows with fewer than two columns
// are skipped with a warning.
func ParseFile(path string) ([]Redirect, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	var redirects []Redirect
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			slog.Warn("Skipping malformed redirect line",
				slog.Int("line", lineNo), logfields.Path(path))
			continue
		}
		redirects = append(redirects, Redirect{Source: fields[0], Target: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read redirect file: %w", err)
	}
	return redirects, nil
}

// Generate emits one HTML stub per redirect row into outputDir.
//
// A missing redirect file is logged and produces zero output files without
// failing the run; the release process treats the file as optional.
// Returns the number of stubs written.
func Generate(path, outputDir string) (int, error) {
	redirects, err := ParseFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Error("Redirect file not found, skipping redirect generation", logfields.Path(path))
			return 0, nil
		}
		return 0, err
	}

	written := 0
	for _, r := range redirects {
		if err := writeStub(outputDir, r); err != nil {
			return written, err
		}
		written++
	}
	slog.Info("Redirect stubs generated", logfields.Count(written), logfields.Path(outputDir))
	return written, nil
}

func writeStub(outputDir string, r Redirect) error {
	name := r.Source
	if !strings.HasSuffix(name, ".html") {
		name += ".html"
	}

	outPath := filepath.Join(outputDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return fmt.Errorf("failed to create redirect directory: %w", err)
	}

	var buf bytes.Buffer
	if err := stubTemplate.Execute(&buf, r.Target); err != nil {
		return fmt.Errorf("failed to render redirect stub for %s: %w", r.Source, err)
	}
	if bytes.Contains(buf.Bytes(), []byte("#ZgotmplZ")) {
		slog.Warn("Redirect target rejected by HTML sanitizer, stub will not redirect",
			logfields.URL(r.Target), logfields.Path(outPath))
	}

	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write redirect stub: %w", err)
	}
	slog.Debug("Redirect stub written", logfields.Path(outPath), logfields.URL(r.Target))
	return nil
}
