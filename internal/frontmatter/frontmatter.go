package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is
// false and body is the full input. Both \n and \r\n delimited documents are
// accepted; the body is returned with its original line endings.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		// Empty frontmatter block.
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	fmEnd := start + idx + len(nl)
	bodyStart := start + idx + len(closeSeq)
	return content[start:fmEnd], content[bodyStart:], true, nil
}

// Body returns the Markdown body of content with any leading frontmatter
// block stripped. A malformed frontmatter block is returned as-is.
func Body(content []byte) []byte {
	_, body, _, err := Split(content)
	if err != nil {
		return content
	}
	return body
}

// Compose assembles a document from frontmatter fields and a Markdown body.
//
// The frontmatter is serialized with sorted keys between `---` delimiters.
// A blank line separates the frontmatter block from a non-empty body.
func Compose(fields map[string]any, body []byte) ([]byte, error) {
	fm, err := SerializeYAML(fields)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(fm)+len(body)+16)
	out = append(out, []byte("---\n")...)
	out = append(out, fm...)
	out = append(out, []byte("---\n")...)
	if len(body) > 0 {
		out = append(out, '\n')
		out = append(out, body...)
	}
	return out, nil
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(frontmatter) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}
