// Package frontmatter separates a YAML front-matter block from a document body.
package frontmatter

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrMissingClosingDelimiter indicates the document opened a front-matter
// block but never closed it.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Block is a split document.
type Block struct {
	Raw  string // YAML between the delimiters, without them
	Body string // everything after the closing delimiter line
	Had  bool   // the document started with a front-matter block
}

// Split separates a leading `---` delimited YAML block from the body.
//
// The opening delimiter must be the first line (a UTF-8 BOM is ignored).
// The closing delimiter is the next line consisting of `---` alone; it may
// be the last line of the file without a trailing newline. CRLF input is
// accepted.
func Split(content string) (Block, error) {
	content = strings.TrimPrefix(content, "\uFEFF")

	first, rest, _ := cutLine(content)
	if first != delimiter {
		return Block{Body: content}, nil
	}

	var raw strings.Builder
	for {
		line, remaining, more := cutLine(rest)
		if line == delimiter && (more || rest != "") {
			return Block{Raw: raw.String(), Body: remaining, Had: true}, nil
		}
		if !more {
			return Block{}, ErrMissingClosingDelimiter
		}
		raw.WriteString(line)
		raw.WriteString("\n")
		rest = remaining
	}
}

// cutLine returns the first line of s without its terminator (\n or \r\n),
// the remainder after the terminator, and whether a terminator was found.
func cutLine(s string) (line, rest string, found bool) {
	line, rest, found = strings.Cut(s, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, rest, found
}

// Decode unmarshals the raw block into v. An empty block leaves v untouched.
func (b Block) Decode(v any) error {
	if strings.TrimSpace(b.Raw) == "" {
		return nil
	}
	return yaml.Unmarshal([]byte(b.Raw), v)
}

// Fields parses the raw block into a generic map.
func (b Block) Fields() (map[string]any, error) {
	fields := map[string]any{}
	if err := b.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
