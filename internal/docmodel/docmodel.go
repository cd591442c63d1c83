// Package docmodel turns raw document bytes into a parsed Document: typed
// front-matter metadata, the Markdown body and a content fingerprint.
package docmodel

import (
	"io/fs"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/frontmatter"
)

// Meta is the subset of front matter the site understands.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Order       int    `yaml:"order"`
}

// Document is a parsed content file.
type Document struct {
	Meta           Meta
	Fields         map[string]any // full front matter, including unknown keys
	Body           string
	HadFrontMatter bool
	Fingerprint    string
}

// Parse splits and decodes a document. Front matter that cannot be split or
// decoded is a validation error; documents without front matter are valid.
func Parse(content []byte) (*Document, error) {
	block, err := frontmatter.Split(string(content))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to split front matter").Build()
	}

	fields, err := block.Fields()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse front matter").Build()
	}

	var meta Meta
	if err := block.Decode(&meta); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid front matter fields").Build()
	}
	meta.Title = strings.TrimSpace(meta.Title)
	meta.Description = strings.TrimSpace(meta.Description)
	meta.Icon = strings.TrimSpace(meta.Icon)

	fp, err := Fingerprint(fields, block.Body)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to fingerprint document").Build()
	}

	return &Document{
		Meta:           meta,
		Fields:         fields,
		Body:           block.Body,
		HadFrontMatter: block.Had,
		Fingerprint:    fp,
	}, nil
}

// ParseFS reads name from fsys and parses it.
func ParseFS(fsys fs.FS, name string) (*Document, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read document").
			WithContext("path", name).
			Build()
	}

	doc, err := Parse(content)
	if err != nil {
		category := errors.CategoryValidation
		if classified, ok := errors.AsClassified(err); ok {
			category = classified.Category()
		}
		return nil, errors.WrapError(err, category, "failed to parse document").
			WithContext("path", name).
			Build()
	}
	return doc, nil
}

// Fingerprint hashes the canonical front matter (minus any stored fingerprint
// field) together with the body. Formatting-only front-matter changes such as
// key order do not change the result.
func Fingerprint(fields map[string]any, body string) (string, error) {
	canonical, err := frontmatter.Canonical(fields, mdfp.FingerprintField)
	if err != nil {
		return "", err
	}
	return mdfp.CalculateFingerprintFromParts(canonical, body), nil
}
