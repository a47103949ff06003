// Package docmodel turns raw Markdown file content into metadata and body.
package docmodel

import (
	"os"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/hugorg/internal/foundation/errors"
	"git.home.luguber.info/inful/hugorg/internal/frontmatter"
	"git.home.luguber.info/inful/hugorg/internal/metadata"
)

// ParsedDoc represents a Markdown document split into front matter and body.
type ParsedDoc struct {
	fields map[string]any
	body   []byte
	format frontmatter.Format
}

// Parse parses raw file content into a ParsedDoc.
func Parse(content []byte) (*ParsedDoc, error) {
	fields, body, format, err := frontmatter.Decode(content)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryDocs, "failed to parse front matter").
			UserAction().
			WithContext("format", string(format)).
			Build()
	}

	return &ParsedDoc{
		fields: fields,
		body:   append([]byte(nil), body...),
		format: format,
	}, nil
}

// ParseFile reads a file from disk and parses it into a ParsedDoc.
func ParseFile(path string) (*ParsedDoc, error) {
	// #nosec G304 -- path comes from discovery under the configured source directory.
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read document").
			WithContext("path", path).
			Build()
	}

	doc, err := Parse(content)
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("path", path)
		}
		return nil, err
	}
	return doc, nil
}

// Metadata returns the document's front matter fields.
func (d *ParsedDoc) Metadata() metadata.Metadata {
	return metadata.New(d.fields)
}

// Format returns the front matter syntax the document used.
func (d *ParsedDoc) Format() frontmatter.Format {
	return d.format
}

// HadFrontmatter reports whether the document contained a front matter block.
func (d *ParsedDoc) HadFrontmatter() bool {
	return d.format != frontmatter.FormatNone
}

// Body returns the Markdown body bytes (front matter removed).
func (d *ParsedDoc) Body() []byte {
	return append([]byte(nil), d.body...)
}

// Fingerprint hashes the canonical front matter, the body and settings.
//
// settings lists the conversion options that influence output, so that a
// change to them invalidates earlier results. A fingerprint field already
// present in the front matter is ignored.
func (d *ParsedDoc) Fingerprint(settings ...string) (string, error) {
	fieldsForHash := make(map[string]any, len(d.fields))
	for k, v := range d.fields {
		if k == mdfp.FingerprintField {
			continue
		}
		fieldsForHash[k] = v
	}

	serialized, err := frontmatter.Canonical(fieldsForHash)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryInternal, "failed to serialize front matter").Build()
	}

	head := strings.TrimSuffix(string(serialized), "\n")
	if len(settings) > 0 {
		head += "\n#" + strings.Join(settings, "\x1f")
	}
	return mdfp.CalculateFingerprintFromParts(head, string(d.body)), nil
}
