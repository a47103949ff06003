// Package frontmatter separates Hugo front matter from the Markdown body.
//
// YAML (`---`) blocks are split and decoded here with yaml.v3. TOML (`+++`)
// and JSON (`{ ... }`) blocks are handed to github.com/adrg/frontmatter.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	adrg "github.com/adrg/frontmatter"
)

// Format identifies the front matter syntax of a document.
type Format string

const (
	FormatNone Format = ""
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Detect reports which front matter format content starts with.
//
// A leading `{{` is a shortcode, not JSON.
func Detect(content []byte) Format {
	switch {
	case hasDelimiterLine(content, "---"):
		return FormatYAML
	case hasDelimiterLine(content, "+++"):
		return FormatTOML
	case len(content) > 1 && content[0] == '{' && content[1] != '{':
		return FormatJSON
	default:
		return FormatNone
	}
}

// Decode returns the front matter fields and the remaining body.
//
// Documents without front matter yield an empty map and the full input as body.
func Decode(content []byte) (fields map[string]any, body []byte, format Format, err error) {
	format = Detect(content)
	switch format {
	case FormatYAML:
		raw, rest, _, splitErr := Split(content)
		if splitErr != nil {
			return nil, nil, format, splitErr
		}
		fields, err = ParseYAML(raw)
		if err != nil {
			return nil, nil, format, fmt.Errorf("parse yaml front matter: %w", err)
		}
		return fields, rest, format, nil
	case FormatTOML, FormatJSON:
		fields = map[string]any{}
		rest, parseErr := adrg.Parse(bytes.NewReader(content), &fields)
		if parseErr != nil {
			return nil, nil, format, fmt.Errorf("parse %s front matter: %w", format, parseErr)
		}
		return fields, rest, format, nil
	default:
		return map[string]any{}, content, FormatNone, nil
	}
}

func hasDelimiterLine(content []byte, delim string) bool {
	return bytes.HasPrefix(content, []byte(delim+"\n")) || bytes.HasPrefix(content, []byte(delim+"\r\n"))
}
