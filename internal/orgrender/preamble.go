package orgrender

import (
	"strings"

	"git.home.luguber.info/inful/hugorg/internal/metadata"
)

// Preamble returns the #+ directive lines derived from the metadata,
// followed by one blank line. The title line is always present. Date,
// author and any extra keys appear only when set to a non-empty value.
func (r *Renderer) Preamble() string {
	return buildPreamble(r.meta, r.extraKeys)
}

func buildPreamble(meta metadata.Metadata, extraKeys []string) string {
	fragments := []string{directive(metadata.KeyTitle, meta.Title())}
	seen := map[string]bool{metadata.KeyTitle: true}
	for _, key := range append([]string{metadata.KeyDate, metadata.KeyAuthor}, extraKeys...) {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if value, ok := meta.String(key); ok && value != "" {
			fragments = append(fragments, directive(key, value))
		}
	}
	return strings.Join(collapse(fragments), "\n") + "\n\n"
}

func directive(key, value string) string {
	return strings.TrimRight("#+"+key+": "+singleLine(value), " ")
}

// singleLine folds line breaks so a value cannot end its directive early.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// collapse drops empty fragments and consecutive duplicates.
func collapse(fragments []string) []string {
	out := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1] == f {
			continue
		}
		out = append(out, f)
	}
	return out
}
