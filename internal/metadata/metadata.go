// Package metadata wraps a document's parsed front matter as a read-only
// key/value mapping.
package metadata

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Recognized keys.
const (
	KeyTitle  = "title"
	KeyDate   = "date"
	KeyAuthor = "author"
)

// Metadata is an immutable front matter mapping. The zero value is empty.
type Metadata struct {
	fields map[string]any
	// folded maps a lowercased key to the original key it resolves to.
	folded map[string]string
}

// New copies fields into a Metadata. Later changes to fields are not seen.
//
// When several keys differ only in case, an exact lowercase key wins;
// otherwise the key that sorts first does.
func New(fields map[string]any) Metadata {
	m := Metadata{fields: maps.Clone(fields)}
	if len(m.fields) == 0 {
		return m
	}
	keys := slices.Sorted(maps.Keys(m.fields))
	m.folded = make(map[string]string, len(keys))
	for _, k := range keys {
		lower := strings.ToLower(k)
		if _, taken := m.folded[lower]; !taken || k == lower {
			m.folded[lower] = k
		}
	}
	return m
}

// Lookup returns the raw value for key and whether it is present. Keys are
// matched case-insensitively, as Hugo does.
func (m Metadata) Lookup(key string) (any, bool) {
	if v, ok := m.fields[key]; ok {
		return v, true
	}
	if k, ok := m.folded[strings.ToLower(key)]; ok {
		return m.fields[k], true
	}
	return nil, false
}

// Has reports whether key is present with a non-nil value.
func (m Metadata) Has(key string) bool {
	v, ok := m.Lookup(key)
	return ok && v != nil
}

// String returns the value for key formatted as text. Absent and nil
// values report ok=false.
func (m Metadata) String(key string) (string, bool) {
	v, ok := m.Lookup(key)
	if !ok || v == nil {
		return "", false
	}
	return Format(v), true
}

// Title returns the title, or "" when absent.
func (m Metadata) Title() string {
	s, _ := m.String(KeyTitle)
	return s
}

// Date returns the formatted date and whether one is present.
func (m Metadata) Date() (string, bool) { return m.String(KeyDate) }

// Author returns the formatted author and whether one is present.
func (m Metadata) Author() (string, bool) { return m.String(KeyAuthor) }

// Len returns the number of keys.
func (m Metadata) Len() int { return len(m.fields) }

// Fields returns a copy of the underlying mapping.
func (m Metadata) Fields() map[string]any { return maps.Clone(m.fields) }

// Format renders a loosely-typed front matter value as a single line.
// Dates without a time of day print as YYYY-MM-DD, lists are joined with
// ", ".
func Format(v any) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(vv)
	case time.Time:
		if vv.Hour() == 0 && vv.Minute() == 0 && vv.Second() == 0 && vv.Nanosecond() == 0 {
			return vv.Format(time.DateOnly)
		}
		return vv.Format(time.RFC3339)
	case []string:
		return strings.Join(vv, ", ")
	case []any:
		parts := make([]string, 0, len(vv))
		for _, item := range vv {
			if s := Format(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case fmt.Stringer:
		return vv.String()
	default:
		return fmt.Sprint(vv)
	}
}
