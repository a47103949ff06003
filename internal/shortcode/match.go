// Package shortcode recognizes the Hugo shortcodes that hugorg maps to Org
// links: figure, ref and relref.
//
// The matchers are pure functions over the remaining text of a line. They
// never fail loudly: text that does not match exactly is left to the
// standard Markdown grammar.
package shortcode

import "regexp"

// Shortcode names recognized as link destinations.
const (
	NameRef    = "ref"
	NameRelRef = "relref"
)

var (
	figurePattern = regexp.MustCompile(
		`^\{\{<\s*figure\s+(?:[^>]*?\s)?src\s*=\s*(?:"([^"]+)"|([^\s">]+))[^>]*?>\}\}`)

	refPatterns = map[string]*regexp.Regexp{
		NameRef:    refPattern(NameRef),
		NameRelRef: refPattern(NameRelRef),
	}
)

func refPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(
		`^\[([^\[\]]*)\]\(\s*\{\{<\s*` + name + `\s+(?:"([^"]+)"|([^\s">]+))\s*>\}\}\s*\)`)
}

// MatchFigure matches {{< figure src="TARGET" >}} at the start of src.
// It returns the target and the number of bytes consumed.
func MatchFigure(src []byte) (target string, n int, ok bool) {
	m := figurePattern.FindSubmatchIndex(src)
	if m == nil {
		return "", 0, false
	}
	target = group(src, m, 1, 2)
	if target == "" {
		return "", 0, false
	}
	return target, m[1], true
}

// MatchRef matches [TITLE]({{< name "TARGET" >}}) at the start of src, where
// name is NameRef or NameRelRef. TITLE is returned verbatim: inline Markdown
// inside it is not parsed, so [*Home*] yields the title "*Home*".
func MatchRef(src []byte, name string) (title, target string, n int, ok bool) {
	re, known := refPatterns[name]
	if !known {
		return "", "", 0, false
	}
	m := re.FindSubmatchIndex(src)
	if m == nil {
		return "", "", 0, false
	}
	target = group(src, m, 2, 3)
	if target == "" {
		return "", "", 0, false
	}
	return string(src[m[2]:m[3]]), target, m[1], true
}

// group returns the first of the alternative capture groups that matched.
func group(src []byte, m []int, alts ...int) string {
	for _, g := range alts {
		if start, end := m[2*g], m[2*g+1]; start >= 0 {
			return string(src[start:end])
		}
	}
	return ""
}
