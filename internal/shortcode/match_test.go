package shortcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchFigure(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		target string
		n      int
		ok     bool
	}{
		{"quoted", `{{< figure src="/img/a.png" >}}`, "/img/a.png", 31, true},
		{"unquoted", `{{< figure src=/img/a.png >}}`, "/img/a.png", 29, true},
		{"tight", `{{<figure src="/img/a.png">}}`, "/img/a.png", 29, true},
		{"extra attributes", `{{< figure class="wide" src="a.png" title="A" >}}`, "a.png", 49, true},
		{"trailing text not consumed", `{{< figure src="a.png" >}} after`, "a.png", 26, true},
		{"missing src", `{{< figure >}}`, "", 0, false},
		{"empty src", `{{< figure src="" >}}`, "", 0, false},
		{"unbalanced quote", `{{< figure src="a.png >}}`, "", 0, false},
		{"unbalanced braces", `{{< figure src="a.png" >}`, "", 0, false},
		{"other shortcode", `{{< youtube id="x" >}}`, "", 0, false},
		{"not at start", ` {{< figure src="a.png" >}}`, "", 0, false},
		{"data-src is not src", `{{< figure data-src="a.png" >}}`, "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, n, ok := MatchFigure([]byte(tt.src))
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.target, target)
			require.Equal(t, tt.n, n)
		})
	}
}

func TestMatchRef(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		code   string
		title  string
		target string
		ok     bool
	}{
		{"ref", `[Home]({{< ref "/index" >}})`, NameRef, "Home", "/index", true},
		{"relref", `[Sibling]({{< relref "sibling.md" >}})`, NameRelRef, "Sibling", "sibling.md", true},
		{"unquoted target", `[Home]({{< ref /index >}})`, NameRef, "Home", "/index", true},
		{"spaces inside parens", `[Home]( {{<ref "/index">}} )`, NameRef, "Home", "/index", true},
		{"empty title", `[]({{< ref "/index" >}})`, NameRef, "", "/index", true},
		{"title kept verbatim", `[*Home*]({{< ref "/index" >}})`, NameRef, "*Home*", "/index", true},
		{"ref does not match relref", `[Home]({{< relref "/index" >}})`, NameRef, "", "", false},
		{"relref does not match ref", `[Home]({{< ref "/index" >}})`, NameRelRef, "", "", false},
		{"plain link", `[Home](/index)`, NameRef, "", "", false},
		{"missing target", `[Home]({{< ref >}})`, NameRef, "", "", false},
		{"unbalanced quote", `[Home]({{< ref "/index >}})`, NameRef, "", "", false},
		{"unclosed paren", `[Home]({{< ref "/index" >}}`, NameRef, "", "", false},
		{"unknown shortcode name", `[Home]({{< ref "/index" >}})`, "absref", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, target, n, ok := MatchRef([]byte(tt.src), tt.code)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.title, title)
			require.Equal(t, tt.target, target)
			if ok {
				require.Equal(t, len(tt.src), n)
			}
		})
	}
}
