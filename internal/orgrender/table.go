package orgrender

import (
	"strings"

	"git.home.luguber.info/inful/hugorg/internal/doctree"
)

// renderTable writes one |-delimited line per row, a |---+---| rule after
// header rows, and a blank line after the table.
func (r *Renderer) renderTable(b *strings.Builder, t *doctree.Table) error {
	rows := t.Children()
	if len(rows) == 0 {
		return nil
	}
	for _, child := range rows {
		row, ok := child.(*doctree.TableRow)
		if !ok {
			if err := r.render(b, child); err != nil {
				return err
			}
			continue
		}
		if err := r.renderTableRow(b, row); err != nil {
			return err
		}
		if row.Header {
			writeRule(b, max(len(t.Alignments), len(row.Children())))
		}
	}
	b.WriteByte('\n')
	return nil
}

func (r *Renderer) renderTableRow(b *strings.Builder, row *doctree.TableRow) error {
	cells := row.Children()
	parts := make([]string, len(cells))
	for i, cell := range cells {
		var cb strings.Builder
		if err := r.render(&cb, cell); err != nil {
			return err
		}
		parts[i] = cellText(cb.String())
	}
	b.WriteString("| ")
	b.WriteString(strings.Join(parts, " | "))
	b.WriteString(" |\n")
	return nil
}

func writeRule(b *strings.Builder, columns int) {
	if columns < 1 {
		columns = 1
	}
	b.WriteByte('|')
	b.WriteString(strings.Repeat("---+", columns-1))
	b.WriteString("---|\n")
}

// cellText keeps a cell on one line and escapes the column delimiter.
func cellText(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
	return strings.ReplaceAll(s, "|", `\vert{}`)
}
