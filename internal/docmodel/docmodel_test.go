package docmodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/hugorg/internal/foundation/errors"
	"git.home.luguber.info/inful/hugorg/internal/frontmatter"
)

func TestParse_NoFrontmatter(t *testing.T) {
	content := []byte("# Hello\n\nBody\n")

	doc, err := Parse(content)
	require.NoError(t, err)
	require.False(t, doc.HadFrontmatter())
	require.Equal(t, 0, doc.Metadata().Len())
	require.Equal(t, content, doc.Body())
}

func TestParse_YAMLFrontmatter(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: Post\nauthor: Jane\n---\n# Hi\n"))
	require.NoError(t, err)

	require.Equal(t, frontmatter.FormatYAML, doc.Format())
	require.Equal(t, "Post", doc.Metadata().Title())
	author, ok := doc.Metadata().Author()
	require.True(t, ok)
	require.Equal(t, "Jane", author)
	require.Equal(t, []byte("# Hi\n"), doc.Body())
}

func TestParse_TOMLFrontmatter(t *testing.T) {
	doc, err := Parse([]byte("+++\ntitle = \"Post\"\n+++\n# Hi\n"))
	require.NoError(t, err)

	require.Equal(t, frontmatter.FormatTOML, doc.Format())
	require.Equal(t, "Post", doc.Metadata().Title())
}

func TestParse_MissingClosingDelimiter_ReturnsDocsError(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: value\n# body\n"))

	require.ErrorIs(t, err, frontmatter.ErrMissingClosingDelimiter)
	require.True(t, errors.HasCategory(err, errors.CategoryDocs))
}

func TestParseFile_AddsPathContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: x\n"), 0o600))

	_, err := ParseFile(path)

	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	got, ok := classified.Context().GetString("path")
	require.True(t, ok)
	require.Equal(t, path, got)
}

func TestParseFile_MissingFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.md"))

	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParsedDoc_DoesNotExposeMutableBody(t *testing.T) {
	doc, err := Parse([]byte("# Hello\n"))
	require.NoError(t, err)

	body := doc.Body()
	body[0] = 'X'

	require.Equal(t, byte('#'), doc.Body()[0])
}

func TestFingerprint(t *testing.T) {
	a, err := Parse([]byte("---\ntitle: A\ntags: [x]\n---\nBody\n"))
	require.NoError(t, err)
	reordered, err := Parse([]byte("---\ntags: [x]\ntitle: A\nfingerprint: stale\n---\nBody\n"))
	require.NoError(t, err)
	edited, err := Parse([]byte("---\ntitle: A\ntags: [x]\n---\nBody!\n"))
	require.NoError(t, err)

	fpA, err := a.Fingerprint()
	require.NoError(t, err)
	require.NotEmpty(t, fpA)

	fpReordered, err := reordered.Fingerprint()
	require.NoError(t, err)
	require.Equal(t, fpA, fpReordered)

	fpEdited, err := edited.Fingerprint()
	require.NoError(t, err)
	require.NotEqual(t, fpA, fpEdited)

	fpSettings, err := a.Fingerprint(".org")
	require.NoError(t, err)
	require.NotEqual(t, fpA, fpSettings)
}
