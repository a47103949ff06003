package orgrender

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/hugorg/internal/metadata"
)

func TestPreamble_OmitsAbsentFields(t *testing.T) {
	got := New(metadata.New(map[string]any{"title": "Only"})).Preamble()

	require.Equal(t, "#+title: Only\n\n", got)
	require.Equal(t, 1, strings.Count(got, "#+title:"))
}

func TestPreamble_AllFields(t *testing.T) {
	meta := metadata.New(map[string]any{
		"title":  "Post",
		"date":   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		"author": "Jane",
	})

	require.Equal(t, "#+title: Post\n#+date: 2024-01-01\n#+author: Jane\n\n", New(meta).Preamble())
}

func TestPreamble_MissingTitleIsEmpty(t *testing.T) {
	require.Equal(t, "#+title:\n\n", New(metadata.New(nil)).Preamble())
}

func TestPreamble_EmptyOptionalFieldsAreSuppressed(t *testing.T) {
	meta := metadata.New(map[string]any{"title": "T", "date": "", "author": "   "})

	require.Equal(t, "#+title: T\n\n", New(meta).Preamble())
}

func TestPreamble_AuthorList(t *testing.T) {
	meta := metadata.New(map[string]any{"title": "T", "author": []any{"Ann", "Bob"}})

	require.Equal(t, "#+title: T\n#+author: Ann, Bob\n\n", New(meta).Preamble())
}

func TestPreamble_MultilineValueStaysOnOneLine(t *testing.T) {
	meta := metadata.New(map[string]any{"title": "Two\nlines"})

	require.Equal(t, "#+title: Two lines\n\n", New(meta).Preamble())
}

func TestPreamble_ExtraKeys(t *testing.T) {
	meta := metadata.New(map[string]any{
		"title":       "T",
		"description": "About things",
		"tags":        []any{"go", "org"},
	})

	got := New(meta, WithExtraKeys("description", "missing", "Title", "tags")).Preamble()

	require.Equal(t, "#+title: T\n#+description: About things\n#+tags: go, org\n\n", got)
}

func TestCollapse(t *testing.T) {
	require.Equal(t, []string{"a", "b", "a"}, collapse([]string{"a", "", "a", "b", "", "", "a"}))
	require.Empty(t, collapse(nil))
}
