package convert

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/hugorg/internal/foundation/errors"
)

const sourceExt = ".md"

// IsSource reports whether name is a Markdown source file.
func IsSource(name string) bool {
	return filepath.Ext(name) == sourceExt
}

// Discover returns every Markdown file under the source directory as a
// sorted list of slash-separated relative paths.
func (r *Runner) Discover(ctx context.Context) ([]string, error) {
	var found []string
	err := filepath.WalkDir(r.cfg.Source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !IsSource(d.Name()) {
			return nil
		}
		rel, relErr := filepath.Rel(r.cfg.Source, path)
		if relErr != nil {
			return relErr
		}
		found = append(found, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to discover documents").
			WithContext("path", r.cfg.Source).
			Build()
	}
	slices.Sort(found)
	return found, nil
}

// OutputPath returns the destination file for a relative source path.
//
// The relative directory is preserved. The suffix is appended to the file
// name, after dropping ".md" when ReplaceExtension is set.
func (r *Runner) OutputPath(rel string) string {
	name := filepath.FromSlash(rel)
	if r.cfg.Output.ReplaceExtension {
		name = strings.TrimSuffix(name, sourceExt)
	}
	return filepath.Join(r.cfg.Dest, name+r.cfg.Output.Suffix)
}

// Relative converts an absolute or source-relative path into the
// slash-separated form used in results and state records.
func (r *Runner) Relative(path string) (string, error) {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(filepath.Clean(path)), nil
	}
	root, err := filepath.Abs(r.cfg.Source)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.ValidationError("path is outside the source directory").
			WithContext("path", path).
			Build()
	}
	return filepath.ToSlash(rel), nil
}

// writeFileAtomic writes data next to path and renames it into place, so a
// reader never sees a partially written output.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
