// Package panes holds the directory lister and the ordered pane collection.
package panes

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/timvw/panefm/internal/model"
)

// Sort orders entries by byte-wise name comparison. With reverse set, every
// element after the first sorted one is reversed, so the first entry keeps
// its slot whatever its name is (usually ".." but not always).
func Sort(entries []model.Entry, reverse bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	if !reverse || len(entries) < 2 {
		return
	}
	tail := entries[1:]
	for i, j := 0, len(tail)-1; i < j; i, j = i+1, j-1 {
		tail[i], tail[j] = tail[j], tail[i]
	}
}

// List reads the immediate children of dir, appends the ".." entry and sorts.
func List(dir string, reverse bool) ([]model.Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, model.NewOpError("list", dir, model.ErrDirectoryRead, err)
	}
	entries := make([]model.Entry, 0, len(des)+1)
	for _, de := range des {
		entries = append(entries, model.Entry{Name: de.Name(), IsDir: de.IsDir()})
	}
	entries = append(entries, model.Parent())
	Sort(entries, reverse)
	return entries, nil
}

// Resolve joins target onto base (an absolute target replaces base) and
// canonicalizes the result: symlinks resolved, "." and ".." removed.
func Resolve(base, target string) (string, error) {
	joined := target
	if !filepath.IsAbs(target) {
		// Not filepath.Join: Join cleans lexically and would fold "link/.."
		// before the symlink is resolved.
		joined = base + string(filepath.Separator) + target
	}
	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return "", model.NewOpError("resolve", joined, model.ErrPathResolution, err)
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", model.NewOpError("resolve", joined, model.ErrPathResolution, err)
	}
	return abs, nil
}
