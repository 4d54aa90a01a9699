package model

import (
	"path/filepath"
	"strings"
)

// ParentName is the synthetic entry that navigates to the parent directory.
const ParentName = ".."

// Entry is one child of a listed directory.
type Entry struct {
	// Name is the base name of the child (or ParentName).
	Name string `json:"name"`
	// IsDir reports the entry's own file type; symlinks are not followed.
	IsDir bool `json:"is_dir"`
}

// Parent returns the synthetic parent-navigation entry.
func Parent() Entry {
	return Entry{Name: ParentName, IsDir: true}
}

// Pane is one navigable directory view.
type Pane struct {
	// Path is the canonical absolute directory shown by the pane.
	Path string `json:"path"`
	// Entries is the current listing. Replaced wholesale on every listing.
	Entries []Entry `json:"entries"`
	// Selected indexes Entries. Valid whenever Entries is non-empty.
	Selected int `json:"selected"`
}

// SelectedEntry returns the selected entry, or false when the pane is empty.
func (p Pane) SelectedEntry() (Entry, bool) {
	if p.Selected < 0 || p.Selected >= len(p.Entries) {
		return Entry{}, false
	}
	return p.Entries[p.Selected], true
}

// SelectedPath joins the pane path with the selected entry's name.
// The result is not canonicalized, so selecting ParentName yields "<path>/..".
// A pane at the root yields "/name", not "//name".
func (p Pane) SelectedPath() (string, bool) {
	e, ok := p.SelectedEntry()
	if !ok {
		return "", false
	}
	dir := p.Path
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return dir + e.Name, true
}

// SelectPrevious moves the selection up, saturating at 0.
func (p *Pane) SelectPrevious() {
	if p.Selected > 0 {
		p.Selected--
	}
}

// SelectNext moves the selection down, saturating at the last entry.
func (p *Pane) SelectNext() {
	if p.Selected < len(p.Entries)-1 {
		p.Selected++
	}
}

// Clone returns a deep copy so snapshots never alias live entry slices.
func (p Pane) Clone() Pane {
	entries := make([]Entry, len(p.Entries))
	copy(entries, p.Entries)
	p.Entries = entries
	return p
}
