package panes

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/timvw/panefm/internal/model"
	"pgregory.net/rapid"
)

func newTestSet(t *testing.T, count int) (*Set, string) {
	t.Helper()
	dir := canon(t, t.TempDir())
	mkfile(t, filepath.Join(dir, "file.txt"), "hello")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	s, err := New(dir, count)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, dir
}

func TestNew(t *testing.T) {
	s, dir := newTestSet(t, 2)
	if s.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", s.Len())
	}
	if s.Active() != 0 {
		t.Errorf("Active: got %d, want 0", s.Active())
	}
	for i, p := range s.Panes() {
		if p.Path != dir {
			t.Errorf("pane %d path: got %q, want %q", i, p.Path, dir)
		}
		if len(p.Entries) != 3 || p.Selected != 0 {
			t.Errorf("pane %d: %d entries, selected %d", i, len(p.Entries), p.Selected)
		}
	}
}

func TestNewFailsOnUnreadableStart(t *testing.T) {
	dir := t.TempDir()
	if _, err := New(filepath.Join(dir, "missing"), 2); !errors.Is(err, model.ErrPathResolution) {
		t.Errorf("missing start: got %v, want ErrPathResolution", err)
	}
	file := filepath.Join(dir, "f")
	mkfile(t, file, "")
	if _, err := New(file, 2); !errors.Is(err, model.ErrDirectoryRead) {
		t.Errorf("file start: got %v, want ErrDirectoryRead", err)
	}
}

func TestNavigateSaturates(t *testing.T) {
	s, _ := newTestSet(t, 2)
	s.NavigateLeft()
	if s.Active() != 0 {
		t.Errorf("left from 0: got %d, want 0", s.Active())
	}
	s.NavigateRight()
	s.NavigateRight()
	if s.Active() != 1 {
		t.Errorf("right from 1: got %d, want 1", s.Active())
	}
}

func TestUpdateDir(t *testing.T) {
	s, dir := newTestSet(t, 2)
	s.SelectNext()

	if err := s.UpdateDir(0, "sub"); err != nil {
		t.Fatalf("UpdateDir: %v", err)
	}
	p := s.Pane(0)
	if p.Path != filepath.Join(dir, "sub") {
		t.Errorf("path: got %q", p.Path)
	}
	if p.Selected != 0 || len(p.Entries) != 1 || p.Entries[0].Name != ".." {
		t.Errorf("unexpected pane after update: %+v", p)
	}
	if s.Pane(1).Path != dir {
		t.Error("other pane must not change")
	}

	if err := s.UpdateDir(0, ".."); err != nil {
		t.Fatalf("UpdateDir ..: %v", err)
	}
	if s.Pane(0).Path != dir {
		t.Errorf("parent: got %q, want %q", s.Pane(0).Path, dir)
	}
}

func TestUpdateDirFailureLeavesPaneUnchanged(t *testing.T) {
	s, _ := newTestSet(t, 2)
	s.SelectNext()
	before := s.Pane(0)

	err := s.UpdateDir(0, "missing")
	if !errors.Is(err, model.ErrPathResolution) {
		t.Errorf("missing: got %v, want ErrPathResolution", err)
	}
	err = s.UpdateDir(0, "file.txt")
	if !errors.Is(err, model.ErrDirectoryRead) {
		t.Errorf("file: got %v, want ErrDirectoryRead", err)
	}

	after := s.Pane(0)
	if after.Path != before.Path || after.Selected != before.Selected || len(after.Entries) != len(before.Entries) {
		t.Errorf("pane changed: before %+v, after %+v", before, after)
	}
}

func TestAddThenRemoveRestoresCount(t *testing.T) {
	s, _ := newTestSet(t, 2)
	s.NavigateRight()
	if err := s.UpdateDir(1, "sub"); err != nil {
		t.Fatal(err)
	}
	pathBefore := s.ActivePane().Path

	at := s.Active()
	if err := s.AddPane(at); err != nil {
		t.Fatalf("AddPane: %v", err)
	}
	if s.Len() != 3 || s.Active() != at {
		t.Fatalf("after add: len %d active %d", s.Len(), s.Active())
	}
	if got := s.ActivePane().Path; got != pathBefore {
		t.Errorf("new pane path: got %q, want %q", got, pathBefore)
	}

	if err := s.RemovePane(at); err != nil {
		t.Fatalf("RemovePane: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("len after remove: got %d, want 2", s.Len())
	}
	if got := s.ActivePane().Path; got != pathBefore {
		t.Errorf("active path after add/remove: got %q, want %q", got, pathBefore)
	}
}

func TestAddPaneShiftsLaterPanes(t *testing.T) {
	s, dir := newTestSet(t, 2)
	if err := s.UpdateDir(1, "sub"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddPane(0); err != nil {
		t.Fatal(err)
	}
	if s.Pane(2).Path != filepath.Join(dir, "sub") {
		t.Errorf("pane previously at 1 should now be at 2, got %q", s.Pane(2).Path)
	}
}

func TestAddPaneListingFailureKeepsEmptyPane(t *testing.T) {
	s, dir := newTestSet(t, 1)
	if err := s.UpdateDir(0, "sub"); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(dir, "sub")); err != nil {
		t.Fatal(err)
	}

	err := s.AddPane(0)
	if !errors.Is(err, model.ErrDirectoryRead) {
		t.Fatalf("got %v, want ErrDirectoryRead", err)
	}
	if s.Len() != 2 {
		t.Fatalf("new pane must stay: len %d", s.Len())
	}
	if p := s.ActivePane(); len(p.Entries) != 0 {
		t.Errorf("new pane should be empty, got %v", p.Entries)
	}
}

func TestRemoveLastPaneRejected(t *testing.T) {
	s, _ := newTestSet(t, 1)
	if err := s.RemovePane(0); !errors.Is(err, ErrLastPane) {
		t.Errorf("got %v, want ErrLastPane", err)
	}
	if s.Len() != 1 {
		t.Errorf("len: got %d, want 1", s.Len())
	}
}

func TestRemovePaneMovesFocusTowardsStart(t *testing.T) {
	s, _ := newTestSet(t, 3)
	s.NavigateRight()
	s.NavigateRight()
	if err := s.RemovePane(2); err != nil {
		t.Fatal(err)
	}
	if s.Active() != 1 {
		t.Errorf("active: got %d, want 1", s.Active())
	}
	s.NavigateLeft()
	if err := s.RemovePane(0); err != nil {
		t.Fatal(err)
	}
	if s.Active() != 0 {
		t.Errorf("active saturates at 0, got %d", s.Active())
	}
}

func TestToggleReversalResortsInMemory(t *testing.T) {
	s, dir := newTestSet(t, 2)
	original := names(s.Pane(0).Entries)

	// A file created after listing must not appear: nothing is re-read.
	mkfile(t, filepath.Join(dir, "late.txt"), "")
	s.ToggleReversal()
	if !s.Reversed() {
		t.Fatal("expected reversed flag")
	}
	for i := 0; i < s.Len(); i++ {
		got := names(s.Pane(i).Entries)
		if want := []string{"..", "sub", "file.txt"}; !slices.Equal(got, want) {
			t.Fatalf("pane %d: got %v, want %v", i, got, want)
		}
	}

	s.ToggleReversal()
	if got := names(s.Pane(0).Entries); !slices.Equal(got, original) {
		t.Fatalf("round trip: got %v, want %v", got, original)
	}
}

func TestRefreshKeepsStaleOnFailure(t *testing.T) {
	s, dir := newTestSet(t, 2)
	if err := s.UpdateDir(1, "sub"); err != nil {
		t.Fatal(err)
	}
	s.NavigateRight()
	mkfile(t, filepath.Join(dir, "new.txt"), "")
	if err := os.Remove(filepath.Join(dir, "sub")); err != nil {
		t.Fatal(err)
	}
	stale := s.Pane(1)

	s.Refresh()

	if s.Active() != 1 {
		t.Errorf("active changed to %d", s.Active())
	}
	if got, want := names(s.Pane(0).Entries), []string{"..", "file.txt", "new.txt"}; !slices.Equal(got, want) {
		t.Errorf("pane 0 should be re-listed: got %v, want %v", got, want)
	}
	if got := s.Pane(1); got.Path != stale.Path || len(got.Entries) != len(stale.Entries) {
		t.Errorf("pane 1 should keep its stale listing, got %+v", got)
	}
}

func TestPaneSetInvariants(t *testing.T) {
	dir := canon(t, t.TempDir())
	rapid.Check(t, func(rt *rapid.T) {
		s, err := New(dir, rapid.IntRange(1, 4).Draw(rt, "count"))
		if err != nil {
			rt.Fatalf("New: %v", err)
		}
		ops := rapid.SliceOfN(rapid.IntRange(0, 3), 0, 40).Draw(rt, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				s.NavigateLeft()
			case 1:
				s.NavigateRight()
			case 2:
				_ = s.AddPane(s.Active())
			case 3:
				_ = s.RemovePane(s.Active())
			}
			if s.Len() < 1 {
				rt.Fatalf("pane count dropped to %d", s.Len())
			}
			if s.Active() < 0 || s.Active() >= s.Len() {
				rt.Fatalf("active %d out of range [0,%d)", s.Active(), s.Len())
			}
		}
	})
}
