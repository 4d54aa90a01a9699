package panes

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"

	"github.com/timvw/panefm/internal/model"
	ppotel "github.com/timvw/panefm/internal/otel"
)

// ErrLastPane is returned by RemovePane when only one pane is left.
var ErrLastPane = errors.New("cannot remove the last pane")

// Option configures a Set.
type Option func(*Set)

// WithLogger sets the logger used for listing diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Set) { s.log = l }
}

// WithMetrics records every listing on m. nil is allowed.
func WithMetrics(m *ppotel.Metrics) Option {
	return func(s *Set) { s.metrics = m }
}

// WithReverse sets the initial reversal flag.
func WithReverse(reverse bool) Option {
	return func(s *Set) { s.reverse = reverse }
}

// Set is the ordered collection of panes and the index of the active one.
// Panes are addressed by position only.
type Set struct {
	panes   []model.Pane
	active  int
	reverse bool

	log     zerolog.Logger
	metrics *ppotel.Metrics
}

// New creates count panes (at least one) all showing start. It fails when
// start cannot be canonicalized or listed.
func New(start string, count int, opts ...Option) (*Set, error) {
	s := &Set{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	if count < 1 {
		count = 1
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, model.NewOpError("resolve", start, model.ErrPathResolution, err)
	}
	path, err := Resolve("", abs)
	if err != nil {
		return nil, err
	}
	entries, err := s.list(path)
	if err != nil {
		return nil, err
	}

	s.panes = make([]model.Pane, count)
	for i := range s.panes {
		s.panes[i] = model.Pane{Path: path, Entries: entries}.Clone()
	}
	return s, nil
}

func (s *Set) list(path string) ([]model.Entry, error) {
	entries, err := List(path, s.reverse)
	s.metrics.RecordListing(context.Background(), err)
	if err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("listing failed")
		return nil, err
	}
	s.log.Debug().Str("path", path).Int("entries", len(entries)).Msg("listed")
	return entries, nil
}

// Len returns the number of panes.
func (s *Set) Len() int { return len(s.panes) }

// Active returns the index of the active pane.
func (s *Set) Active() int { return s.active }

// Reversed reports the process-wide reversal flag.
func (s *Set) Reversed() bool { return s.reverse }

// Pane returns a copy of the pane at index i.
func (s *Set) Pane(i int) model.Pane { return s.panes[i].Clone() }

// ActivePath returns the directory of the active pane.
func (s *Set) ActivePath() string { return s.panes[s.active].Path }

// ActivePane returns a copy of the active pane.
func (s *Set) ActivePane() model.Pane { return s.Pane(s.active) }

// Panes returns copies of all panes in position order.
func (s *Set) Panes() []model.Pane {
	out := make([]model.Pane, len(s.panes))
	for i := range s.panes {
		out[i] = s.panes[i].Clone()
	}
	return out
}

// NavigateLeft focuses the previous pane; no-op on the first pane.
func (s *Set) NavigateLeft() {
	if s.active > 0 {
		s.active--
	}
}

// NavigateRight focuses the next pane; no-op on the last pane.
func (s *Set) NavigateRight() {
	if s.active < len(s.panes)-1 {
		s.active++
	}
}

// SelectPrevious moves the active pane's selection up.
func (s *Set) SelectPrevious() { s.panes[s.active].SelectPrevious() }

// SelectNext moves the active pane's selection down.
func (s *Set) SelectNext() { s.panes[s.active].SelectNext() }

// UpdateDir points pane i at target, resolved against the pane's path.
// On failure the pane is left untouched.
func (s *Set) UpdateDir(i int, target string) error {
	p := &s.panes[i]
	path, err := Resolve(p.Path, target)
	if err != nil {
		s.log.Warn().Err(err).Str("path", p.Path).Str("target", target).Msg("resolve failed")
		return err
	}
	entries, err := s.list(path)
	if err != nil {
		return err
	}
	p.Path = path
	p.Entries = entries
	p.Selected = 0
	return nil
}

// AddPane inserts a pane at index at showing the active pane's directory
// and makes it active. If the listing fails the new pane stays, empty.
func (s *Set) AddPane(at int) error {
	at = max(0, min(at, len(s.panes)))
	path := s.panes[s.active].Path
	s.panes = slices.Insert(s.panes, at, model.Pane{Path: path})
	s.active = at

	entries, err := s.list(path)
	if err != nil {
		return err
	}
	s.panes[at].Entries = entries
	return nil
}

// RemovePane removes the pane at index at and moves focus one step
// towards the start. The last remaining pane cannot be removed.
func (s *Set) RemovePane(at int) error {
	if len(s.panes) <= 1 {
		return ErrLastPane
	}
	if at < 0 || at >= len(s.panes) {
		return fmt.Errorf("pane index %d out of range [0,%d)", at, len(s.panes))
	}
	s.panes = slices.Delete(s.panes, at, at+1)
	if s.active > 0 {
		s.active--
	}
	return nil
}

// ToggleReversal flips the reversal flag and re-sorts every pane's
// in-memory entries. Nothing is re-read from disk.
func (s *Set) ToggleReversal() {
	s.reverse = !s.reverse
	for i := range s.panes {
		Sort(s.panes[i].Entries, s.reverse)
	}
}

// Refresh re-lists every pane in position order. A pane whose listing
// fails keeps its stale entries; the failure is logged, not returned.
// The active index is never touched.
func (s *Set) Refresh() {
	for i := range s.panes {
		entries, err := s.list(s.panes[i].Path)
		if err != nil {
			continue
		}
		s.panes[i].Entries = entries
		s.panes[i].Selected = 0
	}
}
