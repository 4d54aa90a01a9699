// Package mode dispatches key presses to pane and transfer operations
// according to the current browsing mode.
package mode

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/timvw/panefm/internal/journal"
	"github.com/timvw/panefm/internal/model"
	"github.com/timvw/panefm/internal/panes"
	"github.com/timvw/panefm/internal/transfer"
)

// Controller owns the mode state machine. It is not safe for concurrent
// use; the UI loop is its only caller.
type Controller struct {
	Panes   *panes.Set
	Engine  *transfer.Engine
	Journal *journal.Journal // nil-safe
	Log     zerolog.Logger
	Now     func() time.Time

	mode Mode
	ok   bool
}

// New returns a controller in Browsing mode with a clean status.
func New(set *panes.Set, engine *transfer.Engine, j *journal.Journal, log zerolog.Logger) *Controller {
	return &Controller{
		Panes:   set,
		Engine:  engine,
		Journal: j,
		Log:     log,
		Now:     time.Now,
		mode:    Browsing{},
		ok:      true,
	}
}

// Mode returns the current state.
func (c *Controller) Mode() Mode { return c.mode }

// OK reports whether the most recent mutating operation succeeded.
func (c *Controller) OK() bool { return c.ok }

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Panes    []model.Pane
	Active   int
	Mode     Mode
	OK       bool
	Reversed bool
	Last     journal.Record
	HasLast  bool
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	last, hasLast := c.Journal.Last()
	return Snapshot{
		Panes:    c.Panes.Panes(),
		Active:   c.Panes.Active(),
		Mode:     c.mode,
		OK:       c.ok,
		Reversed: c.Panes.Reversed(),
		Last:     last,
		HasLast:  hasLast,
	}
}

// Handle applies at most one transition for p. It returns true when the
// caller should exit.
func (c *Controller) Handle(ctx context.Context, p Press) (quit bool) {
	switch m := c.mode.(type) {
	case Browsing:
		return c.browse(ctx, p)
	case AwaitingMove:
		c.await(p, func() { c.move(ctx, m.target) })
	case AwaitingCopy:
		c.await(p, func() { c.copy(ctx, m.target) })
	}
	return false
}

func (c *Controller) browse(ctx context.Context, p Press) bool {
	switch p.Key {
	case KeyQuit:
		return true
	case KeyUp:
		c.Panes.SelectPrevious()
	case KeyDown:
		c.Panes.SelectNext()
	case KeyLeft:
		c.Panes.NavigateLeft()
	case KeyRight:
		c.Panes.NavigateRight()
	case KeyConfirm:
		c.enter()
	case KeyAddPane:
		err := c.Panes.AddPane(c.Panes.Active())
		c.setStatus("add pane", err)
	case KeyRemovePane:
		// Refusal on the last pane is not a failed operation.
		if err := c.Panes.RemovePane(c.Panes.Active()); err != nil {
			c.Log.Debug().Err(err).Msg("remove pane refused")
		}
	case KeyToggleSort:
		c.Panes.ToggleReversal()
	case KeyMarkMove, KeyMarkCopy:
		c.mark(p.Key)
	case KeyDelete:
		if p.Modified {
			c.delete(ctx)
		}
	case KeyRefresh:
		c.Engine.Refresh()
	}
	return false
}

func (c *Controller) await(p Press, confirm func()) {
	switch p.Key {
	case KeyLeft:
		c.Panes.NavigateLeft()
	case KeyRight:
		c.Panes.NavigateRight()
	case KeyConfirm:
		confirm()
		c.mode = Browsing{}
	case KeyCancel:
		c.mode = Browsing{}
	}
}

func (c *Controller) enter() {
	pane := c.Panes.ActivePane()
	entry, ok := pane.SelectedEntry()
	if !ok || !entry.IsDir {
		return
	}
	err := c.Panes.UpdateDir(c.Panes.Active(), entry.Name)
	c.setStatus("navigate", err)
}

func (c *Controller) mark(k Key) {
	pane := c.Panes.ActivePane()
	path, ok := pane.SelectedPath()
	if !ok {
		return
	}
	if k == KeyMarkMove {
		c.mode = AwaitingMove{target: path}
	} else {
		c.mode = AwaitingCopy{target: path}
	}
	c.Log.Debug().Str("mode", c.mode.Name()).Str("target", path).Msg("marked")
}

func (c *Controller) move(ctx context.Context, src string) {
	err := c.Engine.Move(ctx, src)
	c.record(journal.OpMove, src, c.Panes.ActivePath(), err)
}

func (c *Controller) copy(ctx context.Context, src string) {
	err := c.Engine.Copy(ctx, src)
	c.record(journal.OpCopy, src, c.Panes.ActivePath(), err)
}

func (c *Controller) delete(ctx context.Context) {
	path, err := c.Engine.Delete(ctx)
	if path == "" {
		path = c.Panes.ActivePath()
	}
	c.record(journal.OpDelete, path, "", err)
}

func (c *Controller) record(op, src, dest string, err error) {
	c.setStatus(op, err)
	if jerr := c.Journal.Append(journal.NewRecord(op, src, dest, err, c.Now())); jerr != nil {
		c.Log.Warn().Err(jerr).Msg("journal append failed")
	}
}

func (c *Controller) setStatus(op string, err error) {
	c.ok = err == nil
	if err != nil {
		c.Log.Debug().Err(err).Str("op", op).Msg("operation failed")
	}
}
