// Package transfer moves, copies and deletes filesystem entries relative to
// the active pane of a panes.Set.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/timvw/panefm/internal/model"
	ppotel "github.com/timvw/panefm/internal/otel"
	"github.com/timvw/panefm/internal/panes"
)

var tracer = otel.Tracer("panefm")

// Policy decides what happens when the destination name already exists.
type Policy int

const (
	// Replace leaves the decision to rename/create: existing files are
	// replaced, renaming onto a non-empty directory fails.
	Replace Policy = iota
	// Refuse fails the transfer before anything is written.
	Refuse
)

// ParsePolicy maps "replace" (or "") and "refuse" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "replace":
		return Replace, nil
	case "refuse":
		return Refuse, nil
	default:
		return Replace, fmt.Errorf("unknown overwrite policy %q (supported: replace, refuse)", s)
	}
}

func (p Policy) String() string {
	if p == Refuse {
		return "refuse"
	}
	return "replace"
}

// Engine performs transfers into the active pane's directory.
type Engine struct {
	Panes     *panes.Set
	Overwrite Policy
	Metrics   *ppotel.Metrics // nil-safe
	Log       zerolog.Logger
}

// Move renames src into the active pane's directory and refreshes all
// panes on success.
func (e *Engine) Move(ctx context.Context, src string) (err error) {
	ctx, span := tracer.Start(ctx, "move", trace.WithAttributes(attribute.String("fs.source", src)))
	defer func() { e.finish(ctx, span, "move", src, err) }()

	dest, err := e.destination("move", src)
	if err != nil {
		return err
	}
	if err := os.Rename(src, dest); err != nil {
		return model.NewOpError("move", src, model.ErrTransfer, err)
	}
	e.Panes.Refresh()
	return nil
}

// Copy copies src (a file or a whole tree) into the active pane's
// directory. Nothing already written is rolled back on failure. All panes
// are refreshed whatever the outcome.
func (e *Engine) Copy(ctx context.Context, src string) (err error) {
	ctx, span := tracer.Start(ctx, "copy", trace.WithAttributes(attribute.String("fs.source", src)))
	defer func() { e.finish(ctx, span, "copy", src, err) }()
	defer e.Panes.Refresh()

	dest, err := e.destination("copy", src)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return model.NewOpError("copy", src, model.ErrTransfer, err)
	}
	if err := checkNotSelf(src, dest, info.IsDir()); err != nil {
		return err
	}
	if info.IsDir() {
		return e.copyTree(ctx, src, dest)
	}
	return e.copyFile(ctx, src, dest)
}

// Delete removes the active pane's selected entry, recursively for
// directories, and returns its path. Panes are not refreshed.
func (e *Engine) Delete(ctx context.Context) (path string, err error) {
	pane := e.Panes.ActivePane()
	path, ok := pane.SelectedPath()
	if !ok {
		return "", model.NewOpError("delete", pane.Path, model.ErrInvalidPath, errors.New("nothing selected"))
	}

	ctx, span := tracer.Start(ctx, "delete", trace.WithAttributes(attribute.String("fs.source", path)))
	defer func() { e.finish(ctx, span, "delete", path, err) }()

	if _, err := baseName("delete", path); err != nil {
		return path, err
	}
	info, err := os.Lstat(path)
	if err != nil {
		return path, model.NewOpError("delete", path, model.ErrTransfer, err)
	}
	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return path, model.NewOpError("delete", path, model.ErrTransfer, err)
	}
	return path, nil
}

// Refresh re-lists every pane; see panes.Set.Refresh.
func (e *Engine) Refresh() {
	e.Panes.Refresh()
}

// destination validates src and returns activePath/baseName(src),
// applying the overwrite policy.
func (e *Engine) destination(op, src string) (string, error) {
	name, err := baseName(op, src)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(e.Panes.ActivePath(), name)
	if e.Overwrite == Refuse {
		if _, err := os.Lstat(dest); err == nil {
			return "", model.NewOpError(op, dest, model.ErrTransfer, fs.ErrExist)
		}
	}
	return dest, nil
}

// baseName returns the final component of src, rejecting paths whose last
// component is empty, "." , ".." or the root.
func baseName(op, src string) (string, error) {
	name := filepath.Base(src)
	switch name {
	case ".", "..", string(filepath.Separator):
		return "", model.NewOpError(op, src, model.ErrInvalidPath, nil)
	}
	return name, nil
}

func (e *Engine) finish(ctx context.Context, span trace.Span, op, src string, err error) {
	e.Metrics.RecordOperation(ctx, op, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.Log.Warn().Err(err).Str("op", op).Str("src", src).Str("dest", e.Panes.ActivePath()).Msg("transfer failed")
	} else {
		e.Log.Info().Str("op", op).Str("src", src).Str("dest", e.Panes.ActivePath()).Msg("transfer done")
	}
	span.End()
}
