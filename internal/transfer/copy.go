package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/timvw/panefm/internal/model"
)

const dirPerm = 0o755

// checkNotSelf rejects copies onto the source itself and directory copies
// into their own subtree. Both paths are compared with symlinks resolved.
func checkNotSelf(src, dest string, isDir bool) error {
	src, dest = realPath(src), realPath(dest)
	if src == dest {
		return model.NewOpError("copy", src, model.ErrTransfer, errors.New("source and destination are the same"))
	}
	if !isDir {
		return nil
	}
	rel, err := filepath.Rel(src, dest)
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return model.NewOpError("copy", src, model.ErrTransfer, fmt.Errorf("destination %s is inside the source tree", dest))
	}
	return nil
}

// realPath resolves symlinks in p. A p that does not exist yet is resolved
// through its parent directory.
func realPath(p string) string {
	p = filepath.Clean(p)
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	if parent, err := filepath.EvalSymlinks(filepath.Dir(p)); err == nil {
		return filepath.Join(parent, filepath.Base(p))
	}
	return p
}

// copyTree copies the tree rooted at root to destRoot using an explicit
// stack of directories. The first failure aborts the copy; whatever was
// written stays on disk.
func (e *Engine) copyTree(ctx context.Context, root, destRoot string) error {
	// Children are built with filepath.Join, which cleans; root must match.
	root = filepath.Clean(root)
	stack := []string{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return model.NewOpError("copy", root, model.ErrTransfer, err)
		}
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		rel, err := filepath.Rel(root, dir)
		if err != nil {
			return model.NewOpError("copy", dir, model.ErrTransfer, err)
		}
		target := filepath.Join(destRoot, rel)
		if err := ensureDir(target); err != nil {
			return model.NewOpError("copy", dir, model.ErrTransfer, err)
		}

		children, err := os.ReadDir(dir)
		if err != nil {
			return model.NewOpError("copy", dir, model.ErrTransfer, err)
		}
		for _, child := range children {
			path := filepath.Join(dir, child.Name())
			if child.IsDir() {
				stack = append(stack, path)
				continue
			}
			if err := e.copyFile(ctx, path, filepath.Join(target, child.Name())); err != nil {
				return err
			}
		}
		e.Log.Debug().Str("src", dir).Str("dest", target).Int("children", len(children)).Msg("copied directory")
	}
	return nil
}

// ensureDir creates dir unless a directory already exists there.
func ensureDir(dir string) error {
	err := os.Mkdir(dir, dirPerm)
	if err == nil || !errors.Is(err, fs.ErrExist) {
		return err
	}
	info, statErr := os.Stat(dir)
	if statErr != nil {
		return statErr
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", dir)
	}
	return nil
}

// copyFile copies the bytes of src to dest, keeping src's permission bits.
// An existing dest is truncated.
func (e *Engine) copyFile(ctx context.Context, src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return model.NewOpError("copy", src, model.ErrTransfer, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return model.NewOpError("copy", src, model.ErrTransfer, err)
	}
	if !info.Mode().IsRegular() {
		return model.NewOpError("copy", src, model.ErrTransfer, fmt.Errorf("not a regular file (%s)", info.Mode().Type()))
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return model.NewOpError("copy", dest, model.ErrTransfer, err)
	}
	n, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return model.NewOpError("copy", dest, model.ErrTransfer, err)
	}
	e.Metrics.RecordCopy(ctx, n)
	return nil
}
