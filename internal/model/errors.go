package model

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	// ErrPathResolution means joining or canonicalizing a path failed.
	ErrPathResolution = errors.New("path resolution failed")
	// ErrDirectoryRead means a directory could not be listed.
	ErrDirectoryRead = errors.New("directory read failed")
	// ErrTransfer means a rename, copy, create or delete failed.
	ErrTransfer = errors.New("transfer failed")
	// ErrInvalidPath means a source path has no usable final component.
	ErrInvalidPath = errors.New("invalid path")
)

// OpError records a failed filesystem operation.
type OpError struct {
	Op   string // "list", "resolve", "move", "copy", "delete", ...
	Path string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewOpError builds an OpError.
func NewOpError(op, path string, kind, err error) *OpError {
	return &OpError{Op: op, Path: path, Kind: kind, Err: err}
}
