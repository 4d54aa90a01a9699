package journal

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Operation names.
const (
	OpMove   = "move"
	OpCopy   = "copy"
	OpDelete = "delete"
)

// Record is one attempted filesystem operation.
type Record struct {
	Op     string    `json:"op"`
	Source string    `json:"source"`
	Dest   string    `json:"dest,omitempty"`
	OK     bool      `json:"ok"`
	Error  string    `json:"error,omitempty"`
	TS     time.Time `json:"ts"`
}

// NewRecord builds a record for op stamped with now; err decides OK.
func NewRecord(op, source, dest string, err error, now time.Time) Record {
	r := Record{Op: op, Source: source, Dest: dest, OK: err == nil, TS: now}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

func (r Record) Validate() error {
	if !isValidOp(r.Op) {
		return fmt.Errorf("invalid op %q", r.Op)
	}
	if strings.TrimSpace(r.Source) == "" {
		return fmt.Errorf("source is required")
	}
	if !filepath.IsAbs(r.Source) {
		return fmt.Errorf("source %q is not absolute", r.Source)
	}
	if r.TS.IsZero() {
		return fmt.Errorf("ts is required")
	}
	if r.OK && r.Error != "" {
		return fmt.Errorf("successful record carries an error")
	}
	return nil
}

// Summary renders the record as a one-line status message.
func (r Record) Summary() string {
	var b strings.Builder
	b.WriteString(r.Op)
	b.WriteString(" ")
	b.WriteString(filepath.Base(r.Source))
	if r.Dest != "" {
		b.WriteString(" -> ")
		b.WriteString(r.Dest)
	}
	if r.OK {
		b.WriteString(": ok")
	} else {
		b.WriteString(": ")
		b.WriteString(r.Error)
	}
	return b.String()
}

func isValidOp(op string) bool {
	switch op {
	case OpMove, OpCopy, OpDelete:
		return true
	default:
		return false
	}
}
