// Package journal records attempted filesystem operations in memory and,
// optionally, as JSON lines appended to a file.
package journal

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

const maxLineBytes = 64 * 1024

// Journal is a Store plus an optional JSONL file sink.
// All methods are safe on a nil *Journal.
type Journal struct {
	store *Store
	w     io.WriteCloser
}

// Open creates a journal keeping size records in memory. An empty path
// disables the file sink; otherwise the file is created or appended to.
func Open(path string, size int) (*Journal, error) {
	j := &Journal{store: NewStore(size)}
	if path == "" {
		return j, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	j.w = f
	return j, nil
}

// Append stores r and writes it to the file sink, if any.
func (j *Journal) Append(r Record) error {
	if j == nil {
		return nil
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("journal record: %w", err)
	}
	j.store.Append(r)
	if j.w == nil {
		return nil
	}
	line, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode journal record: %w", err)
	}
	line = append(line, '\n')
	if _, err := j.w.Write(line); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

// Last returns the newest record of this session.
func (j *Journal) Last() (Record, bool) {
	if j == nil {
		return Record{}, false
	}
	return j.store.Last()
}

// Recent returns this session's records, oldest first.
func (j *Journal) Recent() []Record {
	if j == nil {
		return nil
	}
	return j.store.Snapshot()
}

func (j *Journal) Close() error {
	if j == nil || j.w == nil {
		return nil
	}
	err := j.w.Close()
	j.w = nil
	return err
}

// ReadFile reads the last n records (all when n <= 0) from a JSONL journal.
// Malformed or invalid lines are skipped. A missing file yields no records.
func ReadFile(path string, n int) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	var out []Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var r Record
		if err := json.Unmarshal(line, &r); err != nil {
			continue
		}
		if err := r.Validate(); err != nil {
			continue
		}
		out = append(out, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	if n > 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return out, nil
}
