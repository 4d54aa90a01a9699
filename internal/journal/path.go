package journal

import (
	"os"
	"path/filepath"
)

// DefaultPath returns $XDG_STATE_HOME/panefm/journal.jsonl, falling back to
// ~/.local/state and finally the temp dir.
func DefaultPath() string {
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		return filepath.Join(stateDir, "panefm", "journal.jsonl")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "panefm", "journal.jsonl")
	}
	return filepath.Join(os.TempDir(), "panefm", "journal.jsonl")
}
