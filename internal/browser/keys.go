package browser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timvw/panefm/internal/mode"
)

// KeyMap binds terminal keys to controller keys.
type KeyMap struct {
	bindings map[mode.Key]key.Binding
}

// order is the lookup order; quit wins over cancel unless a target is
// pending (see Press).
var order = []mode.Key{
	mode.KeyUp, mode.KeyDown, mode.KeyLeft, mode.KeyRight, mode.KeyConfirm,
	mode.KeyMarkMove, mode.KeyMarkCopy, mode.KeyDelete,
	mode.KeyAddPane, mode.KeyRemovePane, mode.KeyToggleSort, mode.KeyRefresh,
	mode.KeyQuit, mode.KeyCancel,
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{bindings: map[mode.Key]key.Binding{
		mode.KeyUp:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		mode.KeyDown:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		mode.KeyLeft:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev pane")),
		mode.KeyRight:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next pane")),
		mode.KeyConfirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		mode.KeyMarkMove:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		mode.KeyMarkCopy:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		mode.KeyDelete:     key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		mode.KeyAddPane:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add pane")),
		mode.KeyRemovePane: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close pane")),
		mode.KeyToggleSort: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "reverse")),
		mode.KeyRefresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		mode.KeyCancel:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "cancel")),
		mode.KeyQuit:       key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	}}
}

// WithOverrides replaces the keys of the named actions. Action names are
// the controller key names, e.g. "mark_move".
func (km KeyMap) WithOverrides(overrides map[string][]string) (KeyMap, error) {
	out := KeyMap{bindings: make(map[mode.Key]key.Binding, len(km.bindings))}
	for k, b := range km.bindings {
		out.bindings[k] = b
	}

	// Sorted for a deterministic first error.
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		keys := overrides[name]
		k, ok := mode.KeyByName(name)
		if !ok {
			return KeyMap{}, fmt.Errorf("unknown key action %q", name)
		}
		if len(keys) == 0 {
			return KeyMap{}, fmt.Errorf("key action %q: no keys given", name)
		}
		if k == mode.KeyDelete {
			for _, s := range keys {
				if !hasModifier(s) {
					return KeyMap{}, fmt.Errorf("key action %q: %q needs a ctrl+ or alt+ modifier", name, s)
				}
			}
		}
		desc := out.bindings[k].Help().Desc
		out.bindings[k] = key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), desc))
	}
	return out, nil
}

// Press translates msg for the current mode. Cancel is looked up before
// quit while a target is pending, so a key bound to both cancels.
func (km KeyMap) Press(msg tea.KeyMsg, current mode.Mode) (mode.Press, bool) {
	if _, browsing := current.(mode.Browsing); !browsing {
		if key.Matches(msg, km.bindings[mode.KeyCancel]) {
			return mode.Press{Key: mode.KeyCancel}, true
		}
	}
	for _, k := range order {
		if key.Matches(msg, km.bindings[k]) {
			return mode.Press{Key: k, Modified: modified(msg)}, true
		}
	}
	return mode.Press{}, false
}

func modified(msg tea.KeyMsg) bool {
	return msg.Alt || hasModifier(msg.String())
}

func hasModifier(k string) bool {
	return strings.HasPrefix(k, "ctrl+") || strings.HasPrefix(k, "alt+")
}

// ShortHelp implements help.KeyMap.
func (km KeyMap) ShortHelp() []key.Binding {
	return km.pick(mode.KeyQuit, mode.KeyConfirm, mode.KeyMarkMove, mode.KeyMarkCopy,
		mode.KeyDelete, mode.KeyAddPane, mode.KeyRemovePane, mode.KeyToggleSort)
}

// FullHelp implements help.KeyMap.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		km.pick(mode.KeyUp, mode.KeyDown, mode.KeyLeft, mode.KeyRight),
		km.pick(mode.KeyConfirm, mode.KeyMarkMove, mode.KeyMarkCopy, mode.KeyDelete),
		km.pick(mode.KeyAddPane, mode.KeyRemovePane, mode.KeyToggleSort, mode.KeyRefresh),
		km.pick(mode.KeyCancel, mode.KeyQuit),
	}
}

// awaitingHelp is shown while a move or copy target is pending.
func (km KeyMap) awaitingHelp() []key.Binding {
	return km.pick(mode.KeyLeft, mode.KeyRight, mode.KeyConfirm, mode.KeyCancel)
}

func (km KeyMap) pick(keys ...mode.Key) []key.Binding {
	out := make([]key.Binding, 0, len(keys))
	for _, k := range keys {
		out = append(out, km.bindings[k])
	}
	return out
}
