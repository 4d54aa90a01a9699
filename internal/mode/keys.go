package mode

// Key is a logical key identity produced by the input source.
type Key int

const (
	KeyNone Key = iota
	KeyQuit
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyConfirm
	KeyCancel
	KeyAddPane
	KeyRemovePane
	KeyToggleSort
	KeyMarkMove
	KeyMarkCopy
	KeyDelete
	KeyRefresh
)

var keyNames = map[Key]string{
	KeyNone:       "none",
	KeyQuit:       "quit",
	KeyUp:         "up",
	KeyDown:       "down",
	KeyLeft:       "left",
	KeyRight:      "right",
	KeyConfirm:    "confirm",
	KeyCancel:     "cancel",
	KeyAddPane:    "add_pane",
	KeyRemovePane: "remove_pane",
	KeyToggleSort: "toggle_sort",
	KeyMarkMove:   "mark_move",
	KeyMarkCopy:   "mark_copy",
	KeyDelete:     "delete",
	KeyRefresh:    "refresh",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// KeyByName maps a config action name (e.g. "mark_move") to its Key.
func KeyByName(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name && k != KeyNone {
			return k, true
		}
	}
	return KeyNone, false
}

// Press is one key-press event. Modified is set when a modifier (ctrl,
// alt) was held; KeyDelete is only honoured with a modifier.
type Press struct {
	Key      Key
	Modified bool
}
