// Package browser is the terminal front end: it reads key presses, feeds
// them to a mode.Controller and draws the resulting state.
package browser

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timvw/panefm/internal/mode"
)

// Browser runs the interactive file browser.
type Browser struct {
	Controller *mode.Controller
	Keys       KeyMap
	Theme      Theme
}

// tuiModel implements tea.Model. Every key press is handled synchronously
// in Update; nothing runs in the background.
type tuiModel struct {
	ctx    context.Context
	ctrl   *mode.Controller
	keys   KeyMap
	help   help.Model
	styles styles

	width  int
	height int
}

func newModel(ctx context.Context, ctrl *mode.Controller, keys KeyMap, theme Theme) *tuiModel {
	h := help.New()
	h.Styles.ShortKey = h.Styles.ShortKey.Foreground(theme.Text)
	h.Styles.ShortDesc = h.Styles.ShortDesc.Foreground(theme.TextMuted)
	return &tuiModel{
		ctx:    ctx,
		ctrl:   ctrl,
		keys:   keys,
		help:   h,
		styles: newStyles(theme),
	}
}

// Run blocks until the user quits or ctx is cancelled.
func (b *Browser) Run(ctx context.Context) error {
	keys := b.Keys
	if keys.bindings == nil {
		keys = DefaultKeyMap()
	}
	m := newModel(ctx, b.Controller, keys, b.Theme)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m *tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	press, ok := m.keys.Press(msg, m.ctrl.Mode())
	if !ok {
		return m, nil
	}
	if m.ctrl.Handle(m.ctx, press) {
		return m, tea.Quit
	}
	return m, nil
}

func (m *tuiModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	snap := m.ctrl.Snapshot()
	view := render(snap, m.width, m.height, m.styles)
	if _, browsing := snap.Mode.(mode.Browsing); browsing {
		return view + "\n" + m.help.View(m.keys)
	}
	return view + "\n" + m.help.ShortHelpView(m.keys.awaitingHelp())
}
