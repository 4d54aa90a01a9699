package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/timvw/panefm/internal/mode"
	"github.com/timvw/panefm/internal/model"
)

// chrome is the number of rows not available to entry lists: header,
// status, help, two border rows and the pane path line.
const chrome = 6

const ellipsis = "…"

// render draws a snapshot. It only reads snap.
func render(snap mode.Snapshot, width, height int, st styles) string {
	var b strings.Builder

	b.WriteString(st.title.Render("panefm"))
	b.WriteString("  ")
	b.WriteString(modeLabel(snap.Mode, width-8, st))
	b.WriteString("\n")

	n := len(snap.Panes)
	if n == 0 {
		return b.String()
	}
	outer := max(width/n, 12)
	inner := outer - 4 // border + padding
	rows := max(height-chrome, 1)

	cols := make([]string, 0, n)
	for i, p := range snap.Panes {
		active := i == snap.Active
		body := renderPane(p, active, inner, rows, st)
		style := st.pane.
			Width(outer - 2).
			BorderForeground(st.paneBorder(active, snap.OK))
		cols = append(cols, style.Render(body))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")
	b.WriteString(statusLine(snap, width, st))
	return b.String()
}

func modeLabel(m mode.Mode, width int, st styles) string {
	switch m := m.(type) {
	case mode.AwaitingMove:
		return st.pending.Render("MOVE " + truncateLeft(m.Target(), max(width-5, 1)))
	case mode.AwaitingCopy:
		return st.pending.Render("COPY " + truncateLeft(m.Target(), max(width-5, 1)))
	default:
		return st.status.Render("BROWSE")
	}
}

func renderPane(p model.Pane, active bool, width, rows int, st styles) string {
	lines := make([]string, 0, rows+1)
	path := truncateLeft(p.Path, width)
	if active {
		lines = append(lines, st.title.Render(path))
	} else {
		lines = append(lines, st.status.Render(path))
	}

	start := 0
	if p.Selected >= rows {
		start = p.Selected - rows + 1
	}
	end := min(start+rows, len(p.Entries))
	for i := start; i < end; i++ {
		e := p.Entries[i]
		name := e.Name
		if e.IsDir && e.Name != model.ParentName {
			name += "/"
		}
		name = runewidth.FillRight(runewidth.Truncate(name, width, ellipsis), width)
		switch {
		case i == p.Selected && active:
			lines = append(lines, st.selected.Render(name))
		case i == p.Selected:
			lines = append(lines, st.cursor.Render(name))
		case e.IsDir:
			lines = append(lines, st.dir.Render(name))
		default:
			lines = append(lines, st.file.Render(name))
		}
	}
	for len(lines) < rows+1 {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func statusLine(snap mode.Snapshot, width int, st styles) string {
	parts := []string{fmt.Sprintf("pane %d/%d", snap.Active+1, len(snap.Panes))}
	if snap.Reversed {
		parts = append(parts, "reversed")
	}
	line := st.status.Render(strings.Join(parts, "  "))
	if !snap.HasLast {
		return line
	}
	used := runewidth.StringWidth(strings.Join(parts, "  ")) + 2
	summary := runewidth.Truncate(snap.Last.Summary(), max(width-used, 1), ellipsis)
	if snap.Last.OK {
		return line + "  " + st.ok.Render(summary)
	}
	return line + "  " + st.err.Render(summary)
}

// truncateLeft keeps the tail of s that fits in width cells, marking the
// cut with an ellipsis.
func truncateLeft(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	budget := width - runewidth.StringWidth(ellipsis)
	rs := []rune(s)
	i := len(rs)
	for i > 0 {
		w := runewidth.RuneWidth(rs[i-1])
		if w > budget {
			break
		}
		budget -= w
		i--
	}
	return ellipsis + string(rs[i:])
}
