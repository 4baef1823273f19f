package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	switch m.mode {
	case modeEdit:
		return strings.Join([]string{
			m.header(),
			m.editor.View(),
			styleMuted().Render("esc: apply text  ctrl+c: quit"),
		}, "\n")
	case modeHelp:
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2)
		return strings.Join([]string{
			m.header(),
			box.Render(m.helpView.View()),
			styleMuted().Render("esc: close  ↑/↓: scroll"),
		}, "\n")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.linesView(), " ", m.stylesList.View())
	return strings.Join([]string{m.header(), body, m.footer()}, "\n")
}

func (m appModel) header() string {
	cur, _ := m.st.CurrentLine()
	total := 0
	for _, ln := range m.st.Lines {
		if !ln.Ignore {
			total++
		}
	}
	styleName := "-"
	if s, ok := m.st.CurrentStyle(); ok {
		styleName = s.Name
	}
	parts := []string{
		fmt.Sprintf("line %d/%d", cur.Index, total),
		"style: " + styleName,
	}
	if m.st.TextScale > 0 && m.st.TextScale != 100 {
		parts = append(parts, fmt.Sprintf("scale %d%%", m.st.TextScale))
	}
	if m.st.MultiBubbleMode {
		parts = append(parts, fmt.Sprintf("multi-bubble (%d queued)", len(m.st.StoredSelections)))
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render("typeset")
	meta := styleMuted().Render(strings.Join(parts, "  ·  "))
	return title + "  " + meta
}

func (m appModel) footer() string {
	if m.status != "" {
		return styleMuted().Render(m.status) + "  " +
			styleMuted().Render("· ?: help  q: quit")
	}
	return styleMuted().Render("j/k: lines  tab: focus  enter: pick/insert  b: multi-bubble  e: edit text  ?: help  q: quit")
}

// linesView renders a window of the parsed script around the cursor.
func (m appModel) linesView() string {
	h := m.height - 4
	if h < 8 {
		h = 8
	}
	right := m.width / 3
	if right < 28 {
		right = 28
	}
	w := m.width - right - 3
	if w < 30 {
		w = 30
	}

	if len(m.st.Lines) == 0 {
		empty := styleMuted().Render("No text yet. Press e to paste the script.")
		return lipgloss.NewStyle().Width(w).Height(h).Render(empty)
	}

	start := m.st.CurrentLineIndex - h/2
	if start > len(m.st.Lines)-h {
		start = len(m.st.Lines) - h
	}
	if start < 0 {
		start = 0
	}
	end := start + h
	if end > len(m.st.Lines) {
		end = len(m.st.Lines)
	}

	cursorStyle := lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg).Bold(true)
	prefixStyle := lipgloss.NewStyle().Foreground(colorAccent)
	lastStyle := lipgloss.NewStyle().Foreground(colorWarn)

	rows := make([]string, 0, h)
	for i := start; i < end; i++ {
		ln := m.st.Lines[i]
		var row string
		switch {
		case ln.Ignore:
			row = "      " + styleMuted().Render(ansi.Truncate(ln.RawText, w-8, "…"))
		default:
			num := fmt.Sprintf("%3d ", ln.Index)
			tag := "  "
			if _, ok := m.st.StyleByID(ln.StyleID); ok {
				tag = prefixStyle.Render("◆ ")
			}
			text := ansi.Truncate(ln.Text, w-10, "…")
			mark := ""
			if ln.Last {
				mark = " " + lastStyle.Render("¶")
			}
			if i == m.st.CurrentLineIndex {
				row = cursorStyle.Render("▸ "+num+text) + mark
			} else {
				row = "  " + styleMuted().Render(num) + tag + text + mark
			}
		}
		rows = append(rows, ansi.Truncate(row, w, "…"))
	}
	for len(rows) < h {
		rows = append(rows, "")
	}
	return lipgloss.NewStyle().Width(w).Render(strings.Join(rows, "\n"))
}
