package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"typeset-cli/internal/model"
)

// styleItem adapts one registry style to the bubbles list.
type styleItem struct {
	style   model.Style
	folder  string
	current bool
	def     bool
}

func (i styleItem) Title() string {
	marks := ""
	if i.current {
		marks += " ●"
	}
	if i.def {
		marks += " (default)"
	}
	return i.style.Name + marks
}

func (i styleItem) Description() string {
	parts := []string{}
	if i.folder != "" {
		parts = append(parts, i.folder)
	}
	if len(i.style.Prefixes) > 0 {
		p := strings.Join(i.style.Prefixes, " ")
		if i.style.PrefixesDisabled {
			p += " (off)"
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return "unsorted"
	}
	return strings.Join(parts, "  ·  ")
}

func (i styleItem) FilterValue() string {
	return i.style.Name + " " + i.folder + " " + strings.Join(i.style.Prefixes, " ")
}

func newStyleDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(colorSelectedFg).
		BorderForeground(colorAccent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "246"}).
		BorderForeground(colorAccent)
	return d
}
