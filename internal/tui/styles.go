package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme names persisted in the reading state.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Font sizes persisted in the reading state. A terminal cannot change its
// font, so the size maps to the width and padding of the verse block.
const (
	FontCompact = "compact"
	FontNormal  = "normal"
	FontLarge   = "large"
)

var fontSizes = []string{FontCompact, FontNormal, FontLarge}

// styles is the set of lipgloss styles for one theme.
type styles struct {
	title    lipgloss.Style
	verse    lipgloss.Style
	number   lipgloss.Style
	muted    lipgloss.Style
	status   lipgloss.Style
	err      lipgloss.Style
	selected lipgloss.Style
	item     lipgloss.Style
	dialog   lipgloss.Style
	count    lipgloss.Style
}

func newStyles(theme string) styles {
	fg, bg, accent, dim, barBg := lipgloss.Color("252"), lipgloss.Color("235"), lipgloss.Color("51"), lipgloss.Color("244"), lipgloss.Color("234")
	if theme == ThemeLight {
		fg, bg, accent, dim, barBg = lipgloss.Color("235"), lipgloss.Color("255"), lipgloss.Color("25"), lipgloss.Color("243"), lipgloss.Color("252")
	}

	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginBottom(1),
		verse: lipgloss.NewStyle().
			Foreground(fg).
			Background(bg),
		number: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		muted: lipgloss.NewStyle().
			Foreground(dim),
		status: lipgloss.NewStyle().
			Foreground(fg).
			Background(barBg).
			Padding(0, 1),
		err: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("27")),
		item: lipgloss.NewStyle().
			Foreground(fg),
		dialog: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		count: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(1, 4).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accent),
	}
}

// verseBlock renders text wrapped for the given font size within width.
func (s styles) verseBlock(text, fontSize string, width int) string {
	style := s.verse
	switch fontSize {
	case FontCompact:
		style = style.Padding(0, 1)
	case FontLarge:
		style = style.Padding(2, 6).Bold(true)
	default:
		style = style.Padding(1, 3)
	}
	if width > 0 {
		style = style.Width(min(width, maxVerseWidth(fontSize)))
	}
	return style.Render(text)
}

func maxVerseWidth(fontSize string) int {
	switch fontSize {
	case FontCompact:
		return 100
	case FontLarge:
		return 60
	default:
		return 80
	}
}

// nextFontSize steps through fontSizes by delta, stopping at either end.
func nextFontSize(current string, delta int) string {
	idx := 1
	for i, f := range fontSizes {
		if f == current {
			idx = i
		}
	}
	idx = max(0, min(len(fontSizes)-1, idx+delta))
	return fontSizes[idx]
}
