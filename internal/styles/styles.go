// Package styles provides shared lipgloss styles for CLI output and forms.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorGray   = lipgloss.Color("#565f89")
	ColorWhite  = lipgloss.Color("#c0caf5")
)

// TitleStyle styles list headers.
var TitleStyle = lipgloss.NewStyle().
	Foreground(ColorYellow).
	Bold(true)

// SubtleStyle styles secondary text such as the server name.
var SubtleStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// FormTheme returns the huh theme used by interactive prompts.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(ColorYellow).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorGray)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorBlue)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorBlue)
	t.Focused.Option = t.Focused.Option.Foreground(ColorWhite)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(ColorGreen)

	t.Blurred = t.Focused
	return t
}
