// Package output renders walkthrough sessions to the terminal with lipgloss.
//
// [Renderer] turns a [scenario.ViewModel] and related values into styled
// strings; it holds no session state. [Printer] writes rendered output and
// plain status lines to an [io.Writer], defaulting to stdout.
//
// Key types:
//   - [Printer] - writes rendered sections and messages
//   - [Renderer] - pure string rendering of views, threats and lists
//   - [Theme] and [Styles] - color palette and derived lipgloss styles
package output

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette used by [Styles].
type Theme struct {
	Text   lipgloss.Color
	Dim    lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color

	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
	Info    lipgloss.Color
	Purple  lipgloss.Color
}

// DefaultTheme is a dark palette in Tokyo Night tones.
var DefaultTheme = Theme{
	Text:   lipgloss.Color("#c0caf5"),
	Dim:    lipgloss.Color("#565f89"),
	Muted:  lipgloss.Color("#414868"),
	Border: lipgloss.Color("#414868"),

	Accent:  lipgloss.Color("#7aa2f7"),
	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Danger:  lipgloss.Color("#f7768e"),
	Info:    lipgloss.Color("#7dcfff"),
	Purple:  lipgloss.Color("#bb9af7"),
}

// Styles are the lipgloss styles derived from a [Theme].
type Styles struct {
	Base  lipgloss.Style
	Bold  lipgloss.Style
	Dim   lipgloss.Style
	Muted lipgloss.Style

	Title   lipgloss.Style
	Header  lipgloss.Style
	Section lipgloss.Style

	// Stage status
	Complete lipgloss.Style
	Active   lipgloss.Style
	Pending  lipgloss.Style

	// Threat severity
	High   lipgloss.Style
	Medium lipgloss.Style
	Low    lipgloss.Style

	User      lipgloss.Style
	Assistant lipgloss.Style

	Panel       lipgloss.Style
	DangerPanel lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	KeyHint lipgloss.Style
}

// NewStyles derives [Styles] from t.
func NewStyles(t Theme) Styles {
	return Styles{
		Base:  lipgloss.NewStyle().Foreground(t.Text),
		Bold:  lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Dim:   lipgloss.NewStyle().Foreground(t.Dim),
		Muted: lipgloss.NewStyle().Foreground(t.Muted),

		Title: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		Header: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		Section: lipgloss.NewStyle().
			Foreground(t.Dim).
			Bold(true),

		Complete: lipgloss.NewStyle().Foreground(t.Success),
		Active:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Pending:  lipgloss.NewStyle().Foreground(t.Dim),

		High:   lipgloss.NewStyle().Foreground(t.Danger).Bold(true),
		Medium: lipgloss.NewStyle().Foreground(t.Warning),
		Low:    lipgloss.NewStyle().Foreground(t.Info),

		User:      lipgloss.NewStyle().Foreground(t.Purple).Bold(true),
		Assistant: lipgloss.NewStyle().Foreground(t.Success).Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		DangerPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Danger).
			Padding(0, 1),

		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Danger).Bold(true),
		KeyHint: lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// DefaultStyles are the styles of [DefaultTheme].
var DefaultStyles = NewStyles(DefaultTheme)
