package output

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles used in text mode.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles builds the styles for a lipgloss renderer. The renderer's color
// profile decides whether colors are emitted.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#636EFA")),
		Header2: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00CC96")),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("#888888")),
		Label:   r.NewStyle().Foreground(lipgloss.Color("#AB63FA")),
		Value:   r.NewStyle(),
		Success: r.NewStyle().Foreground(lipgloss.Color("#00CC96")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#FFA15A")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#EF553B")).Bold(true),
	}
}
