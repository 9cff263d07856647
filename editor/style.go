package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Text      lipgloss.Style
	Heading   lipgloss.Style
	Code      lipgloss.Style
	Quote     lipgloss.Style
	Marker    lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	TableBorder  lipgloss.Style
	CellSelected lipgloss.Style
	GripSelected lipgloss.Style

	Media         lipgloss.Style
	MediaSelected lipgloss.Style
	Placeholder   lipgloss.Style
	Handle        lipgloss.Style
	Toolbar       lipgloss.Style
	ToolbarActive lipgloss.Style

	PopupItem     lipgloss.Style
	PopupSelected lipgloss.Style
	PopupSection  lipgloss.Style
	PopupDetail   lipgloss.Style
}

func DefaultStyle() Style {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	popup := lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	return Style{
		Text:      lipgloss.NewStyle(),
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		Code:      lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
		Quote:     dim,
		Marker:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Selection: lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:    lipgloss.NewStyle().Reverse(true),

		TableBorder:  dim,
		CellSelected: lipgloss.NewStyle().Background(lipgloss.Color("24")),
		GripSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),

		Media:         dim,
		MediaSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Placeholder:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true),
		Handle:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Toolbar:       dim,
		ToolbarActive: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),

		PopupItem:     popup,
		PopupSelected: popup.Background(lipgloss.Color("25")).Foreground(lipgloss.Color("255")),
		PopupSection:  popup.Foreground(lipgloss.Color("244")).Bold(true),
		PopupDetail:   popup.Foreground(lipgloss.Color("255")),
	}
}
