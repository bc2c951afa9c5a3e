package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants - single source of truth for chrome heights
const (
	HeaderHeight = 4 // bordered header: 2 border rows + 2 content rows
	FooterHeight = 3 // bordered footer: 2 border rows + 1 content row
	TableChrome  = 3 // content border top/bottom + column header row

	MinVisibleRows = 1
	DefaultWidth   = 110
	DefaultHeight  = 30
)

// Column widths for the repository table
const (
	ColWidthName     = 28
	ColWidthPRs      = 5
	ColWidthActivity = 14
	ColWidthInfo     = 18
	ColWidthHealth   = 24
)

// Color palette - centralized color definitions
var (
	ColorBorder    = lipgloss.Color("86")  // cyan
	ColorText      = lipgloss.Color("15")  // bright white
	ColorTextDim   = lipgloss.Color("241") // gray
	ColorAccent    = lipgloss.Color("226") // bright yellow
	ColorHighlight = lipgloss.Color("25")  // blue selection background
	ColorError     = lipgloss.Color("196") // red
	ColorOK        = lipgloss.Color("46")  // green
)

// Common styles - reusable style definitions
var (
	HeaderBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder)

	ContentBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorTextDim)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	ColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorBorder)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorHighlight).
				Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	KeyStyle = lipgloss.NewStyle().
			Foreground(ColorOK).
			Bold(true)
)

// NewAppSpinner returns the spinner used while the basic listing loads
func NewAppSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorAccent)
	return s
}
