package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Header        lipgloss.Style
	Symbol        lipgloss.Style
	Name          lipgloss.Style
	Dim           lipgloss.Style
	Label         lipgloss.Style
	Value         lipgloss.Style
	Up            lipgloss.Style
	Down          lipgloss.Style
	ChartBox      lipgloss.Style
	ChartTitle    lipgloss.Style
	Price         lipgloss.Style
	Axis          lipgloss.Style
	Indicators    []lipgloss.Style
	Popup         lipgloss.Style
	MenuRow       lipgloss.Style
	MenuSelected  lipgloss.Style
	Cursor        lipgloss.Style
	Help          lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("238")),
		Symbol: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("238")),
		Name:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")),
		Dim:   lipgloss.NewStyle().Faint(true),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value: lipgloss.NewStyle().Bold(true),
		Up:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Background(lipgloss.Color("238")),  // green
		Down:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Background(lipgloss.Color("238")), // red
		ChartBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")),
		ChartTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Price:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		Axis:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Indicators: []lipgloss.Style{
			lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
			lipgloss.NewStyle().Foreground(lipgloss.Color("170")), // magenta
			lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		},
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")),
		MenuRow:       lipgloss.NewStyle().Padding(0, 1),
		MenuSelected:  lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).Bold(true),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Help:          lipgloss.NewStyle().Faint(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
	}
}

// IndicatorStyle returns the style of the i-th indicator line
func (s *Styles) IndicatorStyle(i int) lipgloss.Style {
	return s.Indicators[i%len(s.Indicators)]
}
