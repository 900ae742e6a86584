package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"stockdash/internal/domain"
	"stockdash/internal/ui/input/types"
)

// HelpRenderer builds the text shown in the pager for help and profiles
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	note    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		key:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		note: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}

var helpSections = []string{"Data", "Navigation", "Other"}

// popupKeys are handled by the symbol field and the menus, not the key map
var popupKeys = [][2]string{
	{"enter", "accept"},
	{"esc", "cancel"},
	{"↑/↓, k/j", "move the menu selection"},
	{"←/→", "move the cursor"},
	{"home/end", "jump to the start or end"},
	{"backspace", "delete before the cursor"},
	{"delete", "delete under the cursor"},
}

// Help renders the key reference for keys
func (r *HelpRenderer) Help(keys types.KeyMap) string {
	var b strings.Builder
	b.WriteString(r.title.Render("stockdash help"))
	b.WriteString("\n")

	for i, group := range keys.FullHelp() {
		name := "Keys"
		if i < len(helpSections) {
			name = helpSections[i]
		}
		b.WriteString(r.section.Render(name))
		b.WriteString("\n")
		for _, binding := range group {
			r.line(&b, binding.Help().Key, binding.Help().Desc)
		}
	}

	b.WriteString(r.section.Render("Popups"))
	b.WriteString("\n")
	for _, kv := range popupKeys {
		r.line(&b, kv[0], kv[1])
	}
	b.WriteString("\n")
	b.WriteString(r.note.Render("  Click the symbol, the time frame or the indicator in the footer to change them."))
	b.WriteString("\n")
	return b.String()
}

func (r *HelpRenderer) line(b *strings.Builder, k, desc string) {
	if k == "" {
		return
	}
	fmt.Fprintf(b, "  %s  %s\n", r.key.Render(fmt.Sprintf("%-10s", k)), r.desc.Render(desc))
}

// Profile renders the company profile of stock, wrapped at width
func (r *HelpRenderer) Profile(stock *domain.Stock, width int) string {
	if stock == nil {
		return r.note.Render("No stock loaded yet.") + "\n"
	}
	if width < 20 {
		width = 80
	}

	var b strings.Builder
	name := stock.CompanyName()
	if name == "" {
		name = stock.Symbol
	}
	b.WriteString(r.title.Render(fmt.Sprintf("%s (%s)", name, stock.Symbol)))
	b.WriteString("\n")

	p := stock.Profile
	if p == nil {
		b.WriteString(r.note.Render("No profile available for this symbol."))
		b.WriteString("\n")
		return b.String()
	}

	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "  %s  %s\n", r.key.Render(fmt.Sprintf("%-10s", label)), r.desc.Render(value))
		}
	}
	field("Exchange", p.Exchange)
	field("Homepage", p.Homepage)
	if p.Employees > 0 {
		field("Employees", humanize.Comma(int64(p.Employees)))
	}
	if p.MarketCap > 0 {
		field("Market cap", "$"+humanize.SIWithDigits(p.MarketCap, 2, ""))
	}
	if last, ok := stock.LastBar(); ok {
		field("Last close", fmt.Sprintf("%.2f on %s", last.Close, last.Time.Format("2006-01-02")))
	}

	if p.Description != "" {
		b.WriteString(r.section.Render("About"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width - 4).PaddingLeft(2).Render(p.Description))
		b.WriteString("\n")
	}
	return b.String()
}
