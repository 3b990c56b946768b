package shell

import "github.com/charmbracelet/lipgloss"

var (
	successColor = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02D98E"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#FF5F56", Dark: "#FF6B6B"}
	headerColor  = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7C79FF"}
)

// styles colours status lines. The zero value leaves text untouched.
type styles struct {
	enabled     bool
	okStyle     lipgloss.Style
	errStyle    lipgloss.Style
	headerStyle lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		enabled:     true,
		okStyle:     r.NewStyle().Foreground(successColor),
		errStyle:    r.NewStyle().Foreground(errorColor).Bold(true),
		headerStyle: r.NewStyle().Foreground(headerColor).Bold(true),
	}
}

func (st styles) ok(text string) string     { return st.render(st.okStyle, text) }
func (st styles) err(text string) string    { return st.render(st.errStyle, text) }
func (st styles) header(text string) string { return st.render(st.headerStyle, text) }

func (st styles) render(style lipgloss.Style, text string) string {
	if !st.enabled {
		return text
	}
	return style.Render(text)
}
