package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sqmw/repofolio/internal/derive"
	"github.com/sqmw/repofolio/internal/github"
	"github.com/sqmw/repofolio/internal/i18n"
	"github.com/sqmw/repofolio/internal/project"
	"github.com/sqmw/repofolio/internal/state"
)

// renderMain renders the full UI.
func (m Model) renderMain(theme Theme, pr i18n.Printer, d derived) string {
	styles := theme.Styles()

	bodyHeight := max(CardHeight, m.height-chromeHeight)
	mainWidth := m.width
	var sidebar string
	if m.width >= LayoutSidebarWidth {
		mainWidth = m.width - SidebarWidth
		sidebar = m.renderSidebar(theme, pr, d, bodyHeight)
	}
	body := m.renderProjects(theme, pr, d, mainWidth, bodyHeight)
	if sidebar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(mainWidth).Height(bodyHeight).Render(body),
			sidebar,
		)
	}

	sections := []string{
		m.renderHeader(theme, pr, d.state),
		m.search.View(),
		renderChips(theme, pr, d.languages, d.state.Language),
		body,
		m.renderStatus(theme, pr, d),
		m.renderDetail(theme, pr, d),
		styles.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp())),
	}
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader(theme Theme, pr i18n.Printer, st state.State) string {
	styles := theme.Styles()
	left := styles.Logo.Render("repofolio")
	if m.user != "" {
		left += styles.MutedText.Render(" @" + m.user)
	}
	right := styles.MutedText.Render(fmt.Sprintf("%s: %s · %s · %s",
		pr.T(i18n.SortLabel), pr.Sort(st.Sort), pr.View(st.View), st.Theme))

	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return styles.Header.Width(max(0, m.width)).Render(left + strings.Repeat(" ", gap) + right)
}

// renderChips renders the language filter row, "all" first.
func renderChips(theme Theme, pr i18n.Printer, stats []derive.LanguageStat, active string) string {
	styles := theme.Styles()
	chips := languageChips(stats)
	parts := make([]string, 0, len(chips))
	for i, lang := range chips {
		label := lang
		if lang == state.AllLanguages {
			label = pr.T(i18n.FilterAll)
		} else {
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(LanguageColor(lang))).Render("●")
			label = swatch + " " + fmt.Sprintf("%s %d", lang, stats[i-1].Count)
		}
		if lang == active || (active == "" && lang == state.AllLanguages) {
			parts = append(parts, styles.ChipActive.Render(label))
			continue
		}
		parts = append(parts, styles.Chip.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderProjects(theme Theme, pr i18n.Printer, d derived, width, height int) string {
	styles := theme.Styles()
	projects := d.listing.Projects

	switch {
	case len(projects) > 0:
	case m.loading && len(d.state.Projects) == 0:
		return m.spinner.View() + " " + styles.MutedText.Render(pr.T(i18n.Loading))
	case m.loadErr != nil && len(d.state.Projects) == 0:
		return styles.DangerText.Render("✗ "+pr.LoadError(m.loadErr)) + "\n" +
			styles.MutedText.Render(pr.T(i18n.ErrorTip))
	default:
		return styles.MutedText.Render(pr.T(i18n.NoProjects))
	}

	if d.state.View == state.ViewList {
		return m.renderList(theme, pr, projects, width, height)
	}
	return m.renderGrid(theme, pr, projects, width, height)
}

func (m Model) gridColumns() int {
	width := m.width
	if width >= LayoutSidebarWidth {
		width -= SidebarWidth
	}
	return max(1, width/CardWidth)
}

func (m Model) renderGrid(theme Theme, pr i18n.Printer, projects []project.Project, width, height int) string {
	cols := max(1, width/CardWidth)
	visibleRows := max(1, height/CardHeight)
	cursorRow := m.cursor / cols
	firstRow := max(0, cursorRow-visibleRows+1)

	var rows []string
	for r := firstRow; r < firstRow+visibleRows; r++ {
		start := r * cols
		if start >= len(projects) {
			break
		}
		end := min(start+cols, len(projects))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, renderCard(theme, pr, projects[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(theme Theme, pr i18n.Printer, p project.Project, selected bool) string {
	styles := theme.Styles()
	inner := CardWidth - 4

	title := truncateWidth(p.Name, inner)
	if len(p.Tags) > 0 {
		tags := styles.Tag.Render("[" + strings.Join(p.Tags, "] [") + "]")
		if lipgloss.Width(title)+1+lipgloss.Width(tags) <= inner {
			title = styles.AccentText.Bold(true).Render(title) + " " + tags
		} else {
			title = styles.AccentText.Bold(true).Render(title)
		}
	} else {
		title = styles.AccentText.Bold(true).Render(title)
	}

	desc := p.Description
	if desc == "" {
		desc = pr.T(i18n.RepoDesc)
	}
	lines := []string{
		title,
		styles.Text.Render(truncateWidth(desc, inner)),
		renderMeta(theme, pr, p, inner),
	}

	box := styles.Card
	if selected {
		box = styles.CardFocus
	}
	return box.Width(CardWidth - 2).Height(CardHeight - 2).Render(strings.Join(lines, "\n"))
}

// renderMeta renders "● Go  ★ 12  Updated 2026/3/4", dropping the date when
// it does not fit.
func renderMeta(theme Theme, pr i18n.Printer, p project.Project, width int) string {
	styles := theme.Styles()
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(LanguageColor(p.Language))).Render("●")
	meta := swatch + " " + styles.MutedText.Render(p.Language) + "  " +
		styles.WarningText.Render(fmt.Sprintf("★ %d", p.Stars))
	updated := styles.FaintText.Render(pr.Updated(p.UpdatedAt))
	if lipgloss.Width(meta)+2+lipgloss.Width(updated) <= width {
		meta += "  " + updated
	}
	return meta
}

func (m Model) renderList(theme Theme, pr i18n.Printer, projects []project.Project, width, height int) string {
	styles := theme.Styles()
	first := max(0, m.cursor-height+1)
	last := min(len(projects), first+height)

	nameWidth := 28
	rows := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		p := projects[i]
		row := padRight(truncateWidth(p.Name, nameWidth), nameWidth) + " " +
			padRight(fmt.Sprintf("★ %d", p.Stars), 8) + " " +
			padRight(truncateWidth(p.Language, 12), 12) + " " +
			padRight(pr.Date(p.UpdatedAt), 10)
		if width >= LayoutCompactWidth {
			desc := p.Description
			if desc == "" {
				desc = pr.T(i18n.RepoDesc)
			}
			row += "  " + truncateWidth(desc, max(0, width-lipgloss.Width(row)-4))
		}
		if i == m.cursor {
			rows = append(rows, styles.Selected.Render("› "+row))
			continue
		}
		rows = append(rows, styles.Text.Render("  "+row))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderSidebar(theme Theme, pr i18n.Printer, d derived, height int) string {
	styles := theme.Styles()
	inner := SidebarWidth - 3

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(pr.T(i18n.Trending)))
	b.WriteString("\n")
	for _, t := range m.trending {
		meta := styles.MutedText.Render(pr.T(i18n.Active))
		if t.Rising() {
			meta = styles.SuccessText.Render(fmt.Sprintf("↑ %d", t.Delta))
		}
		b.WriteString(sidebarItem(styles, t.Name, meta, inner))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.AccentText.Bold(true).Render(pr.T(i18n.TopStars)))
	b.WriteString("\n")
	for _, p := range d.top {
		b.WriteString(sidebarItem(styles, p.Name, styles.WarningText.Render(fmt.Sprintf("★ %d", p.Stars)), inner))
		b.WriteString("\n")
	}

	return styles.Sidebar.Width(SidebarWidth - 1).Height(height).Render(strings.TrimRight(b.String(), "\n"))
}

func sidebarItem(styles Styles, name, meta string, width int) string {
	nameWidth := max(1, width-lipgloss.Width(meta)-1)
	return padRight(styles.Text.Render(truncateWidth(name, nameWidth)), nameWidth) + " " + meta
}

// renderStatus renders the result count, active filters and the load
// notice: a spinner while loading, the offline notice when serving cached
// data, or the failure message.
func (m Model) renderStatus(theme Theme, pr i18n.Printer, d derived) string {
	styles := theme.Styles()
	parts := []string{styles.Text.Render(pr.Results(d.listing.Count))}
	if f := pr.Filters(d.listing.ActiveFilters); f != "" {
		parts = append(parts, styles.InfoText.Render(f))
	}
	if d.state.HasActiveFilters() {
		parts = append(parts, styles.FaintText.Render(pr.T(i18n.ClearFiltersHint)))
	}

	switch {
	case m.loading:
		parts = append(parts, m.spinner.View()+styles.MutedText.Render(pr.T(i18n.Loading)))
	case m.fromCache:
		parts = append(parts, styles.WarningText.Render(pr.T(i18n.OfflineCache, m.cachedAt.Local().Format("2006-01-02 15:04"))))
		if m.loadErr != nil {
			parts = append(parts, styles.DangerText.Render(pr.LoadError(m.loadErr)))
		}
	case m.loadErr != nil && len(d.state.Projects) > 0:
		parts = append(parts, styles.DangerText.Render(pr.LoadError(m.loadErr)))
	}
	return strings.Join(parts, styles.FaintText.Render("  ·  "))
}

// renderDetail shows the selected project's links, including its star
// history chart.
func (m Model) renderDetail(theme Theme, pr i18n.Printer, d derived) string {
	styles := theme.Styles()
	projects := d.listing.Projects
	if len(projects) == 0 || m.cursor >= len(projects) {
		return styles.FaintText.Render(pr.T(i18n.HelpHint))
	}
	p := projects[m.cursor]
	line := styles.AccentText.Render(p.URL)
	if m.user != "" {
		line += styles.FaintText.Render("  ·  ") +
			styles.MutedText.Render(pr.T(i18n.StarHistory)+": ") +
			styles.InfoText.Render(github.StarHistoryURL(m.user, p.Name))
	}
	return ternary(lipgloss.Width(line) > m.width && m.width > 0, styles.AccentText.Render(truncateWidth(p.URL, m.width)), line)
}
