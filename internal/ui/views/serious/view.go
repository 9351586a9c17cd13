package serious

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	profiledto "folio/internal/modules/profile/dto"
	projectsdto "folio/internal/modules/projects/dto"
	"folio/internal/ui/components"
	"folio/internal/ui/theme"
)

const maxColumn = 96

const (
	aboutPlaceholder     = "Add a short description about what you like to build and how you work. Keep it focused and concrete."
	workPlaceholder      = "Add entries to `work` in your content file to show your roles here."
	educationPlaceholder = "Add entries to `education` in your content file to show your studies here."
	pinnedPlaceholder    = "No pinned projects yet. Mark items in your data as `pinned: true` to show them here."
)

// ─── model ───────────────────────────────────────────────────────────────────

type Options struct {
	Now  func() time.Time
	Copy func(string) error
}

type Model struct {
	content  profiledto.ContentOutput
	projects projectsdto.ListOutput
	loading  bool
	status   string

	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	now    func() time.Time
	copyFn func(string) error

	width  int
	height int
}

func New(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Copy == nil {
		opts.Copy = components.WriteClipboard
	}

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Serious.Bg).Foreground(theme.Text)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Serious.Accent)

	return Model{
		loading:  true,
		viewport: vp,
		spinner:  sp,
		now:      opts.Now,
		copyFn:   opts.Copy,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.resize()
	m.refresh()
	return m
}

func (m Model) SetContent(content profiledto.ContentOutput) Model {
	m.content = content
	m.refresh()
	return m
}

func (m Model) SetProjects(list projectsdto.ListOutput) Model {
	m.projects = list
	m.loading = false
	m.refresh()
	return m
}

// SetLoading puts the project section back into its spinner state, used while
// a refresh is in flight.
func (m Model) SetLoading() Model {
	m.loading = true
	m.refresh()
	return m
}

func (m Model) Loading() bool { return m.loading }

func (m Model) Status() string { return m.status }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case components.CopiedMsg:
		m.status = components.CopyStatus(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "y":
			return m, m.CopyEmail()
		case "Y":
			return m, m.CopyGitHub()
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	return m.viewport.View()
}

// CopyEmail writes the e-mail address to the system clipboard.
func (m Model) CopyEmail() tea.Cmd {
	return components.CopyCmd(m.copyFn, "e-mail", m.content.Profile.Email)
}

// CopyGitHub writes the GitHub profile link to the system clipboard.
func (m Model) CopyGitHub() tea.Cmd {
	return components.CopyCmd(m.copyFn, "GitHub link", m.content.Profile.GitHub)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height, 1)
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.column()),
	); err == nil {
		m.renderer = r
	}
}

func (m *Model) refresh() {
	if m.width == 0 {
		return
	}
	m.viewport.SetContent(m.render())
}

func (m Model) column() int {
	return max(min(m.width-4, maxColumn), 20)
}

func (m Model) render() string {
	col := m.column()
	block := lipgloss.NewStyle().Width(col)
	var sections []string
	for _, s := range []string{
		m.renderCard(),
		m.renderAbout(col),
		m.renderTech(col),
		m.renderWork(block),
		m.renderEducation(block),
		m.renderProjects(block),
	} {
		if s != "" {
			sections = append(sections, s)
		}
	}
	body := strings.Join(sections, "\n\n")
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, block.Render(body))
}

func heading(text string) string {
	return theme.Title.Render(text)
}

func placeholder(style lipgloss.Style, text string) string {
	return style.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Foreground(theme.Subtext0).
		Padding(0, 1).
		Render(text)
}

func (m Model) renderCard() string {
	p := m.content.Profile
	initials := lipgloss.NewStyle().
		Foreground(theme.Crust).
		Background(theme.Serious.Accent).
		Bold(true).
		Padding(1, 2).
		Render(fallback(p.Initials, "?"))

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(p.Name),
		theme.Muted.Render(p.Handle),
		p.Title,
	}
	if p.Location != "" {
		lines = append(lines, theme.Muted.Render(p.Location))
	}
	var links []string
	if p.GitHub != "" {
		links = append(links, theme.Link.Render(p.GitHub))
	}
	if p.Email != "" {
		links = append(links, theme.Link.Render(p.Email))
	}
	if len(links) > 0 {
		lines = append(lines, strings.Join(links, theme.Muted.Render("  ·  ")))
	}
	info := lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, initials, info)
}

func (m Model) renderAbout(col int) string {
	bio := strings.TrimSpace(m.content.Profile.ShortBio)
	if bio == "" {
		return heading("About") + "\n" + theme.Muted.Width(col).Render(aboutPlaceholder)
	}
	if m.renderer != nil {
		if out, err := m.renderer.Render(bio); err == nil {
			return heading("About") + strings.TrimRight(out, "\n")
		}
	}
	return heading("About") + "\n" + lipgloss.NewStyle().Width(col).Render(bio)
}

func (m Model) renderTech(col int) string {
	if len(m.content.TechStack) == 0 {
		return ""
	}
	var rows []string
	var row []string
	width := 0
	for _, item := range m.content.TechStack {
		chip := theme.Chip.Render(item.Label)
		w := lipgloss.Width(chip) + 1
		if width+w > col && len(row) > 0 {
			rows = append(rows, strings.Join(row, " "))
			row, width = nil, 0
		}
		row = append(row, chip)
		width += w
	}
	rows = append(rows, strings.Join(row, " "))
	return heading("Tech stack") + "\n" + strings.Join(rows, "\n")
}

func (m Model) renderWork(block lipgloss.Style) string {
	if len(m.content.Work) == 0 {
		return heading("Experience") + "\n" + placeholder(block, workPlaceholder)
	}
	entries := make([]string, 0, len(m.content.Work))
	for _, w := range m.content.Work {
		entries = append(entries, entry(block, w.Role, w.Period, w.Company, w.Location, w.Summary))
	}
	return heading("Experience") + "\n" + strings.Join(entries, "\n\n")
}

func (m Model) renderEducation(block lipgloss.Style) string {
	if len(m.content.Education) == 0 {
		return heading("Education") + "\n" + placeholder(block, educationPlaceholder)
	}
	entries := make([]string, 0, len(m.content.Education))
	for _, e := range m.content.Education {
		entries = append(entries, entry(block, e.School, e.Period, e.Degree, e.Location, e.Summary))
	}
	return heading("Education") + "\n" + strings.Join(entries, "\n\n")
}

func entry(block lipgloss.Style, title, period, subtitle, location, summary string) string {
	width := block.GetWidth()
	left := lipgloss.NewStyle().Bold(true).Render(title)
	right := theme.Muted.Render(period)
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	lines := []string{left + strings.Repeat(" ", gap) + right}
	if subtitle != "" {
		lines = append(lines, subtitle)
	}
	if location != "" {
		lines = append(lines, theme.Muted.Render(location))
	}
	if summary != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Subtext0).Width(width).Render(summary))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderProjects(block lipgloss.Style) string {
	if m.loading {
		return heading("Pinned projects") + "\n" + m.spinner.View() + " Loading projects…"
	}
	var pinned, rest []projectsdto.ProjectOutput
	for _, p := range m.projects.Projects {
		if p.Pinned {
			pinned = append(pinned, p)
		} else {
			rest = append(rest, p)
		}
	}

	var sb strings.Builder
	sb.WriteString(heading("Pinned projects"))
	if age := m.cacheAge(); age != "" {
		sb.WriteString(theme.Muted.Render("  " + age))
	}
	sb.WriteString("\n")
	if len(pinned) == 0 {
		sb.WriteString(placeholder(block, pinnedPlaceholder))
	} else {
		cards := make([]string, 0, len(pinned))
		for _, p := range pinned {
			cards = append(cards, projectCard(block, p))
		}
		sb.WriteString(strings.Join(cards, "\n"))
	}

	if len(rest) > 0 {
		sb.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Subtext0).Bold(true).Render("Other projects") + "\n")
		lines := make([]string, 0, len(rest))
		for _, p := range rest {
			lines = append(lines, projectLine(block, p))
		}
		sb.WriteString(strings.Join(lines, "\n"))
	}
	return sb.String()
}

func projectCard(block lipgloss.Style, p projectsdto.ProjectOutput) string {
	inner := block.GetWidth() - 4
	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(p.Name)}
	if p.DescriptionSerious != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Subtext0).Width(inner).Render(p.DescriptionSerious))
	}
	if len(p.Tech) > 0 {
		chips := make([]string, len(p.Tech))
		for i, t := range p.Tech {
			chips[i] = theme.Chip.Render(t)
		}
		lines = append(lines, strings.Join(chips, " "))
	}
	if links := projectLinks(p); links != "" {
		lines = append(lines, links)
	}
	return theme.Serious.Card().Padding(0, 1).Width(block.GetWidth() - 2).Render(strings.Join(lines, "\n"))
}

func projectLine(block lipgloss.Style, p projectsdto.ProjectOutput) string {
	line := lipgloss.NewStyle().Bold(true).Render(p.Name)
	if len(p.Tech) > 0 {
		line += "  " + theme.Chip.Render(p.Tech[0])
	}
	if p.DescriptionSerious != "" {
		line += "\n" + theme.Muted.Width(block.GetWidth()).Render(p.DescriptionSerious)
	}
	if links := projectLinks(p); links != "" {
		line += "\n" + links
	}
	return line
}

func projectLinks(p projectsdto.ProjectOutput) string {
	var links []string
	if p.GitHubURL != "" {
		links = append(links, theme.Link.Render(p.GitHubURL))
	}
	if p.LiveURL != "" {
		links = append(links, theme.Link.Render(p.LiveURL))
	}
	return strings.Join(links, "  ")
}

func (m Model) cacheAge() string {
	switch m.projects.Source {
	case "cache":
		if m.projects.FetchedAt.IsZero() {
			return ""
		}
		return fmt.Sprintf("GitHub, fetched %s", humanize.RelTime(m.projects.FetchedAt, m.now(), "ago", "from now"))
	case "live":
		return "GitHub, fetched just now"
	default:
		return ""
	}
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
