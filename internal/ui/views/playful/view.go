package playful

import (
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	profiledto "folio/internal/modules/profile/dto"
	projectsdto "folio/internal/modules/projects/dto"
	"folio/internal/ui/components"
	"folio/internal/ui/theme"
)

const (
	boxesInterval = 380 * time.Millisecond
	boxesLit      = 6
	spinInterval  = 80 * time.Millisecond
	spinMinTicks  = 18
	spinJitter    = 10
	maxPanel      = 76
)

// ─── sections ────────────────────────────────────────────────────────────────

type Section int

const (
	SectionIntro Section = iota
	SectionProjects
	SectionExperience
	SectionEducation
	SectionContact
)

var sectionLabels = []string{"Intro", "Projects", "Experience", "Education", "Contact"}

func (s Section) String() string {
	if s < 0 || int(s) >= len(sectionLabels) {
		return ""
	}
	return sectionLabels[s]
}

// ─── messages ────────────────────────────────────────────────────────────────

type boxesMsg struct{ run uint64 }

type spinMsg struct{ run uint64 }

// ─── model ───────────────────────────────────────────────────────────────────

type Options struct {
	Rand *rand.Rand
	// Tick schedules fn after d. Defaults to tea.Tick.
	Tick func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd
	Copy func(string) error
}

type Model struct {
	content  profiledto.ContentOutput
	projects []projectsdto.ProjectOutput
	loading  bool
	status   string

	section Section
	offset  int

	lit      map[int]bool
	boxesRun uint64

	current   int
	spinning  bool
	spinTicks int
	spinTotal int
	spinRun   uint64

	spinner spinner.Model
	rng     *rand.Rand
	tick    func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
	copyFn  func(string) error

	idleCell string
	litCell  string

	width  int
	height int
}

type span struct{ from, to int }

func New(opts Options) Model {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	if opts.Tick == nil {
		opts.Tick = tea.Tick
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Playful.Accent)

	return Model{
		loading:  true,
		lit:      map[int]bool{},
		spinner:  sp,
		rng:      opts.Rand,
		tick:     opts.Tick,
		copyFn:   opts.Copy,
		idleCell: lipgloss.NewStyle().Foreground(theme.Surface0).Background(theme.Playful.Bg).Render("· "),
		litCell:  lipgloss.NewStyle().Foreground(litColor()).Background(theme.Playful.Bg).Render("██"),
	}
}

// litColor is the accent at 40% over the background, like a translucent box.
func litColor() lipgloss.Color {
	bg, errBg := colorful.Hex(string(theme.Playful.Bg))
	fg, errFg := colorful.Hex(string(theme.Playful.Accent))
	if errBg != nil || errFg != nil {
		return theme.Playful.Accent
	}
	return lipgloss.Color(bg.BlendLab(fg, 0.4).Clamped().Hex())
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Start begins the background animation. Ticks from an earlier Start are
// ignored, so calling it on every activation never doubles the loop.
func (m Model) Start() (Model, tea.Cmd) {
	m.boxesRun++
	m.shuffleBoxes()
	if m.loading {
		return m, tea.Batch(m.boxesTick(), m.spinner.Tick)
	}
	return m, m.boxesTick()
}

// Stop ends the background animation and any spin in progress.
func (m Model) Stop() Model {
	m.boxesRun++
	m.spinRun++
	m.spinning = false
	return m
}

func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.clampOffset()
	return m
}

func (m Model) SetContent(content profiledto.ContentOutput) Model {
	m.content = content
	m.clampOffset()
	return m
}

func (m Model) SetProjects(list projectsdto.ListOutput) Model {
	m.projects = list.Projects
	m.loading = false
	if m.current >= len(m.projects) {
		m.current = 0
	}
	m.clampOffset()
	return m
}

func (m Model) SetLoading() Model {
	m.loading = true
	return m
}

func (m Model) Section() Section  { return m.section }
func (m Model) Current() int      { return m.current }
func (m Model) Spinning() bool    { return m.spinning }
func (m Model) Loading() bool     { return m.loading }
func (m Model) Status() string    { return m.status }
func (m Model) Lit() map[int]bool { return m.lit }
func (m Model) SpinTotal() int    { return m.spinTotal }

// BoxCount is the number of background cells at the current size.
func (m Model) BoxCount() int { return m.cols() * m.bodyHeight() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case boxesMsg:
		if msg.run != m.boxesRun {
			return m, nil
		}
		m.shuffleBoxes()
		return m, m.boxesTick()

	case spinMsg:
		if msg.run != m.spinRun || !m.spinning {
			return m, nil
		}
		return m.spinStep()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.CopiedMsg:
		m.status = components.CopyStatus(msg)
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			_, hits := m.renderNav()
			for i, hit := range hits {
				if msg.X >= hit.from && msg.X < hit.to {
					m = m.Goto(Section(i))
					break
				}
			}
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(-1)
		case tea.MouseButtonWheelDown:
			m.scroll(1)
		}
		return m, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "right", "l", "tab":
			return m.Goto((m.section + 1) % Section(len(sectionLabels))), nil
		case "left", "h", "shift+tab":
			return m.Goto((m.section + Section(len(sectionLabels)) - 1) % Section(len(sectionLabels))), nil
		case "1", "2", "3", "4", "5":
			return m.Goto(Section(key[0] - '1')), nil
		case "down", "j":
			m.scroll(1)
		case "up", "k":
			m.scroll(-1)
		case " ", "space":
			return m.Spin()
		case "y":
			return m, components.CopyCmd(m.copyFn, "e-mail", m.content.Profile.Email)
		case "Y":
			return m, components.CopyCmd(m.copyFn, "GitHub link", m.content.Profile.GitHub)
		}
	}
	return m, nil
}

// Goto switches the visible section.
func (m Model) Goto(s Section) Model {
	if s < 0 || int(s) >= len(sectionLabels) {
		return m
	}
	m.section = s
	m.offset = 0
	return m
}

// Spin starts the project roulette. It jumps to the Projects section and is
// ignored while a spin is running or when there is nothing to spin.
func (m Model) Spin() (Model, tea.Cmd) {
	if len(m.projects) == 0 || m.spinning {
		return m, nil
	}
	m = m.Goto(SectionProjects)
	m.spinning = true
	m.spinTicks = 0
	m.spinTotal = spinMinTicks + m.rng.IntN(spinJitter)
	m.spinRun++
	return m, m.spinTick()
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	nav, _ := m.renderNav()
	return nav + "\n" + m.renderBody()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) boxesTick() tea.Cmd {
	run := m.boxesRun
	return m.tick(boxesInterval, func(time.Time) tea.Msg { return boxesMsg{run: run} })
}

func (m Model) spinTick() tea.Cmd {
	run := m.spinRun
	return m.tick(spinInterval, func(time.Time) tea.Msg { return spinMsg{run: run} })
}

func (m Model) spinStep() (Model, tea.Cmd) {
	m.spinTicks++
	if len(m.projects) > 0 {
		m.current = (m.current + 1) % len(m.projects)
	}
	if m.spinTicks >= m.spinTotal {
		m.spinning = false
		return m, nil
	}
	return m, m.spinTick()
}

func (m *Model) shuffleBoxes() {
	total := m.BoxCount()
	lit := make(map[int]bool, boxesLit)
	if total <= 0 {
		m.lit = lit
		return
	}
	for len(lit) < min(boxesLit, total) {
		lit[m.rng.IntN(total)] = true
	}
	m.lit = lit
}

func (m Model) cols() int {
	return max(m.width/2, 0)
}

func (m Model) bodyHeight() int {
	return max(m.height-2, 0)
}

func (m Model) panelWidth() int {
	return max(min(m.width-8, maxPanel), 24)
}

// visibleLines is how many content lines fit inside the bordered panel.
func (m Model) visibleLines() int {
	return max(m.bodyHeight()-2-4, 1)
}

func (m *Model) scroll(delta int) {
	m.offset += delta
	m.clampOffset()
}

func (m *Model) clampOffset() {
	if m.width == 0 {
		return
	}
	limit := max(len(m.sectionLines())-m.visibleLines(), 0)
	m.offset = max(min(m.offset, limit), 0)
}

func (m Model) renderNav() (string, []span) {
	active := lipgloss.NewStyle().
		Foreground(theme.Crust).
		Background(theme.Playful.Accent).
		Bold(true).
		Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(theme.Subtext0).Padding(0, 1)

	tabs := make([]string, len(sectionLabels))
	widths := make([]int, len(sectionLabels))
	total := 0
	for i, label := range sectionLabels {
		text := string(rune('1'+i)) + " " + label
		if Section(i) == m.section {
			tabs[i] = active.Render(text)
		} else {
			tabs[i] = idle.Render(text)
		}
		widths[i] = lipgloss.Width(tabs[i])
		total += widths[i]
	}
	total += len(tabs) - 1

	left := max((m.width-total)/2, 0)
	hits := make([]span, len(tabs))
	x := left
	for i, w := range widths {
		hits[i] = span{from: x, to: x + w}
		x += w + 1
	}
	line := strings.Repeat(" ", left) + strings.Join(tabs, " ")
	return lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).Render(line), hits
}

func (m Model) renderBody() string {
	rows := m.bodyHeight()
	cols := m.cols()
	if rows <= 0 {
		return ""
	}
	panel := strings.Split(m.renderPanel(), "\n")
	pw := lipgloss.Width(panel[0])
	top := max((rows-len(panel))/2, 0)
	x := max((m.width-pw)/2, 0) &^ 1
	leftCells := x / 2
	rightWidth := max(m.width-x-pw, 0)
	rightCells := rightWidth / 2

	var sb strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteString("\n")
		}
		line := r - top
		if line < 0 || line >= len(panel) {
			sb.WriteString(m.cells(r*cols, cols))
			if m.width%2 == 1 {
				sb.WriteString(" ")
			}
			continue
		}
		sb.WriteString(m.cells(r*cols, leftCells))
		sb.WriteString(panel[line])
		sb.WriteString(m.cells(r*cols+cols-rightCells, rightCells))
		if rightWidth%2 == 1 {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

// cells renders n background boxes starting at index from.
func (m Model) cells(from, n int) string {
	var sb strings.Builder
	for i := from; i < from+n; i++ {
		if m.lit[i] {
			sb.WriteString(m.litCell)
		} else {
			sb.WriteString(m.idleCell)
		}
	}
	return sb.String()
}

func (m Model) renderPanel() string {
	lines := m.sectionLines()
	end := min(m.offset+m.visibleLines(), len(lines))
	visible := lines[min(m.offset, end):end]
	body := strings.Join(visible, "\n")
	if m.offset > 0 || end < len(lines) {
		body += "\n" + theme.Muted.Render("↑/↓ scroll")
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Playful.Accent).
		Background(theme.Crust).
		Foreground(theme.Text).
		Padding(1, 2).
		Width(m.panelWidth()).
		Render(body)
}

func (m Model) inner() int {
	return max(m.panelWidth()-4, 10)
}

func (m Model) sectionLines() []string {
	var text string
	switch m.section {
	case SectionIntro:
		text = m.renderIntro()
	case SectionProjects:
		text = m.renderProjects()
	case SectionExperience:
		text = m.renderTimeline()
	case SectionEducation:
		text = m.renderEducation()
	case SectionContact:
		text = m.renderContact()
	}
	return strings.Split(text, "\n")
}

func (m Model) heading(text string) string {
	return lipgloss.NewStyle().Foreground(theme.Playful.Accent).Bold(true).Render(text)
}

func (m Model) wrap(text string, style lipgloss.Style) string {
	return style.Width(m.inner()).Render(text)
}

func (m Model) renderIntro() string {
	p := m.content.Profile
	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Hi, I'm " + p.Name)
	lines := []string{name}
	if p.Tagline != "" {
		lines = append(lines, "", m.wrap(p.Tagline, lipgloss.NewStyle().Foreground(theme.Subtext0)))
	}
	var chips []string
	if p.Title != "" {
		chips = append(chips, theme.Chip.Render(p.Title))
	}
	if p.Location != "" {
		chips = append(chips, theme.Chip.Render(p.Location))
	}
	if len(chips) > 0 {
		lines = append(lines, "", strings.Join(chips, " "))
	}
	lines = append(lines, "", theme.Muted.Render("←/→ or 1-5 to move around, space to spin the project roulette"))
	return strings.Join(lines, "\n")
}

func (m Model) renderProjects() string {
	lines := []string{
		m.heading("Projects, but less serious"),
		m.wrap("Same repos as the serious tab, but let the roulette decide what to show off.", theme.Muted),
		"",
	}
	if m.loading {
		return strings.Join(append(lines, m.spinner.View()+" Loading projects…"), "\n")
	}
	if len(m.projects) == 0 {
		lines = append(lines, m.wrap("No projects wired up yet. Add entries to `projects` in your content file and they will pop up here with playful copy.", theme.Muted))
		return strings.Join(lines, "\n")
	}

	button := "[space] Spin"
	if m.spinning {
		button = "Spinning…"
	}
	lines = append(lines, theme.Hot.Render(button), "")

	n := len(m.projects)
	dim := lipgloss.NewStyle().Foreground(theme.Overlay0)
	if n > 1 {
		prev := m.projects[(m.current-1+n)%n]
		lines = append(lines, dim.Render("  "+prev.Name+"  "+truncate(playfulCopy(prev), m.inner()-len(prev.Name)-4)))
	}

	cur := m.projects[m.current]
	card := []string{lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("▶ " + cur.Name)}
	if desc := playfulCopy(cur); desc != "" {
		card = append(card, m.wrap(desc, lipgloss.NewStyle().Foreground(theme.Subtext0)))
	}
	if len(cur.Tech) > 0 {
		card = append(card, theme.Muted.Render("stack: "+strings.Join(cur.Tech, " · ")))
	}
	var links []string
	if cur.GitHubURL != "" {
		links = append(links, theme.Link.Render(cur.GitHubURL))
	}
	if cur.LiveURL != "" {
		links = append(links, theme.Link.Render(cur.LiveURL))
	}
	if len(links) > 0 {
		card = append(card, strings.Join(links, "  "))
	}
	lines = append(lines, card...)

	if n > 2 {
		next := m.projects[(m.current+1)%n]
		lines = append(lines, dim.Render("  "+next.Name+"  "+truncate(playfulCopy(next), m.inner()-len(next.Name)-4)))
	}
	return strings.Join(lines, "\n")
}

func playfulCopy(p projectsdto.ProjectOutput) string {
	if p.DescriptionPlayful != "" {
		return p.DescriptionPlayful
	}
	return p.DescriptionSerious
}

func truncate(s string, n int) string {
	if n <= 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

type timelineItem struct {
	title    string
	subtitle string
	location string
	summary  string
}

type timelineGroup struct {
	key   string
	items []timelineItem
}

// Timeline groups work and education by period, ongoing entries first and
// the rest by end year, newest first.
func (m Model) timeline() []timelineGroup {
	index := map[string]int{}
	var groups []timelineGroup
	add := func(period string, item timelineItem) {
		key := period
		if strings.Contains(period, "Present") {
			key = "present"
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, timelineGroup{key: key})
		}
		groups[i].items = append(groups[i].items, item)
	}
	for _, w := range m.content.Work {
		add(w.Period, timelineItem{title: w.Role, subtitle: w.Company, location: w.Location, summary: w.Summary})
	}
	for _, e := range m.content.Education {
		add(e.Period, timelineItem{title: e.School, subtitle: e.Degree, location: e.Location, summary: e.Summary})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].key, groups[j].key
		if a == "present" || b == "present" {
			return a == "present" && b != "present"
		}
		return periodEnd(a) > periodEnd(b)
	})
	return groups
}

func periodEnd(period string) string {
	if _, end, ok := strings.Cut(period, " - "); ok {
		return end
	}
	return "0"
}

func (m Model) renderTimeline() string {
	lines := []string{m.heading("Timeline of doing stuff"), ""}
	if len(m.content.Work) == 0 && len(m.content.Education) == 0 {
		lines = append(lines, m.wrap("No entries yet. Add entries to `work` or `education` in your content file.", theme.Muted))
		return strings.Join(lines, "\n")
	}
	bullet := lipgloss.NewStyle().Foreground(theme.Playful.Accent)
	for gi, g := range m.timeline() {
		if gi > 0 {
			lines = append(lines, "")
		}
		label := g.key
		if label == "present" {
			label = "Present"
		}
		lines = append(lines, bullet.Render("● ")+lipgloss.NewStyle().Bold(true).Render(label))
		for _, item := range g.items {
			lines = append(lines, "  "+lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(item.title)+theme.Muted.Render(" · "+item.subtitle))
			if item.location != "" {
				lines = append(lines, "  "+theme.Muted.Render(item.location))
			}
			if item.summary != "" {
				wrapped := lipgloss.NewStyle().Foreground(theme.Subtext0).Width(m.inner() - 2).Render(item.summary)
				for _, l := range strings.Split(wrapped, "\n") {
					lines = append(lines, "  "+l)
				}
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEducation() string {
	lines := []string{m.heading("Education"), ""}
	if len(m.content.Education) == 0 {
		lines = append(lines, m.wrap("Add entries to `education` in your content file to show your studies here.", theme.Muted))
		return strings.Join(lines, "\n")
	}
	for i, e := range m.content.Education {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(e.School)+theme.Muted.Render("  "+e.Period),
			e.Degree,
		)
		if e.Location != "" {
			lines = append(lines, theme.Muted.Render(e.Location))
		}
		if e.Summary != "" {
			lines = append(lines, m.wrap(e.Summary, lipgloss.NewStyle().Foreground(theme.Subtext0)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderContact() string {
	p := m.content.Profile
	accent := lipgloss.NewStyle().Foreground(theme.Playful.Accent)
	lines := []string{
		m.heading("Contact"),
		"",
		"Prefer " + accent.Render("email") + " for work, " + accent.Render("GitHub") + " for code.",
		"",
	}
	if p.Email != "" {
		lines = append(lines, accent.Render("✉ ")+theme.Link.Render(p.Email))
	}
	if p.GitHub != "" {
		lines = append(lines, accent.Render("⌂ ")+theme.Link.Render(p.Handle)+theme.Muted.Render("  "+p.GitHub))
	}
	lines = append(lines, "", theme.Muted.Render("y copy e-mail · Y copy GitHub link"))
	if m.status != "" {
		lines = append(lines, theme.Hot.Render(m.status))
	}
	return strings.Join(lines, "\n")
}
