package app

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"folio/internal/modules/preference/domain"
	profiledto "folio/internal/modules/profile/dto"
	projectsdto "folio/internal/modules/projects/dto"
	"folio/internal/platform/sched"
	"folio/internal/ui/chooser"
	"folio/internal/ui/components"
	"folio/internal/ui/theme"
	playfulview "folio/internal/ui/views/playful"
	seriousview "folio/internal/ui/views/serious"
)

const (
	frameInterval = 40 * time.Millisecond
	footerText    = "Built with Go, Bubble Tea & Lip Gloss"
	changeButton  = " ⇄ change view "
	overlayColor  = "#000000"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type contentPort interface {
	Content(ctx context.Context) (profiledto.ContentOutput, error)
	Changes(ctx context.Context) (<-chan struct{}, error)
}

type projectsPort interface {
	List(ctx context.Context) (projectsdto.ListOutput, error)
	Refresh(ctx context.Context) (projectsdto.ListOutput, error)
}

// ─── async messages ──────────────────────────────────────────────────────────

// StepMsg carries an orchestrator task back when its delay has elapsed.
type StepMsg struct{ ID uint64 }

type frameMsg time.Time

type contentLoadedMsg struct {
	content profiledto.ContentOutput
	err     error
}

type projectsLoadedMsg struct {
	list projectsdto.ListOutput
	err  error
}

type watchStartedMsg struct {
	changes <-chan struct{}
	err     error
}

type contentChangedMsg struct {
	changes <-chan struct{}
	open    bool
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Change  key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Copy    key.Binding
	Section key.Binding
	Spin    key.Binding
	Scroll  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Change:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "change view")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Copy:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y/Y", "copy e-mail/GitHub")),
		Section: key.NewBinding(key.WithKeys("left", "right", "1", "2", "3", "4", "5"), key.WithHelp("←/→ 1-5", "section (playful)")),
		Spin:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "spin projects (playful)")),
		Scroll:  key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Change, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Change, k.Copy, k.Scroll},
		{k.Section, k.Spin},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── config ──────────────────────────────────────────────────────────────────

type Config struct {
	CellWidthPx, CellHeightPx int
	Now                       func() time.Time
	// Tick schedules fn after d. Defaults to tea.Tick; every delayed step of
	// the UI goes through it.
	Tick func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd
	Rand *rand.Rand
	Copy func(string) error
	Log  *slog.Logger
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It mounts the chooser and the mode
// views as the orchestrator dictates and owns the page chrome, the help
// overlay and the command palette.
type Model struct {
	ctx      context.Context
	orch     *Orchestrator
	content  contentPort
	projects projectsPort
	cfg      Config

	chooser   chooser.Model
	chooserOn bool

	serious seriousview.Model
	playful playfulview.Model
	// shown is the mode view currently mounted; empty while the content area
	// is a placeholder.
	shown domain.Mode

	profile  profiledto.ContentOutput
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	framing  bool
	width    int
	height   int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(ctx context.Context, orch *Orchestrator, content contentPort, projects projectsPort, cfg Config) Model {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Tick == nil {
		cfg.Tick = tea.Tick
	}
	if cfg.Copy == nil {
		cfg.Copy = components.WriteClipboard
	}
	if cfg.Log == nil {
		cfg.Log = slog.New(slog.DiscardHandler)
	}
	orch.Start(ctx)
	return Model{
		ctx:      ctx,
		orch:     orch,
		content:  content,
		projects: projects,
		cfg:      cfg,
		serious:  seriousview.New(seriousview.Options{Now: cfg.Now, Copy: cfg.Copy}),
		playful:  playfulview.New(playfulview.Options{Rand: cfg.Rand, Tick: cfg.Tick, Copy: cfg.Copy}),
		keys:     defaultKeys(),
		help:     help.New(),
		palette:  components.NewPalette(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadContentCmd(),
		m.loadProjectsCmd(false),
		m.watchCmd(),
		m.serious.Init(),
	)
}

// ChooserMounted reports whether the split-chooser is on screen.
func (m Model) ChooserMounted() bool { return m.chooserOn }

// Shown is the mode view currently mounted, empty while none is.
func (m Model) Shown() domain.Mode { return m.shown }

func (m Model) Status() string { return m.status }

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	synced, syncCmd := next.sync()
	return synced, tea.Batch(cmd, syncCmd)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if m.palette.Visible() {
		switch msg.(type) {
		case tea.KeyMsg, tea.MouseMsg:
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		if m.chooserOn {
			var cmd tea.Cmd
			m.chooser, cmd = m.chooser.Update(msg)
			return m, cmd
		}
		return m, nil

	case StepMsg:
		return m, m.schedule(m.orch.Fire(m.ctx, msg.ID))

	case chooser.TimerMsg:
		if !m.chooserOn {
			return m, nil
		}
		var cmd tea.Cmd
		m.chooser, cmd = m.chooser.Update(msg)
		return m, cmd

	case chooser.DecidedMsg:
		m.cfg.Log.Info("mode decided", "mode", msg.Mode)
		return m, m.schedule(m.orch.Decide(m.ctx, msg.Mode))

	case frameMsg:
		m.framing = false
		if m.chooserOn {
			m.chooser.Tick(time.Time(msg))
		}
		return m, nil

	case contentLoadedMsg:
		if msg.err != nil {
			m.cfg.Log.Warn("loading content failed", "err", msg.err)
			return m, nil
		}
		m.profile = msg.content
		m.serious = m.serious.SetContent(msg.content)
		m.playful = m.playful.SetContent(msg.content)
		return m, nil

	case projectsLoadedMsg:
		if msg.err != nil {
			m.cfg.Log.Warn("loading projects failed", "err", msg.err)
		} else {
			m.cfg.Log.Info("projects loaded", "count", len(msg.list.Projects), "source", msg.list.Source)
		}
		m.serious = m.serious.SetProjects(msg.list)
		m.playful = m.playful.SetProjects(msg.list)
		return m, nil

	case watchStartedMsg:
		if msg.err != nil {
			m.cfg.Log.Warn("content watch unavailable", "err", msg.err)
			return m, nil
		}
		return m, waitForChange(msg.changes)

	case contentChangedMsg:
		if !msg.open {
			return m, nil
		}
		m.cfg.Log.Info("content changed, reloading")
		return m, tea.Batch(m.loadContentCmd(), m.loadProjectsCmd(false), waitForChange(msg.changes))

	case spinner.TickMsg:
		var sCmd, pCmd tea.Cmd
		m.serious, sCmd = m.serious.Update(msg)
		m.playful, pCmd = m.playful.Update(msg)
		return m, tea.Batch(sCmd, pCmd)

	case components.CopiedMsg:
		m.status = components.CopyStatus(msg)
		return m.updateView(msg)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = ""
		return m, nil

	case tea.MouseMsg:
		if m.chooserOn {
			var cmd tea.Cmd
			m.chooser, cmd = m.chooser.Update(msg)
			return m, cmd
		}
		if m.shown == "" {
			return m, nil
		}
		if msg.Y == 0 {
			if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
				from, to := m.changeButtonSpan()
				if msg.X >= from && msg.X < to {
					return m, m.reopen()
				}
			}
			return m, nil
		}
		msg.Y--
		return m.updateView(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if m.chooserOn {
			if msg.String() == "q" {
				return m, m.quit()
			}
			var cmd tea.Cmd
			m.chooser, cmd = m.chooser.Update(msg)
			return m, cmd
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		case key.Matches(msg, m.keys.Change):
			return m, m.reopen()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			m.palette.SetAccent(m.side().Accent)
			cmd := m.palette.Open()
			return m, cmd
		}
		return m.updateView(msg)
	}

	// Everything else belongs to the mounted view (its own timers included).
	return m.updateView(msg)
}

// sync mounts and unmounts the chooser and the mode views to match the
// orchestrator, then keeps the frame loop alive while anything animates.
func (m Model) sync() (Model, tea.Cmd) {
	var cmds []tea.Cmd
	sized := m.width > 0 && m.height > 0

	switch want := m.orch.ChooserMounted(); {
	case want && !m.chooserOn && sized:
		m.chooser = chooser.New(m.orch.ActiveMode(), chooser.Config{
			Width:        m.width,
			Height:       m.height,
			CellWidthPx:  m.cfg.CellWidthPx,
			CellHeightPx: m.cfg.CellHeightPx,
			Now:          m.cfg.Now,
			Schedule:     m.scheduleChooser,
			Log:          m.cfg.Log.With("component", "chooser"),
		})
		m.chooserOn = true
		cmds = append(cmds, m.chooser.Init())
	case !want && m.chooserOn:
		cmds = append(cmds, m.chooser.Teardown())
		m.chooserOn = false
	}

	var target domain.Mode
	if !m.orch.Placeholder() && sized {
		target = m.orch.ActiveMode()
	}
	if target != m.shown {
		if m.shown == domain.Playful {
			m.playful = m.playful.Stop()
		}
		if target == domain.Playful {
			var cmd tea.Cmd
			m.playful, cmd = m.playful.Start()
			cmds = append(cmds, cmd)
		}
		m.shown = target
	}

	if !m.framing && m.animating() {
		m.framing = true
		cmds = append(cmds, m.cfg.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) }))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) animating() bool {
	if m.chooserOn && m.chooser.Animating() {
		return true
	}
	overlay := m.orch.Overlay()
	return overlay.HasTransition && overlay.Alpha(m.cfg.Now()) > 0
}

func (m Model) updateView(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.shown {
	case domain.Serious:
		m.serious, cmd = m.serious.Update(msg)
	case domain.Playful:
		m.playful, cmd = m.playful.Update(msg)
	}
	return m, cmd
}

func (m Model) reopen() tea.Cmd {
	return m.schedule(m.orch.Reopen())
}

func (m Model) quit() tea.Cmd {
	m.orch.Teardown()
	if m.chooserOn {
		if cmd := m.chooser.Teardown(); cmd != nil {
			return tea.Sequence(cmd, tea.Quit)
		}
	}
	return tea.Quit
}

func (m Model) schedule(tasks []sched.Task) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(tasks))
	for _, task := range tasks {
		id := task.ID
		cmds = append(cmds, m.cfg.Tick(task.Delay, func(time.Time) tea.Msg { return StepMsg{ID: id} }))
	}
	return tea.Batch(cmds...)
}

func (m Model) scheduleChooser(task sched.Task) tea.Cmd {
	id := task.ID
	return m.cfg.Tick(task.Delay, func(time.Time) tea.Msg { return chooser.TimerMsg{ID: id} })
}

func (m *Model) propagateSize() {
	h := max(m.height-2, 1)
	m.serious = m.serious.SetSize(m.width, h)
	m.playful = m.playful.SetSize(m.width, h)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	var page string
	switch {
	case m.chooserOn:
		page = m.chooser.View()
	case m.shown == "":
		page = lipgloss.NewStyle().Width(m.width).Height(m.height).Render("")
	default:
		page = m.renderPage()
	}
	return m.applyOverlay(page)
}

func (m Model) renderPage() string {
	contentH := max(m.height-2, 1)
	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Padding(1, 2).
			Render(theme.Title.Render("Keys") + "\n\n" + m.help.FullHelpView(m.keys.FullHelp()))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.shown == domain.Playful:
		content = m.playful.View()
	default:
		content = m.serious.View()
	}
	content = lipgloss.NewStyle().Width(m.width).Height(contentH).MaxHeight(contentH).Render(content)

	header, footer := "", ""
	if m.orch.ChromeVisible() {
		header = m.renderHeader()
		footer = m.renderFooter()
	} else {
		header = strings.Repeat(" ", m.width)
		footer = header
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m Model) side() theme.Side {
	return theme.For(string(m.shown))
}

func (m Model) barStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(m.side().Bar).Foreground(theme.Text)
}

func (m Model) renderHeader() string {
	p := m.profile.Profile
	left := " " + lipgloss.NewStyle().Bold(true).Render(p.Name)
	if p.Handle != "" {
		left += theme.Muted.Render("  " + p.Handle)
	}
	button := lipgloss.NewStyle().Foreground(theme.Crust).Background(m.side().Accent).Bold(true).Render(changeButton)
	left = ansi.Truncate(left, max(m.width-lipgloss.Width(button)-1, 0), "…")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(button), 0)
	return m.barStyle().Width(m.width).Render(left + strings.Repeat(" ", gap) + button)
}

// changeButtonSpan is the column range of the ⇄ button on the header row.
func (m Model) changeButtonSpan() (int, int) {
	w := runewidth.StringWidth(changeButton)
	return m.width - w, m.width
}

func (m Model) renderFooter() string {
	left := " " + theme.Muted.Render(footerText)
	if gh := m.profile.Profile.GitHub; gh != "" {
		left += theme.Muted.Render("  ·  ") + theme.Link.Render(gh)
	}
	right := theme.Muted.Render("?:help  v:change view  :::palette  q:quit ")
	if m.status != "" {
		right = theme.Hot.Render(m.status) + "  " + right
	}
	left = ansi.Truncate(left, max(m.width-lipgloss.Width(right)-1, 0), "…")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := ansi.Truncate(left+strings.Repeat(" ", gap)+right, m.width, "")
	return m.barStyle().Width(m.width).Render(line)
}

// applyOverlay draws the black layer over page. Partial alpha fades the
// page's text in from black.
func (m Model) applyOverlay(page string) string {
	alpha := m.orch.Overlay().Alpha(m.cfg.Now())
	if alpha <= 0 {
		return page
	}
	black := lipgloss.NewStyle().Background(lipgloss.Color(overlayColor))
	if alpha >= 1 {
		return black.Width(m.width).Height(m.height).Render("")
	}
	style := black.Foreground(fadeColor(alpha))
	lines := strings.Split(ansi.Strip(page), "\n")
	for i, line := range lines {
		lines[i] = style.Render(runewidth.FillRight(runewidth.Truncate(line, m.width, ""), m.width))
	}
	return strings.Join(lines, "\n")
}

func fadeColor(alpha float64) lipgloss.Color {
	black, errA := colorful.Hex(overlayColor)
	text, errB := colorful.Hex(string(theme.Text))
	if errA != nil || errB != nil {
		return theme.Text
	}
	return lipgloss.Color(black.BlendLab(text, 1-alpha).Clamped().Hex())
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "view:change":
		return m, m.reopen()
	case "projects:refresh":
		m.status = "refreshing projects"
		m.serious = m.serious.SetLoading()
		m.playful = m.playful.SetLoading()
		return m, tea.Batch(m.loadProjectsCmd(true), m.serious.Init(), m.playful.Init())
	case "copy:email":
		return m, components.CopyCmd(m.cfg.Copy, "e-mail", m.profile.Profile.Email)
	case "copy:github":
		return m, components.CopyCmd(m.cfg.Copy, "GitHub link", m.profile.Profile.GitHub)
	case "content:reload":
		m.status = "reloading content"
		return m, m.loadContentCmd()
	case "quit":
		return m, m.quit()
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadContentCmd() tea.Cmd {
	ctx, content := m.ctx, m.content
	return func() tea.Msg {
		out, err := content.Content(ctx)
		return contentLoadedMsg{content: out, err: err}
	}
}

func (m Model) loadProjectsCmd(refresh bool) tea.Cmd {
	ctx, projects := m.ctx, m.projects
	return func() tea.Msg {
		var (
			out projectsdto.ListOutput
			err error
		)
		if refresh {
			out, err = projects.Refresh(ctx)
		} else {
			out, err = projects.List(ctx)
		}
		return projectsLoadedMsg{list: out, err: err}
	}
}

func (m Model) watchCmd() tea.Cmd {
	ctx, content := m.ctx, m.content
	return func() tea.Msg {
		changes, err := content.Changes(ctx)
		return watchStartedMsg{changes: changes, err: err}
	}
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		_, open := <-changes
		return contentChangedMsg{changes: changes, open: open}
	}
}
