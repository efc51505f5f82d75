// Package tui provides the interactive terminal browser.
package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/otaku/internal/catalog"
	"github.com/lepinkainen/otaku/internal/session"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(p *tea.Program) (tea.Model, error) {
	return p.Run()
}

// Controller is the part of *session.Session the browser drives.
type Controller interface {
	Subscribe(fn func(session.Snapshot)) func()
	Snapshot() session.Snapshot
	LoadCurated()
	SetQuery(query string)
	SetYearMin(year int)
	SetYearMax(year int)
	SetStatus(status catalog.StatusFilter)
	SetGenre(genre string)
	SetRatingMin(rating float64)
	SetSort(sort catalog.Sort)
	SetScope(scope catalog.Scope)
	Apply()
	NextPage()
	PrevPage()
	Clear()
	Close()
}

// snapshotMsg carries a session state change into the program.
type snapshotMsg session.Snapshot

const (
	inputQuery = iota
	inputYearMin
	inputYearMax
	inputCount
)

// ratingSteps are the minimum score choices; 0 means any.
var ratingSteps = []float64{0, 5, 6, 7, 8, 9}

type model struct {
	ctrl Controller
	snap session.Snapshot

	inputs  [inputCount]textinput.Model
	focus   int
	spinner spinner.Model
	list    list.Model

	genres []string // "all" followed by the genre names
	scope  int
	status int
	genre  int
	sort   int
	rating int

	width int
}

func newModel(ctrl Controller, genres []string) *model {
	var inputs [inputCount]textinput.Model
	for i := range inputs {
		in := textinput.New()
		in.Prompt = ""
		switch i {
		case inputQuery:
			in.Placeholder = "Search anime and manga..."
			in.Width = 40
		case inputYearMin:
			in.Placeholder = "from"
			in.CharLimit = 4
			in.Width = 4
		case inputYearMax:
			in.Placeholder = "to"
			in.CharLimit = 4
			in.Width = 4
		}
		inputs[i] = in
	}
	inputs[inputQuery].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	l := list.New(nil, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		ctrl:    ctrl,
		snap:    ctrl.Snapshot(),
		inputs:  inputs,
		spinner: sp,
		list:    l,
		genres:  append([]string{catalog.AllValues}, genres...),
		width:   defaultListWidth,
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		func() tea.Msg {
			m.ctrl.LoadCurated()
			return nil
		},
	)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.applySnapshot(session.Snapshot(msg))
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-12, 5)
		m.list.SetSize(m.width, height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.setFocus((m.focus + 1) % inputCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + inputCount - 1) % inputCount)
		return m, nil
	case "ctrl+t":
		m.scope = (m.scope + 1) % len(catalog.Scopes)
		m.ctrl.SetScope(catalog.Scopes[m.scope])
		return m, nil
	case "ctrl+s":
		m.status = (m.status + 1) % len(catalog.StatusFilters)
		m.ctrl.SetStatus(catalog.StatusFilters[m.status])
		return m, nil
	case "ctrl+g":
		m.genre = (m.genre + 1) % len(m.genres)
		m.ctrl.SetGenre(m.genres[m.genre])
		return m, nil
	case "ctrl+r":
		m.rating = (m.rating + 1) % len(ratingSteps)
		m.ctrl.SetRatingMin(ratingSteps[m.rating])
		return m, nil
	case "ctrl+o":
		m.sort = (m.sort + 1) % len(catalog.Sorts)
		m.ctrl.SetSort(catalog.Sorts[m.sort])
		return m, nil
	case "pgdown":
		m.ctrl.NextPage()
		return m, nil
	case "pgup":
		m.ctrl.PrevPage()
		return m, nil
	case "up":
		m.list.CursorUp()
		return m, nil
	case "down":
		m.list.CursorDown()
		return m, nil
	case "enter":
		m.ctrl.Apply()
		return m, nil
	case "esc":
		m.reset()
		m.ctrl.Clear()
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.inputChanged(m.focus, after)
	}
	return m, cmd
}

func (m *model) inputChanged(which int, value string) {
	if which == inputQuery {
		m.ctrl.SetQuery(value)
		return
	}

	year, ok := parseYear(value)
	if !ok {
		return
	}
	if which == inputYearMin {
		m.ctrl.SetYearMin(year)
	} else {
		m.ctrl.SetYearMax(year)
	}
}

// parseYear accepts an empty field (no bound) or a number.
func parseYear(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, true
	}
	year, err := strconv.Atoi(value)
	if err != nil || year < 0 {
		return 0, false
	}
	return year, true
}

func (m *model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *model) reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.scope, m.status, m.genre, m.sort, m.rating = 0, 0, 0, 0, 0
	m.setFocus(inputQuery)
}

// applySnapshot keeps the newest snapshot; deliveries from concurrent
// fetches can arrive out of order.
func (m *model) applySnapshot(snap session.Snapshot) {
	if snap.Version < m.snap.Version {
		return
	}
	m.snap = snap
	if snap.State == session.Ready {
		m.list.SetItems(entries(snap))
		m.list.Select(0)
	}
}

// entries lists the cards of a ready snapshot.
func entries(snap session.Snapshot) []list.Item {
	var out []list.Item
	if snap.View == session.ViewSearch {
		for _, item := range snap.Page.Items {
			out = append(out, entry{Item: item})
		}
		return out
	}

	for _, section := range curatedSections(snap) {
		for _, item := range section.items {
			out = append(out, entry{Item: item, Section: section.title})
		}
	}
	return out
}

func (m *model) View() string {
	sections := []string{
		headerStyle.Render("otaku"),
		m.renderInputs(),
		m.renderControls(),
		statsStyle.Render(renderStats(m.snap)),
		m.renderBody(),
	}
	if m.snap.View == session.ViewSearch && m.snap.State == session.Ready {
		sections = append(sections, pagerStyle.Render(renderPager(m.snap.Page.CurrentPage, m.snap.Page.LastPage)))
	}
	sections = append(sections, helpStyle.Render(helpText))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *model) renderInputs() string {
	labels := [inputCount]string{"Search", "Year", "-"}
	parts := make([]string, 0, inputCount*2)
	for i, in := range m.inputs {
		style := labelStyle
		if i == m.focus {
			style = focusedLabelStyle
		}
		parts = append(parts, style.Render(labels[i]), in.View())
	}
	return strings.Join(parts, " ")
}

func (m *model) renderControls() string {
	rating := "any"
	if r := ratingSteps[m.rating]; r > 0 {
		rating = strconv.FormatFloat(r, 'f', -1, 64) + "+"
	}
	controls := []string{
		"Type: " + string(catalog.Scopes[m.scope]),
		"Status: " + string(catalog.StatusFilters[m.status]),
		"Genre: " + m.genres[m.genre],
		"Rating: " + rating,
		"Sort: " + string(catalog.Sorts[m.sort]),
	}
	return controlStyle.Render(strings.Join(controls, "  "))
}

func (m *model) renderBody() string {
	switch m.snap.State {
	case session.Idle:
		return ""
	case session.Loading:
		return m.spinner.View() + " Loading...\n" + renderPlaceholders(m.snap, m.width)
	case session.Error:
		return errorStyle.Render("Error: " + errText(m.snap.Err))
	}

	if len(m.list.Items()) == 0 {
		return emptyStyle.Render("No results. Try a different query or fewer filters.")
	}
	return m.list.View()
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

const helpText = "Tab field | ^T type | ^S status | ^G genre | ^R rating | ^O sort | PgUp/PgDn page | Enter apply | Esc clear | ^C quit"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).MarginBottom(1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

	controlStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))

	statsStyle = lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("178"))

	pagerStyle = lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("252"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("161")).Bold(true)

	skeletonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("247")).Faint(true)

	helpStyle = lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("244"))
)

// Run starts the interactive browser over ctrl and blocks until the user
// quits. ctrl is closed on return.
func Run(ctrl Controller, genres []string) error {
	m := newModel(ctrl, genres)
	p := tea.NewProgram(m, tea.WithAltScreen())

	unsubscribe := ctrl.Subscribe(func(snap session.Snapshot) {
		p.Send(snapshotMsg(snap))
	})
	defer unsubscribe()
	defer ctrl.Close()

	_, err := runProgram(p)
	return err
}
