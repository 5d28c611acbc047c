// Package ui implements the Bubble Tea country picker on top of the
// headless selection controller.
package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/dialsel/pkg/country"
	"github.com/oakwood-commons/dialsel/pkg/directory"
	"github.com/oakwood-commons/dialsel/pkg/selector"
)

const (
	// DefaultListHeight is the number of list rows shown when unconfigured.
	DefaultListHeight = 12
	// chromeLines is the title line plus the help footer.
	chromeLines  = 2
	listTop      = 1
	maxNameWidth = 36
	rowGutter    = 4 // cursor and selection marker
)

// Config configures a picker Model.
type Config struct {
	Countries      *directory.Directory
	Selected       string
	DialCodePrefix *string
	KeyMode        KeyMode
	Theme          *Theme
	NoColor        bool
	Title          string
	// Height is the number of list rows; 0 uses DefaultListHeight. A smaller
	// terminal shrinks it.
	Height         int
	SearchDebounce time.Duration
	Scheduler      selector.Scheduler
	Logger         *logr.Logger
}

// searchExpiredMsg re-renders the view once the typeahead window elapses.
type searchExpiredMsg struct {
	token int
}

// Model is the picker program state.
type Model struct {
	ctrl   *selector.Controller
	vp     *Viewport
	keys   KeyMap
	help   help.Model
	styles styles

	title     string
	noColor   bool
	rows      int
	width     int
	height    int
	nameWidth int
	debounce  time.Duration

	manual      *selector.ManualScheduler
	searchToken int
	chosen      *country.Country
	closed      bool
	done        bool
}

// NewModel builds a picker. The list is shown immediately with the
// selected country focused and scrolled into view.
func NewModel(cfg Config) *Model {
	dir := cfg.Countries
	if dir == nil {
		dir = directory.Default()
	}
	th := DefaultTheme()
	if cfg.Theme != nil {
		th = *cfg.Theme
	}
	rows := cfg.Height
	if rows <= 0 {
		rows = DefaultListHeight
	}
	debounce := cfg.SearchDebounce
	if debounce <= 0 {
		debounce = selector.DefaultSearchDebounce
	}
	title := strings.TrimSpace(cfg.Title)
	if title == "" {
		title = "Select a country"
	}

	m := &Model{
		vp:       &Viewport{Height: rows, Len: dir.Len()},
		keys:     NewKeyMap(cfg.KeyMode),
		help:     help.New(),
		styles:   newStyles(th, cfg.NoColor),
		title:    title,
		noColor:  cfg.NoColor,
		rows:     rows,
		debounce: debounce,
	}
	if cfg.NoColor {
		m.help.Styles = help.Styles{}
	}
	if ms, ok := cfg.Scheduler.(*selector.ManualScheduler); ok {
		m.manual = ms
	}
	for _, c := range dir.All() {
		m.nameWidth = max(m.nameWidth, runewidth.StringWidth(c.Name))
	}
	m.nameWidth = min(m.nameWidth, maxNameWidth)

	m.ctrl = selector.New(selector.Options{
		SelectedCountry: cfg.Selected,
		Show:            true,
		Countries:       dir,
		DialCodePrefix:  cfg.DialCodePrefix,
		OnSelect:        m.onSelect,
		OnClose:         m.onClose,
		Scroller:        m.vp,
		Scheduler:       cfg.Scheduler,
		SearchDebounce:  debounce,
		Logger:          cfg.Logger,
	})
	return m
}

func (m *Model) onSelect(c country.Country) {
	m.chosen = &c
	m.done = true
	m.ctrl.SetSelected(c.ISO2)
}

func (m *Model) onClose() {
	m.closed = true
	m.done = true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

	case tea.KeyPressMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.done = true
			return m, tea.Quit
		}
		if c := m.keys.Command(msg); c != selector.CommandNone {
			m.ctrl.Handle(c)
			break
		}
		if text := typedText(msg); text != "" {
			typed := false
			for _, r := range text {
				typed = m.ctrl.Type(r) || typed
			}
			if typed {
				m.searchToken++
				cmd = searchTick(m.searchToken, m.debounce)
			}
		}

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button == tea.MouseLeft {
			if idx := m.vp.IndexAt(mouse.Y - listTop); idx >= 0 {
				m.ctrl.Click(idx)
			}
		}

	case tea.BlurMsg:
		m.ctrl.Blur()

	case searchExpiredMsg:
		// Only the newest tick redraws; earlier ones were superseded by typing.
		if msg.token != m.searchToken {
			return m, nil
		}
	}

	if m.done {
		return m, tea.Quit
	}
	return m, cmd
}

// typedText returns the printable text of a key press; chords yield "".
func typedText(msg tea.KeyPressMsg) string {
	if msg.Mod&^tea.ModShift != 0 {
		return ""
	}
	return msg.Text
}

func searchTick(token int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return searchExpiredMsg{token: token}
	})
}

func (m *Model) resize() {
	rows := m.rows
	if m.height > 0 {
		rows = min(rows, m.height-chromeLines)
	}
	_, focused, _ := m.ctrl.Focused()
	m.vp.SetHeight(rows, focused)
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true
	return v
}

// Render draws the picker as plain text lines.
func (m *Model) Render() string {
	st := m.ctrl.State()
	var b strings.Builder

	b.WriteString(m.styles.title.Render(m.title))
	if st.Search != "" {
		b.WriteString("  ")
		b.WriteString(m.styles.search.Render(fmt.Sprintf("search: %s", st.Search)))
	}
	b.WriteString("\n")

	dir := m.ctrl.Countries()
	if dir.Len() == 0 {
		b.WriteString(m.styles.muted.Render("no countries"))
		b.WriteString("\n")
	}
	nameWidth := m.nameWidth
	if m.width > 0 {
		nameWidth = max(min(nameWidth, m.width-rowGutter-m.labelWidth(dir)-1), 1)
	}
	start, end := m.vp.Visible()
	for i := start; i < end; i++ {
		c, _ := dir.At(i)
		b.WriteString(m.renderRow(c, i == st.Focused, strings.EqualFold(c.ISO2, st.Selected), nameWidth))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.muted.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return b.String()
}

func (m *Model) labelWidth(dir *directory.Directory) int {
	w := 0
	for _, c := range dir.All() {
		w = max(w, runewidth.StringWidth(m.ctrl.Label(c)))
	}
	return w
}

func (m *Model) renderRow(c country.Country, focused, selected bool, nameWidth int) string {
	cursor := "  "
	if focused {
		cursor = "› "
	}
	mark := "  "
	if selected {
		mark = "✓ "
	}
	name := runewidth.FillRight(runewidth.Truncate(c.Name, nameWidth, "…"), nameWidth)
	label := m.ctrl.Label(c)

	if focused {
		return m.styles.focused.Render(cursor + mark + name + " " + label)
	}
	if selected {
		name = m.styles.selected.Render(name)
	}
	return cursor + mark + name + " " + m.styles.dial.Render(label)
}

// Chosen returns the country picked with enter or a click.
func (m *Model) Chosen() (country.Country, bool) {
	if m.chosen == nil {
		return country.Country{}, false
	}
	return *m.chosen, true
}

// Closed reports whether the list was dismissed without a choice.
func (m *Model) Closed() bool { return m.closed }

// Done reports whether the program should exit.
func (m *Model) Done() bool { return m.done }

// Controller exposes the underlying selection controller.
func (m *Model) Controller() *selector.Controller { return m.ctrl }

// Viewport exposes the list window.
func (m *Model) Viewport() *Viewport { return m.vp }

// Stop releases the controller's pending timer.
func (m *Model) Stop() { m.ctrl.Close() }
