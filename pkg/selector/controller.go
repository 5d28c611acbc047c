// Package selector implements the interaction model of a country selection
// list: focus tracking, keyboard navigation, typeahead search with a
// debounced reset, open/close notifications and scroll-into-view requests.
//
// The controller is headless. A host (such as the terminal UI in
// internal/ui) feeds it input events and external prop changes, renders its
// state and provides a Scroller that brings a list item into view.
package selector

import (
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-logr/logr"
	"golang.org/x/text/cases"

	"github.com/oakwood-commons/dialsel/pkg/country"
	"github.com/oakwood-commons/dialsel/pkg/directory"
)

// DefaultSearchDebounce is the inactivity window after which the typeahead
// buffer is cleared.
const DefaultSearchDebounce = 1500 * time.Millisecond

// DefaultDialCodePrefix is rendered ahead of every dial code.
const DefaultDialCodePrefix = "+"

// Command is a discrete keyboard command.
type Command int

const (
	CommandNone Command = iota
	CommandUp
	CommandDown
	CommandPageUp
	CommandPageDown
	CommandHome
	CommandEnd
	CommandEnter
	CommandEscape
)

var commandNames = map[Command]string{
	CommandNone:     "none",
	CommandUp:       "up",
	CommandDown:     "down",
	CommandPageUp:   "page_up",
	CommandPageDown: "page_down",
	CommandHome:     "home",
	CommandEnd:      "end",
	CommandEnter:    "enter",
	CommandEscape:   "escape",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return "unknown"
}

// Scroller brings the list item at index into view within its container.
type Scroller interface {
	ScrollIntoView(index int)
}

// ScrollerFunc adapts a function to Scroller.
type ScrollerFunc func(index int)

// ScrollIntoView implements Scroller.
func (f ScrollerFunc) ScrollIntoView(index int) { f(index) }

// Options configures a Controller.
type Options struct {
	// SelectedCountry is the iso2 of the externally selected country.
	SelectedCountry string
	// Show is the initial visibility.
	Show bool
	// Countries overrides the default directory.
	Countries *directory.Directory
	// DialCodePrefix is rendered ahead of dial codes. Nil means "+"; an
	// empty string suppresses the prefix.
	DialCodePrefix *string
	OnSelect       func(country.Country)
	OnClose        func()
	Scroller       Scroller
	// Scheduler runs the typeahead reset. Defaults to RealScheduler.
	Scheduler Scheduler
	// SearchDebounce defaults to DefaultSearchDebounce.
	SearchDebounce time.Duration
	Logger         *logr.Logger
}

// State is a consistent copy of the controller state for rendering.
type State struct {
	Focused  int // -1 when the directory is empty
	Selected string
	Search   string
	Visible  bool
}

// Controller is the selection list state machine. All methods are safe for
// concurrent use; callbacks run after internal locks are released, so they
// may call back into the controller.
type Controller struct {
	mu sync.Mutex

	dir      *directory.Directory
	names    []string // folded names for typeahead
	prefix   string
	selected string
	visible  bool
	focused  int

	search   string
	timer    Timer
	timerGen uint64

	// lastScrolled is the index of the last scroll request, -1 before the first.
	lastScrolled int
	// hiddenSelected and hiddenDir hold the inputs at the time the list was
	// hidden; showing it again scrolls only when they changed.
	hiddenSelected string
	hiddenDir      *directory.Directory
	closed         bool

	fold      cases.Caser
	onSelect  func(country.Country)
	onClose   func()
	scroller  Scroller
	scheduler Scheduler
	debounce  time.Duration
	log       logr.Logger
}

// effects are side effects collected under the lock and run after it is released.
type effects []func()

// New builds a controller. When opts.Show is set the initial focus is
// derived and scrolled into view immediately.
func New(opts Options) *Controller {
	c := &Controller{
		selected:     normalizeISO2(opts.SelectedCountry),
		prefix:       DefaultDialCodePrefix,
		focused:      -1,
		lastScrolled: -1,
		fold:         cases.Fold(),
		onSelect:     opts.OnSelect,
		onClose:      opts.OnClose,
		scroller:     opts.Scroller,
		scheduler:    opts.Scheduler,
		debounce:     opts.SearchDebounce,
		log:          logr.Discard(),
	}
	if opts.DialCodePrefix != nil {
		c.prefix = *opts.DialCodePrefix
	}
	if c.scheduler == nil {
		c.scheduler = RealScheduler{}
	}
	if c.debounce <= 0 {
		c.debounce = DefaultSearchDebounce
	}
	if opts.Logger != nil {
		c.log = opts.Logger.WithName("selector")
	}
	dir := opts.Countries
	if dir == nil {
		dir = directory.Default()
	}

	c.mu.Lock()
	c.setDirectoryLocked(dir)
	var fx effects
	if opts.Show {
		c.visible = true
		fx = c.refocusLocked(true)
	}
	c.mu.Unlock()
	fx.run()
	return c
}

// Handle applies a keyboard command and reports whether it was consumed.
// Commands are ignored while the list is hidden.
func (c *Controller) Handle(cmd Command) bool {
	c.mu.Lock()
	if !c.visible || c.closed {
		c.mu.Unlock()
		return false
	}
	var fx effects
	consumed := true
	last := c.dir.Len() - 1
	switch cmd {
	case CommandUp:
		fx = c.moveFocusLocked(max(c.focused-1, 0))
	case CommandDown:
		fx = c.moveFocusLocked(min(c.focused+1, last))
	case CommandPageUp, CommandHome:
		fx = c.moveFocusLocked(0)
	case CommandPageDown, CommandEnd:
		fx = c.moveFocusLocked(last)
	case CommandEnter:
		if f, ok := c.dir.At(c.focused); ok {
			fx = c.selectLocked(f)
		}
	case CommandEscape:
		fx = c.closeLocked("escape")
	default:
		consumed = false
	}
	c.mu.Unlock()
	fx.run()
	return consumed
}

// Type feeds a printable character into the typeahead search. The buffer
// is matched case-insensitively against country name prefixes and focus
// moves to the first match in directory order. Every character restarts
// the reset timer.
func (c *Controller) Type(r rune) bool {
	if !unicode.IsPrint(r) {
		return false
	}
	c.mu.Lock()
	if !c.visible || c.closed {
		c.mu.Unlock()
		return false
	}
	c.search += c.fold.String(string(r))
	c.restartTimerLocked()

	var fx effects
	if idx := c.matchLocked(c.search); idx >= 0 {
		fx = c.moveFocusLocked(idx)
	}
	c.log.V(1).Info("typeahead", "buffer", c.search, "focused", c.focused)
	c.mu.Unlock()
	fx.run()
	return true
}

// Click selects the item at index irrespective of the current focus.
func (c *Controller) Click(index int) {
	c.mu.Lock()
	var fx effects
	if c.visible && !c.closed {
		if item, ok := c.dir.At(index); ok {
			fx = c.selectLocked(item)
		}
	}
	c.mu.Unlock()
	fx.run()
}

// Blur reports that input focus left the list. A visible list closes.
func (c *Controller) Blur() {
	c.mu.Lock()
	var fx effects
	if c.visible && !c.closed {
		fx = c.closeLocked("blur")
	}
	c.mu.Unlock()
	fx.run()
}

// SetSelected updates the externally selected country. A distinct value
// re-derives focus; while visible it is scrolled into view once, while
// hidden the scroll is deferred until the list is shown.
func (c *Controller) SetSelected(iso2 string) {
	iso2 = normalizeISO2(iso2)
	c.mu.Lock()
	if iso2 == c.selected {
		c.mu.Unlock()
		return
	}
	c.selected = iso2
	var fx effects
	if c.visible && !c.closed {
		fx = c.refocusLocked(true)
	}
	c.mu.Unlock()
	fx.run()
}

// SetVisible shows or hides the list. Hiding cancels the pending search
// reset; showing re-derives focus from the selected country.
func (c *Controller) SetVisible(visible bool) {
	c.mu.Lock()
	if visible == c.visible || c.closed {
		c.mu.Unlock()
		return
	}
	c.visible = visible
	var fx effects
	if visible {
		c.search = ""
		changed := c.selected != c.hiddenSelected || c.dir != c.hiddenDir
		fx = c.refocusLocked(changed || c.lastScrolled < 0)
	} else {
		c.hiddenSelected, c.hiddenDir = c.selected, c.dir
		c.stopTimerLocked()
	}
	c.mu.Unlock()
	fx.run()
}

// SetCountries swaps the directory and re-derives focus. A visible list
// scrolls the new focus into view once.
func (c *Controller) SetCountries(dir *directory.Directory) {
	if dir == nil {
		dir = directory.Default()
	}
	c.mu.Lock()
	if dir == c.dir || c.closed {
		c.mu.Unlock()
		return
	}
	c.setDirectoryLocked(dir)
	c.search = ""
	c.stopTimerLocked()
	var fx effects
	if c.visible {
		fx = c.refocusLocked(true)
	}
	c.mu.Unlock()
	fx.run()
}

// Close cancels any pending timer. The controller ignores input afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
	c.closed = true
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Focused: c.focused, Selected: c.selected, Search: c.search, Visible: c.visible}
}

// Focused returns the focused country and its index.
func (c *Controller) Focused() (country.Country, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.dir.At(c.focused)
	if !ok {
		return country.Country{}, -1, false
	}
	return item, c.focused, true
}

// Selected returns the iso2 of the selected country.
func (c *Controller) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// IsFocused reports whether the item at index has keyboard focus.
func (c *Controller) IsFocused(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return index >= 0 && index == c.focused
}

// IsSelected reports whether the item at index is the selected country.
func (c *Controller) IsSelected(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.dir.At(index)
	return ok && strings.EqualFold(item.ISO2, c.selected)
}

// SearchBuffer returns the current typeahead buffer.
func (c *Controller) SearchBuffer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// Visible reports whether the list is shown.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Countries returns the directory in use.
func (c *Controller) Countries() *directory.Directory {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dir
}

// DialCodePrefix returns the prefix rendered ahead of dial codes.
func (c *Controller) DialCodePrefix() string {
	return c.prefix
}

// Label renders a dial code with the configured prefix.
func (c *Controller) Label(item country.Country) string {
	return c.prefix + item.DialCode
}

func (c *Controller) setDirectoryLocked(dir *directory.Directory) {
	c.dir = dir
	c.names = make([]string, 0, dir.Len())
	for _, item := range dir.All() {
		c.names = append(c.names, c.fold.String(item.Name))
	}
}

// refocusLocked derives focus from the selected country (index 0 when it is
// not listed). force requests a scroll even when the index is unchanged.
func (c *Controller) refocusLocked(force bool) effects {
	idx := c.dir.IndexOfISO2(c.selected)
	if idx < 0 && c.dir.Len() > 0 {
		idx = 0
	}
	c.focused = idx
	if idx < 0 {
		return nil
	}
	if !force && idx == c.lastScrolled {
		return nil
	}
	return c.scrollLocked(idx)
}

func (c *Controller) moveFocusLocked(idx int) effects {
	if idx < 0 || idx >= c.dir.Len() || idx == c.focused {
		return nil
	}
	c.focused = idx
	return c.scrollLocked(idx)
}

func (c *Controller) scrollLocked(idx int) effects {
	c.lastScrolled = idx
	c.log.V(1).Info("scroll into view", "index", idx)
	if c.scroller == nil {
		return nil
	}
	s := c.scroller
	return effects{func() { s.ScrollIntoView(idx) }}
}

func (c *Controller) selectLocked(item country.Country) effects {
	c.log.V(1).Info("select", "iso2", item.ISO2)
	if c.onSelect == nil {
		return nil
	}
	fn := c.onSelect
	return effects{func() { fn(item) }}
}

func (c *Controller) closeLocked(reason string) effects {
	c.log.V(1).Info("close", "reason", reason)
	if c.onClose == nil {
		return nil
	}
	return effects{c.onClose}
}

func (c *Controller) matchLocked(prefix string) int {
	for i, name := range c.names {
		if strings.HasPrefix(name, prefix) {
			return i
		}
	}
	return -1
}

func (c *Controller) restartTimerLocked() {
	c.stopTimerLocked()
	gen := c.timerGen
	c.timer = c.scheduler.AfterFunc(c.debounce, func() { c.expireSearch(gen) })
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	// Invalidate callbacks that already fired but have not taken the lock yet.
	c.timerGen++
}

func (c *Controller) expireSearch(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.timerGen {
		return
	}
	c.search = ""
	c.timer = nil
}

func (fx effects) run() {
	for _, f := range fx {
		f()
	}
}

func normalizeISO2(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
