package selector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dialsel/pkg/country"
	"github.com/oakwood-commons/dialsel/pkg/directory"
)

type scrollRecorder struct {
	calls []int
}

func (r *scrollRecorder) ScrollIntoView(index int) { r.calls = append(r.calls, index) }

type fixture struct {
	c        *Controller
	sched    *ManualScheduler
	scroll   *scrollRecorder
	selected []country.Country
	closed   int
}

func newFixture(t *testing.T, selected string, mutate ...func(*Options)) *fixture {
	t.Helper()
	f := &fixture{sched: NewManualScheduler(), scroll: &scrollRecorder{}}
	opts := Options{
		SelectedCountry: selected,
		Show:            true,
		Scroller:        f.scroll,
		Scheduler:       f.sched,
		OnSelect:        func(c country.Country) { f.selected = append(f.selected, c) },
		OnClose:         func() { f.closed++ },
	}
	for _, m := range mutate {
		m(&opts)
	}
	f.c = New(opts)
	t.Cleanup(f.c.Close)
	return f
}

func (f *fixture) focusedISO2(t *testing.T) string {
	t.Helper()
	c, _, ok := f.c.Focused()
	require.True(t, ok)
	return c.ISO2
}

func (f *fixture) typeString(s string) {
	for _, r := range s {
		f.c.Type(r)
	}
}

func TestInitialFocusFollowsSelectedCountry(t *testing.T) {
	f := newFixture(t, "us")
	assert.Equal(t, "us", f.focusedISO2(t))
	assert.Len(t, f.scroll.calls, 1)
	assert.Equal(t, directory.Default().IndexOfISO2("us"), f.scroll.calls[0])
}

func TestInitialFocusDefaultsToFirst(t *testing.T) {
	f := newFixture(t, "zz")
	_, idx, ok := f.c.Focused()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Len(t, f.scroll.calls, 1)
}

func TestHiddenMountDoesNotScroll(t *testing.T) {
	f := newFixture(t, "us", func(o *Options) { o.Show = false })
	assert.Empty(t, f.scroll.calls)
	assert.False(t, f.c.Handle(CommandDown))
	assert.False(t, f.c.Type('u'))

	f.c.SetVisible(true)
	assert.Equal(t, "us", f.focusedISO2(t))
	assert.Len(t, f.scroll.calls, 1)
}

func TestArrowNavigation(t *testing.T) {
	f := newFixture(t, "us")
	f.c.Handle(CommandUp)
	f.c.Handle(CommandUp)
	f.c.Handle(CommandUp)
	assert.Equal(t, "ua", f.focusedISO2(t))
	assert.Equal(t, "us", f.c.Selected(), "moving focus does not change the selection")

	f.c.Handle(CommandEnter)
	require.Len(t, f.selected, 1)
	assert.Equal(t, "Ukraine", f.selected[0].Name)

	f.c.SetSelected("ua")
	f.c.Handle(CommandDown)
	f.c.Handle(CommandDown)
	assert.Equal(t, "gb", f.focusedISO2(t))

	f.c.Handle(CommandEnter)
	require.Len(t, f.selected, 2)
	assert.Equal(t, "United Kingdom", f.selected[1].Name)
}

func TestArrowUpNineteenTimes(t *testing.T) {
	f := newFixture(t, "us")
	for range 19 {
		f.c.Handle(CommandUp)
	}
	assert.Equal(t, "se", f.focusedISO2(t))
}

func TestNavigationClamps(t *testing.T) {
	f := newFixture(t, "af")
	_, idx, _ := f.c.Focused()
	require.Equal(t, 0, idx)

	assert.True(t, f.c.Handle(CommandUp))
	_, idx, _ = f.c.Focused()
	assert.Equal(t, 0, idx)
	assert.Len(t, f.scroll.calls, 1, "a clamped move is not a focus change")

	f.c.Handle(CommandPageDown)
	_, idx, _ = f.c.Focused()
	last := directory.Default().Len() - 1
	assert.Equal(t, last, idx)
	assert.Equal(t, "zw", f.focusedISO2(t))

	f.c.Handle(CommandDown)
	_, idx, _ = f.c.Focused()
	assert.Equal(t, last, idx)
	assert.Len(t, f.scroll.calls, 2)
}

func TestPageKeys(t *testing.T) {
	f := newFixture(t, "us")
	f.c.Handle(CommandPageUp)
	assert.Equal(t, "af", f.focusedISO2(t))
	f.c.Handle(CommandPageDown)
	assert.Equal(t, "zw", f.focusedISO2(t))
	f.c.Handle(CommandHome)
	assert.Equal(t, "af", f.focusedISO2(t))
	f.c.Handle(CommandEnd)
	assert.Equal(t, "zw", f.focusedISO2(t))
}

func TestUnknownCommandNotConsumed(t *testing.T) {
	f := newFixture(t, "us")
	assert.False(t, f.c.Handle(CommandNone))
	assert.False(t, f.c.Handle(Command(99)))
}

func TestEnterAndEscapeNotifyOnce(t *testing.T) {
	f := newFixture(t, "ua")
	f.c.Handle(CommandEnter)
	require.Len(t, f.selected, 1)
	assert.Equal(t, "Ukraine", f.selected[0].Name)

	f.c.Handle(CommandEscape)
	assert.Equal(t, 1, f.closed)
}

func TestMissingCallbacksAreNoops(t *testing.T) {
	c := New(Options{SelectedCountry: "ua", Show: true, Scheduler: NewManualScheduler()})
	defer c.Close()
	assert.NotPanics(t, func() {
		c.Handle(CommandEnter)
		c.Handle(CommandEscape)
		c.Click(3)
		c.Blur()
	})
	assert.True(t, c.Visible())
}

func TestClickSelectsRegardlessOfFocus(t *testing.T) {
	f := newFixture(t, "us")
	idx := directory.Default().IndexOfISO2("ua")
	f.c.Click(idx)
	require.Len(t, f.selected, 1)
	assert.Equal(t, "ua", f.selected[0].ISO2)
	assert.Equal(t, "us", f.focusedISO2(t))

	f.c.Click(-1)
	f.c.Click(directory.Default().Len())
	assert.Len(t, f.selected, 1)
}

func TestBlurClosesOnlyWhenVisible(t *testing.T) {
	f := newFixture(t, "us")
	f.c.Blur()
	assert.Equal(t, 1, f.closed)

	f.c.SetVisible(false)
	f.c.Blur()
	assert.Equal(t, 1, f.closed)
}

func TestTypeaheadFindsPrefix(t *testing.T) {
	f := newFixture(t, "us")
	f.typeString("ukr")
	assert.Equal(t, "ua", f.focusedISO2(t))
	assert.Equal(t, "us", f.c.Selected())
	assert.Equal(t, "ukr", f.c.SearchBuffer())
}

func TestTypeaheadIsCaseInsensitive(t *testing.T) {
	f := newFixture(t, "us")
	f.typeString("UKR")
	assert.Equal(t, "ua", f.focusedISO2(t))

	f.sched.Advance(DefaultSearchDebounce)
	f.typeString("côte")
	assert.Equal(t, "ci", f.focusedISO2(t))
}

func TestTypeaheadBufferResetsAfterDebounce(t *testing.T) {
	f := newFixture(t, "us")
	f.typeString("i")
	assert.Equal(t, "is", f.focusedISO2(t))

	f.sched.Advance(1500 * time.Millisecond)
	assert.Empty(t, f.c.SearchBuffer())

	f.typeString("united kin")
	assert.Equal(t, "gb", f.focusedISO2(t))
}

func TestTypeaheadKeystrokeRestartsTimer(t *testing.T) {
	f := newFixture(t, "us")
	f.typeString("u")
	f.sched.Advance(1000 * time.Millisecond)
	f.typeString("k")
	f.sched.Advance(1000 * time.Millisecond)
	assert.Equal(t, "uk", f.c.SearchBuffer(), "second keystroke restarted the window")
	assert.Equal(t, 1, f.sched.Pending(), "at most one pending reset")

	f.sched.Advance(500 * time.Millisecond)
	assert.Empty(t, f.c.SearchBuffer())
	assert.Equal(t, 0, f.sched.Pending())
}

func TestTypeaheadWithoutMatchKeepsFocus(t *testing.T) {
	f := newFixture(t, "us")
	f.typeString("xyz")
	assert.Equal(t, "us", f.focusedISO2(t))
	assert.Len(t, f.scroll.calls, 1)
}

func TestTypeaheadIgnoresNonPrintable(t *testing.T) {
	f := newFixture(t, "us")
	assert.False(t, f.c.Type('\n'))
	assert.False(t, f.c.Type(0x1b))
	assert.Empty(t, f.c.SearchBuffer())
}

func TestCustomDebounce(t *testing.T) {
	f := newFixture(t, "us", func(o *Options) { o.SearchDebounce = 200 * time.Millisecond })
	f.typeString("u")
	f.sched.Advance(199 * time.Millisecond)
	assert.Equal(t, "u", f.c.SearchBuffer())
	f.sched.Advance(time.Millisecond)
	assert.Empty(t, f.c.SearchBuffer())
}

func TestHidingCancelsPendingReset(t *testing.T) {
	f := newFixture(t, "us")
	f.typeString("uk")
	require.Equal(t, 1, f.sched.Pending())

	f.c.SetVisible(false)
	assert.Equal(t, 0, f.sched.Pending())
	assert.Equal(t, "uk", f.c.SearchBuffer(), "state is preserved while hidden")
	assert.Equal(t, "ua", f.focusedISO2(t))

	f.c.SetVisible(true)
	assert.Empty(t, f.c.SearchBuffer())
	assert.Equal(t, "us", f.focusedISO2(t), "focus is re-derived on show")
}

func TestCloseCancelsPendingReset(t *testing.T) {
	f := newFixture(t, "us")
	f.typeString("u")
	f.c.Close()
	assert.Equal(t, 0, f.sched.Pending())
	assert.False(t, f.c.Type('k'))
	assert.False(t, f.c.Handle(CommandDown))
}

func TestStaleTimerCallbackIgnored(t *testing.T) {
	f := newFixture(t, "us")
	var fire func()
	f.c.scheduler = schedulerFunc(func(_ time.Duration, fn func()) Timer {
		fire = fn
		return stoppedTimer{}
	})
	f.typeString("u")
	first := fire
	f.typeString("k")
	first()
	assert.Equal(t, "uk", f.c.SearchBuffer(), "a superseded reset must not clear the buffer")
	fire()
	assert.Empty(t, f.c.SearchBuffer())
}

func TestScrollCountsAcrossInteractions(t *testing.T) {
	f := newFixture(t, "ua")
	require.Len(t, f.scroll.calls, 1)

	f.c.SetSelected("us")
	assert.Len(t, f.scroll.calls, 2)

	f.c.SetSelected("us")
	assert.Len(t, f.scroll.calls, 2, "same selection does not scroll again")

	f.c.SetVisible(false)
	f.c.SetVisible(true)
	assert.Len(t, f.scroll.calls, 2, "toggling visibility with the same selection does not scroll")

	f.c.Handle(CommandUp)
	f.c.Handle(CommandPageUp)
	f.typeString("ukr")
	assert.Len(t, f.scroll.calls, 6, "u focuses Uganda, uk moves on to Ukraine")
}

func TestArrowUpElevenScrolls(t *testing.T) {
	f := newFixture(t, "ua")
	for range 11 {
		f.c.Handle(CommandUp)
	}
	assert.Len(t, f.scroll.calls, 12)
}

func TestSelectionChangeWhileHiddenScrollsOnShow(t *testing.T) {
	f := newFixture(t, "us")
	f.c.SetVisible(false)
	f.c.SetSelected("ua")
	assert.Len(t, f.scroll.calls, 1)

	f.c.SetVisible(true)
	assert.Equal(t, "ua", f.focusedISO2(t))
	assert.Len(t, f.scroll.calls, 2)
}

func TestSelectionChangeScrollsEvenIfFocusAlreadyThere(t *testing.T) {
	f := newFixture(t, "us")
	f.typeString("ukr")
	require.Len(t, f.scroll.calls, 3)

	f.c.SetSelected("ua")
	assert.Equal(t, "ua", f.focusedISO2(t))
	assert.Len(t, f.scroll.calls, 4)
}

func TestNoScrollsWhileHidden(t *testing.T) {
	f := newFixture(t, "us")
	f.c.SetVisible(false)
	f.c.Handle(CommandUp)
	f.c.Type('u')
	f.c.Click(0)
	assert.Len(t, f.scroll.calls, 1)
	assert.Empty(t, f.selected)
}

func TestEmptyDirectory(t *testing.T) {
	f := newFixture(t, "us", func(o *Options) { o.Countries = directory.New() })
	st := f.c.State()
	assert.Equal(t, -1, st.Focused)
	_, _, ok := f.c.Focused()
	assert.False(t, ok)

	f.c.Handle(CommandDown)
	f.c.Handle(CommandPageDown)
	f.c.Handle(CommandEnter)
	f.typeString("u")
	assert.Equal(t, -1, f.c.State().Focused)
	assert.Empty(t, f.selected)
	assert.Empty(t, f.scroll.calls)
}

func TestCustomDirectory(t *testing.T) {
	dir := directory.Default().Only("pl", "ua", "us")
	f := newFixture(t, "ua", func(o *Options) { o.Countries = dir })
	_, idx, _ := f.c.Focused()
	assert.Equal(t, 1, idx)

	f.c.Handle(CommandPageDown)
	assert.Equal(t, "us", f.focusedISO2(t))

	f.c.SetCountries(directory.Default().Only("us", "pl"))
	assert.Equal(t, 2, f.c.Countries().Len())
	assert.Equal(t, "us", f.focusedISO2(t), "unlisted selection falls back to the first entry")
}

func TestDialCodePrefix(t *testing.T) {
	pl := country.Country{Name: "Poland", ISO2: "pl", DialCode: "48"}

	c := New(Options{SelectedCountry: "pl"})
	assert.Equal(t, "+48", c.Label(pl))

	custom := "test"
	c = New(Options{SelectedCountry: "pl", DialCodePrefix: &custom})
	assert.Equal(t, "test48", c.Label(pl))

	empty := ""
	c = New(Options{SelectedCountry: "pl", DialCodePrefix: &empty})
	assert.Equal(t, "48", c.Label(pl))
	assert.Equal(t, "", c.DialCodePrefix())
}

func TestCallbacksMayReenterController(t *testing.T) {
	var c *Controller
	c = New(Options{
		SelectedCountry: "us",
		Show:            true,
		Scheduler:       NewManualScheduler(),
		OnSelect:        func(item country.Country) { c.SetSelected(item.ISO2) },
		OnClose:         func() { c.SetVisible(false) },
	})
	defer c.Close()

	c.Handle(CommandUp)
	c.Handle(CommandEnter)
	assert.Equal(t, "gb", c.Selected())

	c.Handle(CommandEscape)
	assert.False(t, c.Visible())
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "page_down", CommandPageDown.String())
	assert.Equal(t, "unknown", Command(42).String())
}

func TestRealSchedulerResetsBuffer(t *testing.T) {
	c := New(Options{SelectedCountry: "us", Show: true, SearchDebounce: 10 * time.Millisecond})
	defer c.Close()
	c.Type('u')
	require.Eventually(t, func() bool { return c.SearchBuffer() == "" }, time.Second, 5*time.Millisecond)
}

type schedulerFunc func(d time.Duration, f func()) Timer

func (s schedulerFunc) AfterFunc(d time.Duration, f func()) Timer { return s(d, f) }

type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return false }

func TestRowPredicates(t *testing.T) {
	f := newFixture(t, "us")
	us := directory.Default().IndexOfISO2("us")
	assert.True(t, f.c.IsFocused(us))
	assert.True(t, f.c.IsSelected(us))

	f.c.Handle(CommandUp)
	assert.False(t, f.c.IsFocused(us))
	assert.True(t, f.c.IsFocused(us-1))
	assert.True(t, f.c.IsSelected(us))
	assert.False(t, f.c.IsSelected(us-1))
	assert.False(t, f.c.IsSelected(-1))
}

func TestHiddenSelectionRoundTripDoesNotScroll(t *testing.T) {
	f := newFixture(t, "us")
	f.c.SetVisible(false)
	f.c.SetSelected("ua")
	f.c.SetSelected("us")
	f.c.SetVisible(true)

	assert.Equal(t, "us", f.focusedISO2(t))
	assert.Len(t, f.scroll.calls, 1, "selection is back to its value when hidden")
}

func TestDirectorySwapWhileHiddenScrollsOnShow(t *testing.T) {
	f := newFixture(t, "ua")
	f.c.SetVisible(false)
	f.c.SetCountries(directory.Default().Only("gb", "ua"))
	f.c.SetVisible(true)

	assert.Equal(t, []int{directory.Default().IndexOfISO2("ua"), 1}, f.scroll.calls)
}

func TestDirectorySwapScrollsSameIndex(t *testing.T) {
	f := newFixture(t, "ua", func(o *Options) { o.Countries = directory.Default().Only("pl", "ua") })
	require.Equal(t, []int{1}, f.scroll.calls)

	f.c.SetCountries(directory.Default().Only("gb", "ua"))
	assert.Equal(t, "ua", f.focusedISO2(t))
	assert.Equal(t, []int{1, 1}, f.scroll.calls, "index 1 holds a different list now")
}

func TestUppercaseRecordIsFocusedAndSelected(t *testing.T) {
	dir := directory.New(
		country.Country{Name: "Poland", ISO2: "pl", DialCode: "48"},
		country.Country{Name: "United States", ISO2: "US", DialCode: "1"},
	)
	f := newFixture(t, "us", func(o *Options) { o.Countries = dir })

	assert.Equal(t, "US", f.focusedISO2(t))
	assert.True(t, f.c.IsSelected(1))
	assert.False(t, f.c.IsSelected(0))
}
