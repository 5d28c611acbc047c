package formatter

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/oakwood-commons/dialsel/pkg/country"
)

var (
	defaultHeaderFG   = lipgloss.Color("12")
	defaultHeaderBG   = lipgloss.Color("236")
	defaultKeyColor   = lipgloss.Color("14")
	defaultValueColor = lipgloss.Color("248")
	defaultSeparator  = lipgloss.Color("240")
)

// TableColors controls the rendered colors for the table.
// Empty fields fall back to the defaults (ANSI 256 codes).
type TableColors struct {
	HeaderFG       color.Color
	HeaderBG       color.Color
	KeyColor       color.Color
	ValueColor     color.Color
	SeparatorColor color.Color
}

type tableStyles struct {
	header    lipgloss.Style
	key       lipgloss.Style
	value     lipgloss.Style
	separator lipgloss.Style
}

func orColor(c, def color.Color) color.Color {
	if c == nil {
		return def
	}
	return c
}

func newTableStyles(tc TableColors) tableStyles {
	return tableStyles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(orColor(tc.HeaderFG, defaultHeaderFG)).Background(orColor(tc.HeaderBG, defaultHeaderBG)),
		key:       lipgloss.NewStyle().Foreground(orColor(tc.KeyColor, defaultKeyColor)),
		value:     lipgloss.NewStyle().Foreground(orColor(tc.ValueColor, defaultValueColor)),
		separator: lipgloss.NewStyle().Foreground(orColor(tc.SeparatorColor, defaultSeparator)),
	}
}

var tableColumns = []string{"NAME", "ISO2", "DIAL", "FORMAT", "PRIORITY", "AREA CODES"}

const (
	sepWidth    = 2
	minColWidth = 3
	maxColWidth = 40
)

func tableRows(countries []country.Country, prefix string) [][]string {
	rows := make([][]string, len(countries))
	for i, c := range countries {
		prio := ""
		if c.Priority != nil {
			prio = strconv.Itoa(*c.Priority)
		}
		format := ""
		if c.Format != nil {
			format = strconv.Quote(*c.Format)
		}
		rows[i] = []string{c.Name, c.ISO2, prefix + c.DialCode, format, prio, strings.Join(c.AreaCodes, ",")}
	}
	return rows
}

func renderTable(countries []country.Country, opts Options) string {
	if len(countries) == 0 {
		return ""
	}
	rows := tableRows(countries, opts.DialCodePrefix)
	styles := newTableStyles(opts.Colors)

	totalWidth := opts.Width
	if totalWidth <= 0 {
		totalWidth = getTerminalWidth()
	}
	rowNumWidth := 0
	if opts.RowNumbers {
		rowNumWidth = len(strconv.Itoa(len(rows))) + 1
		totalWidth -= rowNumWidth + sepWidth
	}
	widths := columnWidths(tableColumns, rows, totalWidth)

	style := func(s lipgloss.Style, text string) string {
		if opts.NoColor {
			return text
		}
		return s.Render(text)
	}
	join := func(num string, cells []string) string {
		parts := make([]string, 0, len(cells)+1)
		if opts.RowNumbers {
			parts = append(parts, num)
		}
		parts = append(parts, cells...)
		return strings.TrimRight(strings.Join(parts, strings.Repeat(" ", sepWidth)), " ")
	}

	var b strings.Builder
	header := make([]string, len(tableColumns))
	for i, col := range tableColumns {
		header[i] = style(styles.header, padRight(truncate(col, widths[i]), widths[i]))
	}
	b.WriteString(join(style(styles.header, padRight("#", rowNumWidth)), header) + "\n")

	lineWidth := 0
	for _, w := range widths {
		lineWidth += w
	}
	lineWidth += (len(widths) - 1) * sepWidth
	if opts.RowNumbers {
		lineWidth += rowNumWidth + sepWidth
	}
	b.WriteString(style(styles.separator, strings.Repeat("─", lineWidth)) + "\n")

	for i, row := range rows {
		cells := make([]string, len(row))
		for j, val := range row {
			cells[j] = style(styles.value, padRight(truncate(val, widths[j]), widths[j]))
		}
		num := style(styles.key, padRight(fmt.Sprintf("%d", i+1), rowNumWidth))
		b.WriteString(join(num, cells) + "\n")
	}
	return b.String()
}

// columnWidths sizes columns to their content, then caps and shrinks them
// proportionally when the table exceeds the available width.
func columnWidths(columns []string, rows [][]string, availableWidth int) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(val))
			}
		}
	}

	usable := availableWidth - (len(columns)-1)*sepWidth
	if usable <= 0 || sum(widths) <= usable {
		return widths
	}
	for i := range widths {
		widths[i] = min(widths[i], maxColWidth)
	}
	total := sum(widths)
	if total <= usable {
		return widths
	}
	for i := range widths {
		widths[i] = max(int(float64(widths[i])/float64(total)*float64(usable)), minColWidth)
	}
	for sum(widths) > usable {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width < 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "…")
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}
