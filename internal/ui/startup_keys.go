package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys simulates keypresses given as Vim-like tokens and literal
// text, e.g. "<Down><Down>", "ukr", "<Wait><CR>". A leading backslash forces
// the whole token to be typed literally. "<Blur>" moves focus away from the
// list and "<Wait>" lets the typeahead window elapse when the model runs on a
// manual scheduler.
func ApplyStartupKeys(m *Model, keys []string) {
	if len(keys) == 0 || m == nil {
		return
	}
	for _, raw := range keys {
		if m.done {
			return
		}
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		if strings.HasPrefix(token, `\`) {
			typeLiteral(m, strings.TrimPrefix(token, `\`))
			continue
		}
		for _, segment := range parseTokenSegments(token) {
			if !segment.isVimKey {
				typeLiteral(m, segment.text)
				continue
			}
			switch strings.ToLower(strings.Trim(segment.text, "<>")) {
			case "blur":
				m.Update(tea.BlurMsg{})
				continue
			case "wait":
				if m.manual != nil {
					m.manual.Advance(m.debounce)
				}
				continue
			}
			if msg, ok := keyMsgFromToken(segment.text); ok {
				m.Update(msg)
			}
		}
	}
}

func typeLiteral(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// tokenSegment is either a <...> key token or a run of literal text.
type tokenSegment struct {
	text     string
	isVimKey bool
}

// parseTokenSegments splits "<Down>ukr<CR>" into key and text segments.
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token
	for len(remaining) > 0 {
		startIdx := strings.Index(remaining, "<")
		if startIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if startIdx > 0 {
			segments = append(segments, tokenSegment{text: remaining[:startIdx]})
		}
		endIdx := strings.Index(remaining[startIdx:], ">")
		if endIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining[startIdx:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[startIdx : startIdx+endIdx+1], isVimKey: true})
		remaining = remaining[startIdx+endIdx+1:]
	}
	return segments
}

// keyMsgFromToken parses a single <...> token into a key press.
func keyMsgFromToken(token string) (tea.KeyPressMsg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") {
		return tea.KeyPressMsg{}, false
	}
	switch strings.ToLower(strings.Trim(token, "<>")) {
	case "esc", "escape", "c-[":
		return tea.KeyPressMsg{Code: tea.KeyEscape}, true
	case "cr", "enter", "return":
		return tea.KeyPressMsg{Code: tea.KeyEnter}, true
	case "space":
		return tea.KeyPressMsg{Code: ' ', Text: " "}, true
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}, true
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}, true
	case "pgup", "pageup":
		return tea.KeyPressMsg{Code: tea.KeyPgUp}, true
	case "pgdn", "pgdown", "pagedown":
		return tea.KeyPressMsg{Code: tea.KeyPgDown}, true
	case "home":
		return tea.KeyPressMsg{Code: tea.KeyHome}, true
	case "end":
		return tea.KeyPressMsg{Code: tea.KeyEnd}, true
	case "c-c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, true
	case "c-n":
		return tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}, true
	case "c-p":
		return tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl}, true
	case "c-g":
		return tea.KeyPressMsg{Code: 'g', Mod: tea.ModCtrl}, true
	case "c-v":
		return tea.KeyPressMsg{Code: 'v', Mod: tea.ModCtrl}, true
	case "m-v", "a-v":
		return tea.KeyPressMsg{Code: 'v', Mod: tea.ModAlt}, true
	}
	return tea.KeyPressMsg{}, false
}
