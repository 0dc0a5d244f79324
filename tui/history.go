// Package tui provides a Bubble Tea terminal UI for the act interpreter.
package tui

// History remembers submitted lines for Up/Down recall.
type History struct {
	lines []string
	limit int
	back  int // 0 = editing a fresh line, n = n entries back from newest
}

// NewHistory creates a history that keeps at most limit lines.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push records a submitted line. Repeating the newest line is a no-op.
func (h *History) Push(line string) {
	h.back = 0
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return
	}
	h.lines = append(h.lines, line)
	if over := len(h.lines) - h.limit; over > 0 {
		h.lines = append(h.lines[:0], h.lines[over:]...)
	}
}

// Older steps one line back. It stops at the oldest line and reports false
// only when there is nothing recorded.
func (h *History) Older() (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	if h.back < len(h.lines) {
		h.back++
	}
	return h.lines[len(h.lines)-h.back], true
}

// Newer steps one line forward. Stepping past the newest line returns to
// a fresh line and reports false.
func (h *History) Newer() (string, bool) {
	if h.back <= 1 {
		h.back = 0
		return "", false
	}
	h.back--
	return h.lines[len(h.lines)-h.back], true
}

// Len returns the number of recorded lines.
func (h *History) Len() int { return len(h.lines) }
