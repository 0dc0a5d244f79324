// Package parser converts a line of player input into an action index.
// Intentionally dumb: only the first character counts.
package parser

import "unicode/utf8"

// MaxSelectable is the number of action indices a single digit can reach.
const MaxSelectable = 10

// Selection reads the first character of line as a decimal digit.
// Leading whitespace is not skipped, so " 1" selects nothing.
func Selection(line string) (int, bool) {
	r, _ := utf8.DecodeRuneInString(line)
	if r < '0' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

// IsMeta reports whether line is a meta-command such as /quit.
func IsMeta(line string) bool {
	return len(line) > 0 && line[0] == '/'
}
