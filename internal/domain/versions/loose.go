package versions

import (
	"strconv"
	"strings"
)

// looseToken is one comparable unit of a loosely parsed version string:
// a numeric run or a text run.
type looseToken struct {
	num     int
	text    string
	numeric bool
}

func (t looseToken) render() string {
	if t.numeric {
		return strconv.Itoa(t.num)
	}
	return t.text
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSeparator(c byte) bool { return c == '.' || c == '-' || c == '_' }

// parseLoose splits a version string into comparable tokens. Dots,
// dashes and underscores separate tokens; runs of digits become numeric
// tokens and any other runs become text tokens, so "1.0b1" parses as
// [1 0 "b" 1]. A leading "v" directly before a digit is dropped, making
// "v1.0" and "1.0" compare equal.
func parseLoose(s string) []looseToken {
	if len(s) > 1 && s[0] == 'v' && isDigit(s[1]) {
		s = s[1:]
	}

	var tokens []looseToken
	i := 0
	for i < len(s) {
		switch c := s[i]; {
		case isSeparator(c):
			i++
		case isDigit(c):
			j := i
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			n, _ := strconv.Atoi(s[i:j])
			tokens = append(tokens, looseToken{num: n, numeric: true})
			i = j
		default:
			j := i
			for j < len(s) && !isDigit(s[j]) && !isSeparator(s[j]) {
				j++
			}
			tokens = append(tokens, looseToken{text: s[i:j]})
			i = j
		}
	}
	return tokens
}

func tokenAt(tokens []looseToken, i int) looseToken {
	if i < len(tokens) {
		return tokens[i]
	}
	// Missing segments read as zero, so "1.0" equals "1.0.0".
	return looseToken{numeric: true}
}

func compareTokens(a, b looseToken) int {
	if a.numeric && b.numeric {
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		default:
			return 0
		}
	}
	// Mixed and text tokens compare by their literal text.
	return strings.Compare(a.render(), b.render())
}

// CompareLoose compares two loosely formatted version strings segment by
// segment, tolerating non-numeric components. Returns -1 if a is older
// than b, 0 if they are equivalent, and 1 if a is newer.
func CompareLoose(a, b string) int {
	ta, tb := parseLoose(a), parseLoose(b)
	for i := 0; i < len(ta) || i < len(tb); i++ {
		if c := compareTokens(tokenAt(ta, i), tokenAt(tb, i)); c != 0 {
			return c
		}
	}
	return 0
}

// releaseVersion reports whether an identifier looks like a release
// version: an optional leading "v" followed by a digit. Anything else,
// such as a bare "dev" tag, is treated as newer than every release.
func releaseVersion(s string) bool {
	s = strings.TrimPrefix(s, "v")
	return len(s) > 0 && isDigit(s[0])
}

// Compare is the ordering function for registry identifiers, oldest
// first: release versions sort below non-release identifiers, and within
// each bucket identifiers compare in loose version order.
func Compare(a, b string) int {
	ra, rb := releaseVersion(a), releaseVersion(b)
	if ra != rb {
		if ra {
			return -1
		}
		return 1
	}
	return CompareLoose(a, b)
}
