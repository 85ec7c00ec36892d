package version

import (
	"strings"
	"unicode"
)

// Comparator orders two version labels. It returns a negative number if
// a < b, zero if equal, and a positive number if a > b.
//
// Version labels are free-form strings ("2024", "CC 2019", "v25.0"), so
// no single ordering is correct for every product line. Range matching
// takes the comparator as a strategy.
type Comparator func(a, b string) int

// Lexicographic compares version labels as plain strings.
//
// This is the default for parity with historical behavior. It misorders
// multi-digit numeric versions ("9" sorts after "10"); use Numeric when
// the version scheme is known to be numeric.
func Lexicographic(a, b string) int {
	return strings.Compare(a, b)
}

// Numeric compares version labels segment by segment, comparing runs of
// digits by numeric value and everything else lexicographically. Under
// Numeric, "9" < "10" and "v2.4" < "v2.10".
func Numeric(a, b string) int {
	sa, sb := tokenize(a), tokenize(b)
	for i := 0; i < len(sa) && i < len(sb); i++ {
		ta, tb := sa[i], sb[i]
		if ta.numeric && tb.numeric {
			if c := compareDigits(ta.text, tb.text); c != 0 {
				return c
			}
			continue
		}
		if c := strings.Compare(ta.text, tb.text); c != 0 {
			return c
		}
	}
	switch {
	case len(sa) < len(sb):
		return -1
	case len(sa) > len(sb):
		return 1
	default:
		return 0
	}
}

type token struct {
	text    string
	numeric bool
}

// tokenize splits a label into alternating digit and non-digit runs.
func tokenize(s string) []token {
	var tokens []token
	var cur strings.Builder
	curNumeric := false

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, token{text: cur.String(), numeric: curNumeric})
			cur.Reset()
		}
	}

	for _, r := range s {
		isDigit := unicode.IsDigit(r)
		if cur.Len() > 0 && isDigit != curNumeric {
			flush()
		}
		curNumeric = isDigit
		cur.WriteRune(r)
	}
	flush()
	return tokens
}

// compareDigits compares two digit runs by numeric value without parsing,
// so arbitrarily long version components cannot overflow.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
