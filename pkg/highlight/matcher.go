// matcher.go runs regular expressions under a time budget.
package highlight

import (
	"regexp"
	"time"
	"unicode"
	"unicode/utf8"
)

// DefaultTimeout bounds a single splitting call.
const DefaultTimeout = 5 * time.Second

// now is replaced in tests.
var now = time.Now

// Options controls matching behavior.
type Options struct {
	// CaseSensitive disables case folding when matching terms.
	CaseSensitive bool
	// UntilNextBoundary extends each match to the end of the enclosing word.
	UntilNextBoundary bool
	// Timeout is the budget for one call; zero means DefaultTimeout.
	Timeout time.Duration
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

// deadline is shared by every regular expression used in one call.
type deadline struct {
	at      time.Time
	budget  time.Duration
	pattern string
}

func newDeadline(opts Options, pattern string) *deadline {
	budget := opts.timeout()
	return &deadline{at: now().Add(budget), budget: budget, pattern: pattern}
}

func (d *deadline) check() error {
	if now().After(d.at) {
		return &TimeoutError{Pattern: d.pattern, Timeout: d.budget}
	}
	return nil
}

// findAll returns the [start, end) byte offsets of successive non-empty
// matches of re in s. RE2 keeps each search linear in the remaining input;
// the deadline is checked before every search. With extend set each match
// runs on to the next word boundary.
func (d *deadline) findAll(re *regexp.Regexp, s string, extend bool) ([][2]int, error) {
	var matches [][2]int
	pos := 0
	for pos <= len(s) {
		if err := d.check(); err != nil {
			return nil, err
		}
		loc := re.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if extend {
			end = nextWordBoundary(s, end)
		}
		if end == start {
			// Empty match; step over one byte-aligned rune.
			pos = nextRune(s, end)
			continue
		}
		matches = append(matches, [2]int{start, end})
		pos = end
	}
	return matches, nil
}

// splitKeep splits s around the matches of re, keeping the matches.
// Each piece reports whether it was a match. Empty pieces are dropped.
func (d *deadline) splitKeep(re *regexp.Regexp, s string, extend bool) ([]piece, error) {
	matches, err := d.findAll(re, s, extend)
	if err != nil {
		return nil, err
	}

	pieces := make([]piece, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			pieces = append(pieces, piece{text: s[last:m[0]]})
		}
		pieces = append(pieces, piece{text: s[m[0]:m[1]], matched: true})
		last = m[1]
	}
	if last < len(s) {
		pieces = append(pieces, piece{text: s[last:]})
	}
	return pieces, nil
}

type piece struct {
	text    string
	matched bool
}

func nextRune(s string, i int) int {
	if i >= len(s) {
		return i + 1
	}
	for i++; i < len(s) && !isRuneStart(s[i]); i++ {
	}
	return i
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// nextWordBoundary returns the first offset at or after i that lies between
// a word and a non-word rune, the ends of s counting as non-word. Like ".*?"
// it never crosses a newline; reaching one without a boundary stops there.
func nextWordBoundary(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if isWordBefore(s, i) != isWordRune(r) || r == '\n' {
			return i
		}
		i += size
	}
	return i
}

func isWordBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return isWordRune(r)
}

// isWordRune matches the Unicode word class: letters, decimal digits,
// nonspacing marks and connector punctuation such as '_'.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Pc, r)
}
