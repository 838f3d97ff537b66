// pattern.go compiles highlight terms into a single alternation pattern.
package highlight

import (
	"bytes"
	"regexp"
	"strings"
	"sync/atomic"
)

// nextBoundary extends a branch lazily up to the next word boundary. RE2's \b
// is ASCII-only, so matching uses the bare alternation and extends each match
// with nextWordBoundary instead; the suffix stays in the returned pattern.
const nextBoundary = `.*?\b`

// cachedBuffer holds at most one idle scratch buffer.
var cachedBuffer atomic.Pointer[bytes.Buffer]

func acquireBuffer() *bytes.Buffer {
	if buf := cachedBuffer.Swap(nil); buf != nil {
		return buf
	}
	return new(bytes.Buffer)
}

// releaseBuffer returns buf for reuse. When two releases race, the later
// Store wins and the other buffer is left to the garbage collector.
func releaseBuffer(buf *bytes.Buffer) {
	buf.Reset()
	cachedBuffer.Store(buf)
}

// CompilePattern builds the alternation ((?:T1)|(?:T2)|...) with every term
// matched literally. It returns "" when terms is empty.
func CompilePattern(terms []string, untilNextBoundary bool) string {
	buf := acquireBuffer()
	defer releaseBuffer(buf)

	buf.WriteString("((?:")
	first := true
	for _, term := range terms {
		if term == "" {
			continue
		}
		if !first {
			buf.WriteString(")|(?:")
		}
		first = false
		buf.WriteString(regexp.QuoteMeta(term))
		if untilNextBoundary {
			buf.WriteString(nextBoundary)
		}
	}
	if first {
		return ""
	}
	buf.WriteString("))")
	return buf.String()
}

// compileRegexp compiles pattern, applying the case mode to the expression only.
func compileRegexp(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// IsHighlighted reports whether fragment as a whole matches pattern, as
// returned by GetFragments. Renderers use it to decide which fragments to mark.
func IsHighlighted(fragment, pattern string, caseSensitive bool) bool {
	if pattern == "" {
		return false
	}
	match, err := fullMatcher(pattern, caseSensitive)
	if err != nil {
		return false
	}
	return match(fragment)
}

// fullMatcher returns a whole-string test for pattern. A pattern built with
// untilNextBoundary must end on a Unicode word boundary; QuoteMeta never
// produces ".*?\b" from a term, so its presence marks the extension.
func fullMatcher(pattern string, caseSensitive bool) (func(string) bool, error) {
	extended := strings.Contains(pattern, nextBoundary)
	if extended {
		pattern = strings.ReplaceAll(pattern, nextBoundary, ".*?")
	}
	re, err := compileRegexp("^(?:"+pattern+")$", caseSensitive)
	if err != nil {
		return nil, err
	}
	return func(s string) bool {
		if s == "" || !re.MatchString(s) {
			return false
		}
		return !extended || isWordBefore(s, len(s))
	}, nil
}
