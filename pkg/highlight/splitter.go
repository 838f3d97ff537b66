// Package highlight splits text into highlighted and non-highlighted fragments.
//
// Two modes are provided. GetFragments treats the input as plain text and
// returns the substrings between and including term matches. GetHTMLAwareFragments
// treats the input as markup: tags are kept intact, terms are only matched in
// text between tags, and tags that would leave the output unbalanced are
// demoted to text.
package highlight

import "fmt"

// GetFragments splits text around every occurrence of the highlight terms,
// keeping the occurrences. Empty pieces are dropped. The returned pattern is
// the alternation used, or "" when there was nothing to highlight; pass it to
// IsHighlighted to classify the pieces.
func GetFragments(text, term string, terms []string, opts Options) ([]string, string, error) {
	if text == "" {
		return nil, "", nil
	}

	terms = rawTerms(term, terms)
	pattern := CompilePattern(terms, opts.UntilNextBoundary)
	if pattern == "" {
		return []string{text}, "", nil
	}

	re, err := compileRegexp(CompilePattern(terms, false), opts.CaseSensitive)
	if err != nil {
		return nil, pattern, fmt.Errorf("failed to compile highlight pattern: %w", err)
	}

	pieces, err := newDeadline(opts, pattern).splitKeep(re, text, opts.UntilNextBoundary)
	if err != nil {
		return nil, pattern, err
	}

	fragments := make([]string, 0, len(pieces))
	for _, p := range pieces {
		fragments = append(fragments, p.text)
	}
	return fragments, pattern, nil
}

// Classify types the output of GetFragments, marking each piece that fully
// matches pattern as highlighted. It is equivalent to calling IsHighlighted
// on every piece.
func Classify(fragments []string, pattern string, caseSensitive bool) []Fragment {
	out := make([]Fragment, 0, len(fragments))
	if pattern == "" {
		for _, f := range fragments {
			out = append(out, Fragment{Content: f, Type: FragmentText})
		}
		return out
	}

	match, err := fullMatcher(pattern, caseSensitive)
	for _, f := range fragments {
		typ := FragmentText
		if err == nil && match(f) {
			typ = FragmentHighlightedText
		}
		out = append(out, Fragment{Content: f, Type: typ})
	}
	return out
}
