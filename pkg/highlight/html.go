package highlight

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	// Matches any opening, closing or self-closing tag.
	tagSplitPattern = regexp.MustCompile(`<\s*/?\s*\w+[^>]*?/?>`)
	// Captures the closing slash, the tag name and the self-closing slash.
	tagParsePattern = regexp.MustCompile(`^<\s*(/)?\s*(\w+)[^>]*?(/)?\s*>$`)
	// An empty character class; used when there are no terms.
	neverMatch = regexp.MustCompile(`[^\x00-\x{10FFFF}]`)
)

// voidElements never have children, so they are never pushed on the tag stack.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// tag describes a parsed markup fragment.
type tag struct {
	name        string
	closing     bool
	selfClosing bool
}

func parseTag(content string) (tag, bool) {
	m := tagParsePattern.FindStringSubmatch(content)
	if m == nil {
		return tag{}, false
	}
	return tag{
		name:        m[2],
		closing:     m[1] != "",
		selfClosing: m[3] != "" || voidElements[strings.ToLower(m[2])],
	}, true
}

// Result is the output of SplitHTML.
type Result struct {
	Fragments []Fragment
	Pattern   string   // the alternation used, "" if there were no terms
	Warnings  []string // one entry per tag that had to be demoted to text
}

func (r *Result) addWarning(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// GetHTMLAwareFragments splits markup into Markup, Text and HighlightedText
// fragments. Terms are matched in text between tags only. The returned
// pattern is the alternation used, or "" when there was nothing to highlight.
func GetHTMLAwareFragments(text, term string, terms []string, opts Options) ([]Fragment, string, error) {
	result, err := SplitHTML(text, term, terms, opts)
	if err != nil {
		return nil, "", err
	}
	return result.Fragments, result.Pattern, nil
}

// SplitHTML is GetHTMLAwareFragments with the reconciliation warnings kept.
//
// Tags are reconciled with a stack of open tag names:
//   - a tag that does not parse is HTML-encoded and emitted as text
//   - self-closing and void tags pass through
//   - a closing tag that matches the top of the stack pops it
//   - any other closing tag is HTML-encoded and emitted as text
//   - an opening tag is pushed
//
// Opening tags still on the stack at the end are demoted: for each one, in
// pop order, the nearest preceding opening tag of that name is replaced by
// its own content matched against the terms.
func SplitHTML(text, term string, terms []string, opts Options) (*Result, error) {
	result := &Result{}
	if text == "" {
		return result, nil
	}

	built := BuildTerms(term, terms)
	result.Pattern = CompilePattern(built, opts.UntilNextBoundary)

	re := neverMatch
	if result.Pattern != "" {
		var err error
		re, err = compileRegexp(CompilePattern(built, false), opts.CaseSensitive)
		if err != nil {
			return nil, fmt.Errorf("failed to compile highlight pattern: %w", err)
		}
	}

	s := &htmlSplitter{
		deadline:      newDeadline(opts, result.Pattern),
		re:            re,
		extend:        opts.UntilNextBoundary,
		terms:         built,
		caseSensitive: opts.CaseSensitive,
		result:        result,
	}

	classified, err := s.classify(text)
	if err != nil {
		return nil, err
	}

	fragments, stack := s.reconcile(classified)

	fragments, err = s.repair(fragments, stack)
	if err != nil {
		return nil, err
	}

	result.Fragments = fragments
	return result, nil
}

type htmlSplitter struct {
	*deadline
	re            *regexp.Regexp
	extend        bool
	terms         []string
	caseSensitive bool
	result        *Result
}

// classify splits text on tags and matches terms in the segments between them.
func (s *htmlSplitter) classify(text string) ([]Fragment, error) {
	segments, err := s.splitKeep(tagSplitPattern, text, false)
	if err != nil {
		return nil, err
	}

	var fragments []Fragment
	for _, seg := range segments {
		if seg.matched {
			fragments = append(fragments, Fragment{Content: seg.text, Type: FragmentMarkup})
			continue
		}
		if isTerm(seg.text, s.terms, s.caseSensitive) {
			fragments = append(fragments, Fragment{Content: seg.text, Type: FragmentHighlightedText})
			continue
		}
		matched, err := s.match(seg.text)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, matched...)
	}
	return fragments, nil
}

// match splits a text segment into Text and HighlightedText fragments.
func (s *htmlSplitter) match(segment string) ([]Fragment, error) {
	pieces, err := s.splitKeep(s.re, segment, s.extend)
	if err != nil {
		return nil, err
	}

	fragments := make([]Fragment, 0, len(pieces))
	for _, p := range pieces {
		typ := FragmentText
		if p.matched {
			typ = FragmentHighlightedText
		}
		fragments = append(fragments, Fragment{Content: p.text, Type: typ})
	}
	return fragments, nil
}

// reconcile walks the fragments once, returning them with malformed and
// unbalanced closing tags demoted, plus the names of tags left open.
func (s *htmlSplitter) reconcile(fragments []Fragment) ([]Fragment, []string) {
	out := make([]Fragment, 0, len(fragments))
	var stack []string

	for _, f := range fragments {
		if f.Type != FragmentMarkup {
			out = append(out, f)
			continue
		}

		t, ok := parseTag(f.Content)
		switch {
		case !ok:
			s.result.addWarning("malformed tag %q", f.Content)
			out = append(out, Fragment{Content: EncodeHTML(f.Content), Type: FragmentText})

		case t.selfClosing:
			out = append(out, f)

		case t.closing:
			if len(stack) > 0 && strings.EqualFold(stack[len(stack)-1], t.name) {
				stack = stack[:len(stack)-1]
				out = append(out, f)
				continue
			}
			if len(stack) == 0 {
				s.result.addWarning("orphan close tag %q", f.Content)
			} else {
				s.result.addWarning("mismatched close tag: expected </%s>, got %q", stack[len(stack)-1], f.Content)
			}
			out = append(out, Fragment{Content: EncodeHTML(f.Content), Type: FragmentText})

		default:
			stack = append(stack, t.name)
			out = append(out, f)
		}
	}

	return out, stack
}

// repair demotes the opening tags that were never closed. Each stack entry
// is paired with the nearest preceding opening tag of the same name that is
// still markup; with repeated names this scan may not pick the structural
// partner, which is accepted.
func (s *htmlSplitter) repair(fragments []Fragment, stack []string) ([]Fragment, error) {
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for i := len(fragments) - 1; i >= 0; i-- {
			f := fragments[i]
			if f.Type != FragmentMarkup {
				continue
			}
			t, ok := parseTag(f.Content)
			if !ok || t.closing || t.selfClosing || !strings.EqualFold(t.name, name) {
				continue
			}

			s.result.addWarning("unclosed tag %q", f.Content)
			sub, err := s.match(f.Content)
			if err != nil {
				return nil, err
			}
			if len(sub) > 0 {
				fragments = slices.Replace(fragments, i, i+1, sub...)
			} else {
				typ := FragmentText
				if isTerm(f.Content, s.terms, s.caseSensitive) {
					typ = FragmentHighlightedText
				}
				fragments[i] = Fragment{Content: f.Content, Type: typ}
			}
			break
		}
	}
	return fragments, nil
}
