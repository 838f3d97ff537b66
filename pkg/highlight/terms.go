// terms.go normalizes caller-supplied highlight terms.
package highlight

import "strings"

var htmlEncoder = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EncodeHTML escapes the characters that are significant in markup.
func EncodeHTML(s string) string {
	return htmlEncoder.Replace(s)
}

// BuildTerms collects the non-empty terms, single first, each followed by its
// HTML-encoded form when encoding changes it. This lets a term match whether
// the source text is raw or already escaped.
func BuildTerms(single string, multiple []string) []string {
	var terms []string
	add := func(term string) {
		if term == "" {
			return
		}
		terms = append(terms, term)
		if encoded := EncodeHTML(term); encoded != term {
			terms = append(terms, encoded)
		}
	}

	add(single)
	for _, term := range multiple {
		add(term)
	}
	return terms
}

// rawTerms collects the non-empty terms without encoded variants.
func rawTerms(single string, multiple []string) []string {
	var terms []string
	if single != "" {
		terms = append(terms, single)
	}
	for _, term := range multiple {
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// isTerm reports whether s equals one of terms verbatim.
func isTerm(s string, terms []string, caseSensitive bool) bool {
	for _, term := range terms {
		if caseSensitive {
			if s == term {
				return true
			}
		} else if strings.EqualFold(s, term) {
			return true
		}
	}
	return false
}
