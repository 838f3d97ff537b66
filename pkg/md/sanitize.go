package md

import "github.com/microcosm-cc/bluemonday"

// ugcPolicy keeps formatting markup and drops scripts, styles and event handlers.
var ugcPolicy = bluemonday.UGCPolicy()

// Sanitize strips unsafe elements and attributes from untrusted HTML.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return ugcPolicy.Sanitize(html)
}
