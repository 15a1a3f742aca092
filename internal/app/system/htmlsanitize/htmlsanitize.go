// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize wraps the bluemonday policies applied to free-text
// request fields before they are stored. Comment bodies and descriptions
// are echoed back to other participants, so they are scrubbed on write.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps user-generated-content markup (formatting, links) and
// strips scripts and event handlers.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// StripTags removes all markup. Used for single-line fields such as
// summaries and names.
func StripTags(s string) string {
	return strict.Sanitize(s)
}
