// ABOUTME: Inline formatting, escaping and fragment splitting for the message renderer
// ABOUTME: Fragments keep markup tags atomic so word-level reveal never splits a tag

package render

import (
	"regexp"
	"strings"
)

var (
	boldRe     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe   = regexp.MustCompile(`\*(.*?)\*`)
	fragmentRe = regexp.MustCompile(`<[^>]+>|[^<]+`)
	medRe      = regexp.MustCompile(`\[MED:(.*?)\]`)
)

// FormatInline applies lightweight inline formatting to free text:
// **bold** and *italic* markers become strong/em tags, newlines become
// line breaks. Order matters: ** before *.
func FormatInline(text string) string {
	text = boldRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicRe.ReplaceAllString(text, "<em>$1</em>")
	return strings.ReplaceAll(text, "\n", "<br>")
}

// Escape makes free text safe for the markup log.
func Escape(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	return strings.ReplaceAll(text, ">", "&gt;")
}

// Unescape reverses Escape for plain-terminal display.
func Unescape(text string) string {
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	return strings.ReplaceAll(text, "&amp;", "&")
}

// Fragments splits formatted text into atomic pieces: each piece is
// either one complete markup tag or a run of non-tag text. Splitting on
// this alternation is what keeps tags intact when the surrounding words
// are revealed one at a time.
func Fragments(formatted string) []string {
	return fragmentRe.FindAllString(formatted, -1)
}

// StripMedMarkers rewrites [MED:<name>] markers embedded in backend
// responses to the bare <name>, for both display and persistence.
func StripMedMarkers(text string) string {
	return medRe.ReplaceAllString(text, "$1")
}

// IsMarkup reports whether text is a pre-rendered markup fragment.
// Markup is inserted verbatim into the display and is never persisted;
// everything else is escaped free text.
func IsMarkup(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<")
}
