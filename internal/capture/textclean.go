package capture

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

const maxExtractedTextBytes = 200 * 1024 // ~200 KB ceiling, spec.md §4.2

var whitespaceRun = regexp.MustCompile(`[ \t\f\v]+`)
var blankLineRun = regexp.MustCompile(`\n{3,}`)

// commonMojibake maps frequently seen UTF-8-as-Latin1 mis-decodes to their
// intended characters.
var commonMojibake = map[string]string{
	"â€™": "'",
	"â€œ": "“",
	"â€\x9d": "”",
	"â€“": "–",
	"â€”": "—",
	"Ã©":  "é",
	"Â ":  " ",
}

// CleanText NFC-normalizes, unescapes HTML entities, strips known mojibake
// sequences, collapses whitespace, and truncates to a bounded ceiling, per
// spec.md §4.2's text-extraction step.
func CleanText(raw string) string {
	s := html.UnescapeString(raw)
	for bad, good := range commonMojibake {
		s = strings.ReplaceAll(s, bad, good)
	}
	s = norm.NFC.String(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = blankLineRun.ReplaceAllString(s, "\n\n")
	s = strings.TrimSpace(s)

	if len(s) > maxExtractedTextBytes {
		s = s[:maxExtractedTextBytes]
	}
	return s
}
