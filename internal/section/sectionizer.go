// File path: internal/section/sectionizer.go
package section

import (
	"regexp"
	"strings"

	"github.com/specdraft/specdraft/internal/common"
)

// FSD sections are announced by markers like "SECTION: 3" or "section-6.5".
// Only the dotted numeric identifier is captured; any title text after it
// belongs to the section body.
var (
	markerRe = regexp.MustCompile(`(?im)^[ \t]*SECTION\s*[:\-]\s*(\d+(?:\.\d+)*)`)

	// inlineMarkerRe recognises the same marker anywhere in a line so that
	// FSDs pasted out of spreadsheets or mail clients, where markers end up
	// mid-line, still sectionize.
	inlineMarkerRe = regexp.MustCompile(`(?i)SECTION\s*[:\-]\s*\d+(?:\.\d+)*`)

	blankRunRe = regexp.MustCompile(`\n{2,}`)
)

// Parse splits an FSD into a map of section identifier to body text. The body
// of a section runs from the end of its marker to the start of the next
// marker, or end of input. Text before the first marker is discarded. A
// repeated identifier overwrites the earlier entry: FSD authors routinely
// re-issue a section as a correction further down the document, and the
// latest revision is the one that should feed generation.
func Parse(text string) map[string]string {
	logger := common.Logger()
	text = strings.ReplaceAll(text, "\r", "")
	text = forceMarkerLineBreaks(text)
	text = blankRunRe.ReplaceAllString(text, "\n")

	matches := markerRe.FindAllStringSubmatchIndex(text, -1)
	logger.Debug("section: markers detected", "count", len(matches))

	sections := make(map[string]string, len(matches))
	for i, m := range matches {
		id := strings.TrimSpace(text[m[2]:m[3]])
		start := m[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(text[start:end])
		sections[id] = body
		logger.Debug("section: parsed", "id", id, "chars", len(body))
	}
	return sections
}

// forceMarkerLineBreaks rewrites the text so every marker occurrence begins a
// line, swallowing whatever whitespace preceded it.
func forceMarkerLineBreaks(text string) string {
	locs := inlineMarkerRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + len(locs))
	prev := 0
	for _, loc := range locs {
		b.WriteString(strings.TrimRight(text[prev:loc[0]], " \t\n"))
		b.WriteString("\n")
		prev = loc[0]
	}
	b.WriteString(text[prev:])
	return b.String()
}
