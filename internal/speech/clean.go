package speech

import (
	"regexp"
	"strings"
)

var (
	pictographs = regexp.MustCompile(`[` +
		`\x{1F600}-\x{1F64F}` + // emoticons
		`\x{1F300}-\x{1F5FF}` + // symbols & pictographs
		`\x{1F680}-\x{1F6FF}` + // transport & map
		`\x{1F1E0}-\x{1F1FF}` + // flags
		`\x{2700}-\x{27BF}` + // dingbats
		`\x{1F900}-\x{1F9FF}` + // supplemental symbols
		`\x{2600}-\x{26FF}` + // misc symbols
		`\x{2B00}-\x{2BFF}` + // misc symbols & arrows
		`\x{1FA70}-\x{1FAFF}` + // symbols & pictographs extended-A
		`\x{1F000}-\x{1F2FF}` + // mahjong, cards, enclosed alphanumerics
		`\x{1F700}-\x{1F8FF}` + // alchemical, geometric shapes extended
		`\x{2300}-\x{23FF}` + // misc technical
		`\x{2190}-\x{21FF}` + // arrows
		`\x{3030}\x{303D}\x{3297}\x{3299}\x{20E3}` +
		`\x{FE0F}\x{200D}` + // variation selector, zero-width joiner
		`]+`)

	markdownMarkers = regexp.MustCompile(`(\*\*|__|\*|_|#+)`)
)

// Clean removes emoji, pictographs and markdown emphasis/heading markers so
// that the synthesizer does not read them aloud.
func Clean(text string) string {
	text = pictographs.ReplaceAllString(text, "")
	text = markdownMarkers.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
