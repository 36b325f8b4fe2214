package patterns

import "regexp"

// inlineCodeLink matches a well-formed link quoted as inline code:
// `[text](path)`. Lines showing such examples on purpose must not be
// touched.
var inlineCodeLink = regexp.MustCompile("`\\[[^\\]]+\\]\\([^()]+\\)`")

// complexCorruption matches the bracket/backtick fusions that only occur in
// corrupted text. Their presence overrides the inline-code exemption.
var complexCorruption = regexp.MustCompile("\\[`\\[|\\]`\\]")

// IsProtectedLine reports whether the line should be skipped entirely:
// it contains a standalone inline-code link token and none of the complex
// corruption markers. A token directly preceded by '[' or followed by ']'
// is part of a corrupted wrapper, not a standalone example.
func IsProtectedLine(line string) bool {
	if complexCorruption.MatchString(line) {
		return false
	}

	for _, loc := range inlineCodeLink.FindAllStringIndex(line, -1) {
		start, end := loc[0], loc[1]

		if start > 0 && line[start-1] == '[' {
			continue
		}

		if end < len(line) && line[end] == ']' {
			continue
		}

		return true
	}

	return false
}
