package parser

import "regexp"

// [[id]] — reference markers embedding another note's identifier.
// Identifiers are opaque tokens of hexadecimal digits and hyphens
// (the format produced by the note id generator).
var refPattern = regexp.MustCompile(`\[\[([0-9a-f-]+)\]\]`)

// ExtractRefs scans content for reference markers and returns the
// distinct referenced identifiers in first-occurrence order.
// Malformed brackets and tokens with other characters are ignored.
// Whether a referenced id exists is not this function's concern.
func ExtractRefs(content string) []string {
	matches := refPattern.FindAllStringSubmatch(content, -1)
	refs := make([]string, 0, len(matches))
	seen := make(map[string]bool)
	for _, m := range matches {
		id := m[1]
		if !seen[id] {
			refs = append(refs, id)
			seen[id] = true
		}
	}
	return refs
}
