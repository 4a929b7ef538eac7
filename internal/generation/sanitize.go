package generation

import (
	"regexp"
	"strings"
)

// Case-insensitive marker patterns. Matching the raw string directly keeps
// every index native to it; lowercasing a copy first would shift offsets for
// runes whose lowercase form has a different byte length.
var (
	thinkStart = regexp.MustCompile(`(?i)<think>`)
	thinkEnd   = regexp.MustCompile(`(?i)</think>`)
)

// Sanitize strips a model's internal reasoning segment from raw output.
// A well-formed "<think>...</think>" block is removed along with its markers
// and the remainder is trimmed. A start marker with no matching end marker
// means the model never left its reasoning phase, so the whole output is
// reported unusable rather than leaking reasoning into a transcript.
func Sanitize(raw string) (string, bool) {
	start := thinkStart.FindStringIndex(raw)
	if start == nil {
		return raw, true
	}

	end := thinkEnd.FindStringIndex(raw[start[1]:])
	if end == nil {
		return "", false
	}

	// Everything up to and including the end marker is reasoning; only the
	// remainder is the answer.
	cleaned := raw[start[1]+end[1]:]
	return strings.TrimSpace(cleaned), true
}
