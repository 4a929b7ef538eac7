package extract

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadableDocument marks a corrupt or non-PDF byte stream.
var ErrUnreadableDocument = errors.New("unreadable document")

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// Name heuristics, tried in order; the first match wins.
var namePatterns = []*regexp.Regexp{
	// all-caps line at the very start
	regexp.MustCompile(`(?m)^([A-Z][A-Z\s]+)$`),
	// First Last at the start
	regexp.MustCompile(`(?m)^([A-Z][a-z]+\s+[A-Z][a-z]+)$`),
	// name immediately followed by a resume header keyword
	regexp.MustCompile(`(?m)^([A-Z][a-z]+\s+[A-Z][a-z]+)(?:\s*(?:Resume|CV|Curriculum Vitae|Professional Summary|Experience))`),
	// multi-word title-case line at the start
	regexp.MustCompile(`(?m)^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)$`),
}

var titleCaseLine = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+$`)

// PlainText concatenates the text content of every page in page order.
func PlainText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
	}
	return textBuilder.String(), nil
}

// Identity runs PlainText and applies best-effort name and email heuristics.
// Empty results mean "not found"; values are never fabricated, so callers
// that require identity must treat empty as a validation failure.
func Identity(data []byte) (name, email string, err error) {
	text, err := PlainText(data)
	if err != nil {
		return "", "", err
	}
	name, email = IdentityFromText(text)
	return name, email, nil
}

// IdentityFromText applies the heuristics to already-extracted text.
func IdentityFromText(text string) (name, email string) {
	email = emailPattern.FindString(text)
	name = extractName(text)
	return name, email
}

func extractName(text string) string {
	for _, pattern := range namePatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			return strings.TrimSpace(match[1])
		}
	}

	// Fall back to scanning the first few non-empty lines for something
	// that looks like a title-case name.
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > 5 {
			break
		}
		if titleCaseLine.MatchString(line) {
			return line
		}
	}

	return ""
}
