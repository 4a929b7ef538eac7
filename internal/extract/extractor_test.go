package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildPDF assembles a minimal one-page document showing each text run with a
// Helvetica Tj operator. Enough structure for the reader to walk the page
// tree and decode the content stream.
func buildPDF(t *testing.T, texts ...string) []byte {
	t.Helper()

	var content strings.Builder
	content.WriteString("BT /F1 12 Tf 72 720 Td ")
	for i, text := range texts {
		if i > 0 {
			content.WriteString("0 -16 Td ")
		}
		fmt.Fprintf(&content, "(%s) Tj ", text)
	}
	content.WriteString("ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefStart)
	return buf.Bytes()
}

func TestPlainTextReadsGeneratedPDF(t *testing.T) {
	data := buildPDF(t, "JANE DOE ", "jane@example.com")

	text, err := PlainText(data)
	if err != nil {
		t.Fatalf("PlainText error: %v", err)
	}
	for _, want := range []string{"JANE DOE", "jane@example.com"} {
		if !strings.Contains(text, want) {
			t.Fatalf("extracted text missing %q:\n%s", want, text)
		}
	}
}

func TestIdentityFromGeneratedPDF(t *testing.T) {
	data := buildPDF(t, "Resume of a backend engineer. ", "Contact: jane@example.com")

	_, email, err := Identity(data)
	if err != nil {
		t.Fatalf("Identity error: %v", err)
	}
	if email != "jane@example.com" {
		t.Fatalf("expected email jane@example.com, got %q", email)
	}
}

func TestPlainTextRejectsNonPDF(t *testing.T) {
	_, err := PlainText([]byte("this is definitely not a pdf"))
	if !errors.Is(err, ErrUnreadableDocument) {
		t.Fatalf("expected unreadable-document error, got %v", err)
	}
}

func TestPlainTextRejectsEmptyInput(t *testing.T) {
	_, err := PlainText(nil)
	if !errors.Is(err, ErrUnreadableDocument) {
		t.Fatalf("expected unreadable-document error, got %v", err)
	}
}

func TestIdentityFromTextAllCapsName(t *testing.T) {
	text := "JANE DOE\njane.doe@example.com\nSoftware Engineer with 5 years of experience."

	name, email := IdentityFromText(text)
	if name != "JANE DOE" {
		t.Fatalf("expected name JANE DOE, got %q", name)
	}
	if email != "jane.doe@example.com" {
		t.Fatalf("expected email jane.doe@example.com, got %q", email)
	}
}

func TestIdentityFromTextTitleCaseName(t *testing.T) {
	text := "Jane Doe\nExperienced backend engineer\njd@corp.io"

	name, email := IdentityFromText(text)
	if name != "Jane Doe" {
		t.Fatalf("expected name Jane Doe, got %q", name)
	}
	if email != "jd@corp.io" {
		t.Fatalf("expected email jd@corp.io, got %q", email)
	}
}

func TestIdentityFromTextNameBeforeHeaderKeyword(t *testing.T) {
	text := "John Smith Resume\njohn at example dot com"

	name, email := IdentityFromText(text)
	if name != "John Smith" {
		t.Fatalf("expected name John Smith, got %q", name)
	}
	if email != "" {
		t.Fatalf("expected no email, got %q", email)
	}
}

func TestIdentityFromTextFallbackScansEarlyLines(t *testing.T) {
	// The name line carries stray indentation, so the anchored patterns
	// miss it and only the line-by-line scan can find it.
	text := "RESUME 2024 EDITION!\n---\n   Maria Garcia Lopez  \nmaria@example.com"

	name, _ := IdentityFromText(text)
	if name != "Maria Garcia Lopez" {
		t.Fatalf("expected fallback scan to find the name, got %q", name)
	}
}

func TestIdentityFromTextNothingFound(t *testing.T) {
	name, email := IdentityFromText("lowercase gibberish without structure 12345")
	if name != "" || email != "" {
		t.Fatalf("expected empty identity, got name=%q email=%q", name, email)
	}
}
