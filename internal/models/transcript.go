package models

import "strings"

// Speaker identifies who produced a transcript entry.
type Speaker string

const (
	SpeakerAI        Speaker = "AI"
	SpeakerCandidate Speaker = "You"
	SpeakerSystem    Speaker = "System"
)

// Entry is one line of the interview: a question, an answer, or a system
// annotation.
type Entry struct {
	Speaker Speaker
	Text    string
}

// Transcript is the append-only ordered record of the conversation. The
// string form with "AI:"/"You:"/"System:" prefixes exists only at the
// serialization boundary; all control flow derives from the entries.
type Transcript []Entry

// ParseTranscript deserializes the stored newline-separated form. Lines
// without a recognized prefix are treated as AI output, matching how older
// transcripts were recorded.
func ParseTranscript(raw string) Transcript {
	var entries Transcript
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "AI:"):
			entries = append(entries, Entry{SpeakerAI, strings.TrimSpace(strings.TrimPrefix(line, "AI:"))})
		case strings.HasPrefix(line, "You:"):
			entries = append(entries, Entry{SpeakerCandidate, strings.TrimSpace(strings.TrimPrefix(line, "You:"))})
		case strings.HasPrefix(line, "System:"):
			entries = append(entries, Entry{SpeakerSystem, strings.TrimSpace(strings.TrimPrefix(line, "System:"))})
		default:
			entries = append(entries, Entry{SpeakerAI, line})
		}
	}
	return entries
}

// Append returns a new transcript with the entry added. The receiver is
// never mutated in place; callers persist the returned value.
func (t Transcript) Append(speaker Speaker, text string) Transcript {
	out := make(Transcript, len(t), len(t)+1)
	copy(out, t)
	return append(out, Entry{speaker, text})
}

// QuestionCount is the number of AI entries, the sole source of truth for
// how many questions have been asked.
func (t Transcript) QuestionCount() int {
	count := 0
	for _, e := range t {
		if e.Speaker == SpeakerAI {
			count++
		}
	}
	return count
}

// String serializes the transcript back to its stored newline form.
func (t Transcript) String() string {
	var sb strings.Builder
	for i, e := range t {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(string(e.Speaker))
		sb.WriteString(": ")
		sb.WriteString(e.Text)
	}
	return sb.String()
}
