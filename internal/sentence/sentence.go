// Package sentence splits response text into sentences and words for
// length and format shaping.
package sentence

import (
	"strings"
	"unicode"
)

// Split breaks text into trimmed sentences. A sentence ends at '.', '!' or
// '?' followed by whitespace or end of text, or at a line break. Runs of
// terminators ("?!", "...") stay with their sentence.
func Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var out []string
	var current strings.Builder

	flush := func() {
		t := strings.TrimSpace(current.String())
		if t != "" {
			out = append(out, t)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		if r == '\n' {
			flush()
			continue
		}
		current.WriteRune(r)

		if !isTerminator(r) {
			continue
		}
		// Only split after the last terminator of a run
		if i+1 < len(runes) && isTerminator(runes[i+1]) {
			continue
		}
		if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
			flush()
		}
	}
	flush()

	return out
}

// First returns the first n sentences of text joined by a single space.
// Text with n or fewer sentences is returned trimmed.
func First(text string, n int) string {
	sentences := Split(text)
	if len(sentences) <= n {
		return strings.TrimSpace(text)
	}
	return strings.Join(sentences[:n], " ")
}

// Words returns the number of whitespace-separated words in text.
func Words(text string) int {
	return len(strings.Fields(text))
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
