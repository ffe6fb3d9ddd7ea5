package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	minTranscriptChars = 10
	minTranscriptWords = 3

	// Below this share of letters/digits/spaces the text is symbol soup.
	minNaturalRatio = 0.65

	// Below this unique-word share (past repetitionMinWords) the text is spam.
	minUniqueRatio     = 0.3
	repetitionMinWords = 20
)

var (
	markupTag   = regexp.MustCompile(`<[a-zA-Z][^>]*>`)
	codeLine    = regexp.MustCompile(`(?m)^\s*(def|class|function|func|import|from|return|var|const|let|for|while|if)\b`)
	callOrBrace = regexp.MustCompile(`\)\s*[:{]`)
)

// ValidateTranscript applies cheap plausibility checks before any provider
// call is spent on the input. Transcripts with speaker labels, phone
// numbers, and dates all pass; pasted code, markup, symbol garbage, and
// degenerate repetition do not. Failures are *InputError.
func ValidateTranscript(transcript string) error {
	trimmed := strings.TrimSpace(transcript)
	if trimmed == "" {
		return &InputError{Reason: "transcript is empty"}
	}
	if len(trimmed) < minTranscriptChars {
		return &InputError{Reason: fmt.Sprintf("transcript must be at least %d characters", minTranscriptChars)}
	}

	words := strings.Fields(trimmed)
	if len(words) < minTranscriptWords {
		return &InputError{Reason: fmt.Sprintf("transcript must contain at least %d words", minTranscriptWords)}
	}

	if markupTag.MatchString(trimmed) || codeLine.MatchString(trimmed) || callOrBrace.MatchString(trimmed) {
		return &InputError{Reason: "transcript looks like code or markup, not natural language"}
	}

	if naturalRatio(trimmed) < minNaturalRatio {
		return &InputError{Reason: "transcript does not look like natural language"}
	}

	if len(words) >= repetitionMinWords && uniqueRatio(words) < minUniqueRatio {
		return &InputError{Reason: "transcript is mostly repetition"}
	}

	return nil
}

// naturalRatio is the share of letters, digits, and whitespace in the text.
func naturalRatio(s string) float64 {
	var natural, total int
	for _, r := range s {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			natural++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(natural) / float64(total)
}

// uniqueRatio is the share of distinct lowercased words.
func uniqueRatio(words []string) float64 {
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[strings.ToLower(w)] = struct{}{}
	}
	return float64(len(seen)) / float64(len(words))
}
