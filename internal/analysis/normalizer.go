package analysis

import (
	"encoding/json"
	"regexp"
	"strings"
)

// codeFence matches a response that is exactly one fenced code block, with
// or without a language tag.
var codeFence = regexp.MustCompile("(?s)^```[a-zA-Z]*[ \t]*\n?(.*?)\n?```$")

// Normalize strips non-JSON wrapping from raw model output and returns valid
// JSON text. Already-valid JSON passes through unchanged. If fence stripping
// is not enough, one recovery pass extracts the substring between the first
// `{` and the last `}` to shed any preamble or postamble. Anything still
// unparseable fails with *MalformedOutputError; no retry or re-query happens
// here.
func Normalize(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)

	if m := codeFence.FindStringSubmatch(cleaned); m != nil {
		cleaned = strings.TrimSpace(m[1])
	}

	if json.Valid([]byte(cleaned)) {
		return cleaned, nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		candidate := cleaned[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
	}

	return "", &MalformedOutputError{Raw: raw}
}
