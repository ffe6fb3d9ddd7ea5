package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/marisol-health/frontdesk/internal/model"
)

// rawAnalysis mirrors model.Analysis with pointer fields so missing and
// null-valued fields are distinguishable from zero values.
type rawAnalysis struct {
	Intent     *string  `json:"intent"`
	Name       *string  `json:"name"`
	DOB        *string  `json:"dob"`
	Phone      *string  `json:"phone"`
	Summary    *string  `json:"summary"`
	Urgency    *string  `json:"urgency"`
	Confidence *float64 `json:"confidence"`
	Speakers   []string `json:"speakers"`
}

// Validate checks JSON text against the analysis schema and returns the
// coerced result. It is pure and deterministic. Failures carry a
// *SchemaViolationError naming every offending field; name, phone, and
// speakers are genuinely optional and never cause an error by absence.
func Validate(jsonText string) (model.Analysis, error) {
	var raw rawAnalysis
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return model.Analysis{}, &SchemaViolationError{
				Fields:  []string{typeErr.Field},
				Details: []string{fmt.Sprintf("%s has wrong type: expected %s", typeErr.Field, typeErr.Type)},
			}
		}
		return model.Analysis{}, &SchemaViolationError{
			Fields:  []string{"<document>"},
			Details: []string{fmt.Sprintf("output is not an analysis object: %v", err)},
		}
	}

	violation := &SchemaViolationError{}
	result := model.Analysis{
		Name:     raw.Name,
		Phone:    raw.Phone,
		Speakers: raw.Speakers,
	}

	switch {
	case raw.Intent == nil:
		violation.add("intent", "intent is missing")
	default:
		intent, err := model.ParseIntent(*raw.Intent)
		if err != nil {
			violation.add("intent", err.Error())
		}
		result.Intent = intent
	}

	switch {
	case raw.Urgency == nil:
		violation.add("urgency", "urgency is missing")
	default:
		urgency, err := model.ParseUrgency(*raw.Urgency)
		if err != nil {
			violation.add("urgency", err.Error())
		}
		result.Urgency = urgency
	}

	switch {
	case raw.Confidence == nil:
		violation.add("confidence", "confidence is missing")
	case *raw.Confidence < 0 || *raw.Confidence > 1:
		violation.add("confidence", fmt.Sprintf("confidence must be in [0,1], got %v", *raw.Confidence))
	default:
		result.Confidence = *raw.Confidence
	}

	switch {
	case raw.Summary == nil:
		violation.add("summary", "summary is missing")
	case strings.TrimSpace(*raw.Summary) == "":
		violation.add("summary", "summary is empty")
	default:
		result.Summary = *raw.Summary
	}

	if raw.DOB != nil && *raw.DOB != "" {
		iso, err := normalizeDate(*raw.DOB)
		if err != nil {
			violation.add("dob", fmt.Sprintf("dob %q is not a valid date", *raw.DOB))
		} else {
			result.DOB = &iso
		}
	}

	if len(violation.Fields) > 0 {
		return model.Analysis{}, violation
	}
	return result, nil
}

func (e *SchemaViolationError) add(field, detail string) {
	e.Fields = append(e.Fields, field)
	e.Details = append(e.Details, detail)
}

// ordinalSuffix strips "1st"/"2nd"/"3rd"/"5th" day ordinals so textual
// dates like "January 5th, 1975" parse.
var ordinalSuffix = regexp.MustCompile(`(\d+)(st|nd|rd|th)\b`)

// dateLayouts are the accepted textual date formats, tried in order. US
// month-first conventions follow the transcript prompt's instructions.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"2 January 2006",
}

// normalizeDate parses a date in any accepted format and returns it in
// ISO-8601 form. Calendar impossibilities (month 13, day 45) fail.
func normalizeDate(s string) (string, error) {
	cleaned := ordinalSuffix.ReplaceAllString(strings.TrimSpace(s), "$1")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unrecognized date: %q", s)
}
