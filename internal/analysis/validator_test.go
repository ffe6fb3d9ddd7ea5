package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marisol-health/frontdesk/internal/model"
)

const validOutput = `{
	"intent": "prescription_refill",
	"name": "David Levi",
	"dob": "1975-01-05",
	"phone": "555-0199",
	"summary": "Requesting refill of lisinopril 10mg",
	"urgency": "low",
	"confidence": 0.97,
	"speakers": ["Receptionist", "Caller"]
}`

func TestValidateAcceptsCompleteOutput(t *testing.T) {
	result, err := Validate(validOutput)
	require.NoError(t, err)

	assert.Equal(t, model.IntentPrescriptionRefill, result.Intent)
	require.NotNil(t, result.Name)
	assert.Equal(t, "David Levi", *result.Name)
	require.NotNil(t, result.DOB)
	assert.Equal(t, "1975-01-05", *result.DOB)
	require.NotNil(t, result.Phone)
	assert.Equal(t, "555-0199", *result.Phone)
	assert.Equal(t, model.UrgencyLow, result.Urgency)
	assert.InDelta(t, 0.97, result.Confidence, 1e-9)
	assert.Equal(t, []string{"Receptionist", "Caller"}, result.Speakers)
}

func TestValidateOptionalFieldsMayBeNull(t *testing.T) {
	result, err := Validate(`{
		"intent": "general_inquiry",
		"name": null,
		"dob": null,
		"phone": null,
		"summary": "Asked about opening hours",
		"urgency": "low",
		"confidence": 0.8,
		"speakers": []
	}`)
	require.NoError(t, err)

	assert.Nil(t, result.Name)
	assert.Nil(t, result.DOB)
	assert.Nil(t, result.Phone)
	assert.Empty(t, result.Speakers)
}

func TestValidateViolations(t *testing.T) {
	tests := []struct {
		name      string
		jsonText  string
		wantField string
	}{
		{
			name:      "unknown intent",
			jsonText:  `{"intent": "pizza_order", "summary": "s", "urgency": "low", "confidence": 0.5}`,
			wantField: "intent",
		},
		{
			name:      "missing intent",
			jsonText:  `{"summary": "s", "urgency": "low", "confidence": 0.5}`,
			wantField: "intent",
		},
		{
			name:      "unknown urgency tier",
			jsonText:  `{"intent": "lab_results", "summary": "s", "urgency": "critical", "confidence": 0.5}`,
			wantField: "urgency",
		},
		{
			name:      "confidence below zero",
			jsonText:  `{"intent": "lab_results", "summary": "s", "urgency": "low", "confidence": -0.1}`,
			wantField: "confidence",
		},
		{
			name:      "confidence above one",
			jsonText:  `{"intent": "lab_results", "summary": "s", "urgency": "low", "confidence": 1.5}`,
			wantField: "confidence",
		},
		{
			name:      "missing summary",
			jsonText:  `{"intent": "lab_results", "urgency": "low", "confidence": 0.5}`,
			wantField: "summary",
		},
		{
			name:      "blank summary",
			jsonText:  `{"intent": "lab_results", "summary": "   ", "urgency": "low", "confidence": 0.5}`,
			wantField: "summary",
		},
		{
			name:      "impossible calendar date",
			jsonText:  `{"intent": "lab_results", "summary": "s", "urgency": "low", "confidence": 0.5, "dob": "13/45/2020"}`,
			wantField: "dob",
		},
		{
			name:      "confidence with wrong type",
			jsonText:  `{"intent": "lab_results", "summary": "s", "urgency": "low", "confidence": "high"}`,
			wantField: "confidence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.jsonText)
			var violation *SchemaViolationError
			require.ErrorAs(t, err, &violation)
			assert.True(t, violation.HasField(tt.wantField),
				"expected violation on %q, got fields %v", tt.wantField, violation.Fields)
		})
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	_, err := Validate(`{"intent": "nope", "urgency": "nope", "confidence": 2.0}`)

	var violation *SchemaViolationError
	require.ErrorAs(t, err, &violation)
	for _, field := range []string{"intent", "urgency", "confidence", "summary"} {
		assert.True(t, violation.HasField(field), "missing violation for %q", field)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1975-01-05", want: "1975-01-05"},
		{in: "01/05/1975", want: "1975-01-05"},
		{in: "1/5/1975", want: "1975-01-05"},
		{in: "03-12-1988", want: "1988-03-12"},
		{in: "January 5th, 1975", want: "1975-01-05"},
		{in: "Jan 5, 1975", want: "1975-01-05"},
		{in: "5 January 1975", want: "1975-01-05"},
		{in: "February 30, 2000", wantErr: true},
		{in: "13/45/2020", wantErr: true},
		{in: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
