package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "plain JSON passes through",
			raw:  `{"intent": "general_inquiry"}`,
			want: `{"intent": "general_inquiry"}`,
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "\n\n  {\"intent\": \"general_inquiry\"}  \n",
			want: `{"intent": "general_inquiry"}`,
		},
		{
			name: "json fence stripped",
			raw:  "```json\n{\"intent\": \"lab_results\"}\n```",
			want: `{"intent": "lab_results"}`,
		},
		{
			name: "bare fence stripped",
			raw:  "```\n{\"urgency\": \"low\"}\n```",
			want: `{"urgency": "low"}`,
		},
		{
			name: "preamble before object recovered",
			raw:  "Here is the analysis you asked for:\n{\"urgency\": \"high\"}",
			want: `{"urgency": "high"}`,
		},
		{
			name: "postamble after object recovered",
			raw:  `{"urgency": "high"} Let me know if you need anything else.`,
			want: `{"urgency": "high"}`,
		},
		{
			name: "braces inside string values survive recovery",
			raw:  "result: {\"summary\": \"asked about {deductible}\", \"urgency\": \"low\"}",
			want: `{"summary": "asked about {deductible}", "urgency": "low"}`,
		},
		{
			name:    "prose with no JSON fails",
			raw:     "I'm sorry, I can't analyze that transcript.",
			wantErr: true,
		},
		{
			name:    "truncated object fails",
			raw:     `{"intent": "appointment_booking", "summary":`,
			wantErr: true,
		},
		{
			name:    "empty input fails",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr {
				var malformed *MalformedOutputError
				require.ErrorAs(t, err, &malformed)
				assert.Equal(t, tt.raw, malformed.Raw)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"intent\": \"billing_question\", \"urgency\": \"low\"}\n```",
		"Sure! {\"intent\": \"lab_results\"}",
		`{"intent": "general_inquiry"}`,
	}

	for _, raw := range inputs {
		once, err := Normalize(raw)
		require.NoError(t, err)
		twice, err := Normalize(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestMalformedOutputErrorTruncatesSnippet(t *testing.T) {
	long := ""
	for i := 0; i < 50; i++ {
		long += "not json "
	}
	_, err := Normalize(long)

	var malformed *MalformedOutputError
	require.ErrorAs(t, err, &malformed)
	assert.Less(t, len(malformed.Error()), len(long))
	assert.Contains(t, malformed.Error(), "...")
}
