package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Intent
		wantErr bool
	}{
		{
			name:  "appointment booking",
			input: "appointment_booking",
			want:  IntentAppointmentBooking,
		},
		{
			name:  "urgent medical issue",
			input: "urgent_medical_issue",
			want:  IntentUrgentMedicalIssue,
		},
		{
			name:  "referral request",
			input: "referral_request",
			want:  IntentReferralRequest,
		},
		{
			name:    "unknown intent",
			input:   "pizza_order",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "case sensitive",
			input:   "Appointment_Booking",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIntent(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUrgency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Urgency
		wantErr bool
	}{
		{name: "low", input: "low", want: UrgencyLow},
		{name: "medium", input: "medium", want: UrgencyMedium},
		{name: "high", input: "high", want: UrgencyHigh},
		{name: "unknown", input: "critical", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUrgency(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntentsCoversAllConstants(t *testing.T) {
	intents := Intents()
	assert.Len(t, intents, 8)

	seen := make(map[Intent]bool, len(intents))
	for _, intent := range intents {
		assert.False(t, seen[intent], "duplicate intent %q", intent)
		seen[intent] = true
	}
}
