// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// Intent is the caller's classified purpose, one of a fixed set.
type Intent string

// Recognized call intents.
const (
	IntentAppointmentBooking Intent = "appointment_booking"
	IntentPrescriptionRefill Intent = "prescription_refill"
	IntentBillingQuestion    Intent = "billing_question"
	IntentUrgentMedicalIssue Intent = "urgent_medical_issue"
	IntentGeneralInquiry     Intent = "general_inquiry"
	IntentInsuranceQuestion  Intent = "insurance_question"
	IntentLabResults         Intent = "lab_results"
	IntentReferralRequest    Intent = "referral_request"
)

// Intents lists every recognized intent in a stable order.
func Intents() []Intent {
	return []Intent{
		IntentAppointmentBooking,
		IntentPrescriptionRefill,
		IntentBillingQuestion,
		IntentUrgentMedicalIssue,
		IntentGeneralInquiry,
		IntentInsuranceQuestion,
		IntentLabResults,
		IntentReferralRequest,
	}
}

// ParseIntent converts a string into an Intent, rejecting unknown values.
func ParseIntent(s string) (Intent, error) {
	for _, intent := range Intents() {
		if s == string(intent) {
			return intent, nil
		}
	}
	return "", fmt.Errorf("unknown intent: %q", s)
}

// Urgency is the severity tier of a call.
type Urgency string

// Urgency levels.
const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ParseUrgency converts a string into an Urgency, rejecting unknown values.
func ParseUrgency(s string) (Urgency, error) {
	switch Urgency(s) {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return Urgency(s), nil
	default:
		return "", fmt.Errorf("unknown urgency: %q", s)
	}
}

// Analysis is the structured result of analyzing a call transcript.
// Name, DOB, Phone, and Speakers are genuinely optional; everything else is
// guaranteed present and valid after schema validation.
type Analysis struct {
	Intent     Intent   `json:"intent"`
	Name       *string  `json:"name"`
	DOB        *string  `json:"dob"`
	Phone      *string  `json:"phone"`
	Summary    string   `json:"summary"`
	Urgency    Urgency  `json:"urgency"`
	Confidence float64  `json:"confidence"`
	Speakers   []string `json:"speakers"`
}
