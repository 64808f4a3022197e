package model

// Intent labels, in classifier declaration order
const (
	IntentQuoteHome     = "quote_home"
	IntentBookingNew    = "booking_new"
	IntentBookingStatus = "booking_status"
	IntentFAQGeneric    = "faq_generic"
	IntentEscalateHuman = "escalate_human"
)

// IntentLabels lists every intent label in declaration order
var IntentLabels = []string{
	IntentQuoteHome,
	IntentBookingNew,
	IntentBookingStatus,
	IntentFAQGeneric,
	IntentEscalateHuman,
}

// IsIntentLabel reports whether name is one of the known intent labels
func IsIntentLabel(name string) bool {
	for _, label := range IntentLabels {
		if label == name {
			return true
		}
	}
	return false
}

// IntentResult represents the classified intent of an utterance
type IntentResult struct {
	Name         string        `json:"name"`
	Confidence   float64       `json:"confidence"`
	Alternatives []Alternative `json:"alternatives"`
}

// Alternative is a lower-ranked intent candidate
type Alternative struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}
