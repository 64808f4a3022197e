package model

import "time"

// NLURequest represents an utterance to classify
type NLURequest struct {
	RequestID string  `json:"request_id" binding:"required"`
	Utterance *string `json:"utterance" binding:"required"` // may be empty, must be present
	Locale    string  `json:"locale" binding:"required"`
	TenantID  string  `json:"tenant_id" binding:"required"`
}

// NLUOutput carries the classifier and extractor results
type NLUOutput struct {
	Intent           IntentResult `json:"intent"`
	Entities         []Entity     `json:"entities"`
	Locale           string       `json:"locale"`
	ProcessingTimeMs int64        `json:"processing_time_ms"`
}

// NLUResponse is the envelope returned for every NLU request
type NLUResponse struct {
	RequestID string    `json:"request_id"`
	Timestamp string    `json:"timestamp"` // UTC, ISO-8601 with trailing Z
	NLUOutput NLUOutput `json:"nlu_output"`
}

// NLULog is a persisted record of one NLU request
type NLULog struct {
	ID               string     `json:"id" db:"id"`
	RequestID        string     `json:"request_id" db:"request_id"`
	TenantID         string     `json:"tenant_id" db:"tenant_id"`
	Locale           string     `json:"locale" db:"locale"`
	Utterance        string     `json:"utterance" db:"utterance"`
	Intent           string     `json:"intent" db:"intent"`
	Confidence       float64    `json:"confidence" db:"confidence"`
	IntentScores     []float32  `json:"intent_scores" db:"-"` // label declaration order
	Entities         EntityList `json:"entities" db:"entities"`
	ProcessingTimeMs int64      `json:"processing_time_ms" db:"processing_time_ms"`
	CorrectIntent    *string    `json:"correct_intent,omitempty" db:"correct_intent"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}

// FeedbackRequest reports the correct intent for a previously classified request
type FeedbackRequest struct {
	RequestID     string `json:"request_id" binding:"required"`
	CorrectIntent string `json:"correct_intent" binding:"required"`
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
