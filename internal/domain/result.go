package domain

import (
	"context"
	"time"
)

// Labels used by the stored answer rows.
const (
	LabelFake = "Fake"
	LabelReal = "Real"
)

// LabelFor maps an AI-generated flag to its stored label.
func LabelFor(aiGenerated bool) string {
	if aiGenerated {
		return LabelFake
	}
	return LabelReal
}

// TransportAnswer is one answer row in the persisted record.
type TransportAnswer struct {
	ImageID       string  `json:"imageId" db:"IMAGE_ID"`
	UserAnswer    string  `json:"userAnswer" db:"USER_ANSWER"`
	CorrectAnswer string  `json:"correctAnswer" db:"CORRECT_ANSWER"`
	IsCorrect     int     `json:"isCorrect" db:"IS_CORRECT"`
	ResponseTime  float64 `json:"responseTime" db:"RESPONSE_TIME"` // seconds
	Mode          bool    `json:"mode" db:"MODE_WITH_FEEDBACK"`    // true = with feedback
}

// SummaryRecord is the derived record written once per completed, consented run.
type SummaryRecord struct {
	// ID is the run's persistence key; stores use it as the primary key / document id.
	ID      string            `json:"id"`
	UserID  string            `json:"userId"`
	Answers []TransportAnswer `json:"answers"`

	Accuracy    float64 `json:"Accuracy"`
	WFAccuracy  float64 `json:"WFAccuracy"`
	WOFAccuracy float64 `json:"WOFAccuracy"`

	TotalTP int `json:"totalTP"`
	TotalTN int `json:"totalTN"`
	WFTP    int `json:"WF_TP"`
	WFTN    int `json:"WF_TN"`
	WOFTP   int `json:"WOF_TP"`
	WOFTN   int `json:"WOF_TN"`

	WFResponseTime  float64 `json:"WFResponseTime"`
	WOFResponseTime float64 `json:"WOFResponseTime"`

	NoFeedbackFirst bool `json:"noFeedbackFirst"`

	// CreatedAt is filled by the store (server time); zero when writing.
	CreatedAt time.Time `json:"timestamp"`
}

// ResultStore is the port for an append-only destination of summary records.
// Writing a record whose ID already exists must fail with ErrAlreadyPersisted.
type ResultStore interface {
	Name() string
	SaveResult(ctx context.Context, record *SummaryRecord) error
}

// ResultLister is implemented by stores that can read records back.
type ResultLister interface {
	ListResults(ctx context.Context, limit int) ([]*SummaryRecord, error)
}
