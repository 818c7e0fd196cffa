package domain

import "time"

const (
	// QuestionCount is the number of images shown in one session.
	QuestionCount = 20
	// HalfSize is the number of questions run in each feedback mode.
	HalfSize = QuestionCount / 2
)

// Mode is the feedback behaviour of a question.
type Mode string

const (
	ModeWithFeedback Mode = "with_feedback"
	ModeNoFeedback   Mode = "no_feedback"
)

// ShowsFeedback reports whether the participant sees the correct label right after answering.
func (m Mode) ShowsFeedback() bool {
	return m == ModeWithFeedback
}

// AnswerRecord is created exactly once per question and never mutated afterwards.
type AnswerRecord struct {
	ImageID        string `json:"image_id"`
	UserLabel      bool   `json:"user_label"`
	GroundTruth    bool   `json:"ground_truth"`
	ResponseTimeMs int64  `json:"response_time_ms"`
	IsCorrect      bool   `json:"is_correct"`
	WithFeedback   bool   `json:"with_feedback"`
}

// NewAnswerRecord builds the record for a submitted label. Negative durations are clamped to zero.
func NewAnswerRecord(image ImageItem, userLabel bool, responseTime time.Duration, mode Mode) AnswerRecord {
	ms := responseTime.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return AnswerRecord{
		ImageID:        image.ID,
		UserLabel:      userLabel,
		GroundTruth:    image.AIGenerated,
		ResponseTimeMs: ms,
		IsCorrect:      userLabel == image.AIGenerated,
		WithFeedback:   mode.ShowsFeedback(),
	}
}
