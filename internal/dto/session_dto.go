package dto

import "time"

// ConsentRequest records whether the participant agrees to data collection.
// @Description Request body for the consent step
type ConsentRequest struct {
	Consented *bool `json:"consented"`
}

// AnswerRequest is the participant's label for the current image.
// @Description Request body for submitting an answer
type AnswerRequest struct {
	AIGenerated *bool `json:"ai_generated"`
}

// QuestionView describes the image currently on screen.
type QuestionView struct {
	Index     int    `json:"index"`
	Number    int    `json:"number"`
	Total     int    `json:"total"`
	ImageID   string `json:"image_id"`
	Locator   string `json:"locator"`
	Mode      string `json:"mode"`
	ModeLabel string `json:"mode_label"`
	Set       int    `json:"set"`
}

// FeedbackView is shown after an answer in the with-feedback half.
type FeedbackView struct {
	ImageID        string `json:"image_id"`
	IsCorrect      bool   `json:"is_correct"`
	UserLabel      string `json:"user_label"`
	CorrectLabel   string `json:"correct_label"`
	ResponseTimeMs int64  `json:"response_time_ms"`
	ResponseTime   string `json:"response_time"`
}

// SessionResponse is the current view of a quiz session.
// @Description Quiz session state
type SessionResponse struct {
	ID           string        `json:"id"`
	Phase        string        `json:"phase"`
	Attempt      int           `json:"attempt"`
	Consented    bool          `json:"consented"`
	Identified   bool          `json:"identified"`
	ModeOneFirst *bool         `json:"mode_one_first,omitempty"`
	Answered     int           `json:"answered"`
	Question     *QuestionView `json:"question,omitempty"`
	Feedback     *FeedbackView `json:"feedback,omitempty"`
	ElapsedMs    int64         `json:"elapsed_ms"`
	Clock        string        `json:"clock"`
	ClockPaused  bool          `json:"clock_paused"`
	SummaryReady bool          `json:"summary_ready"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// HalfSummary is one block of the performance-by-mode section.
type HalfSummary struct {
	Position          int     `json:"position"`
	Range             string  `json:"range"`
	Mode              string  `json:"mode"`
	ModeName          string  `json:"mode_name"`
	CorrectAnswers    int     `json:"correct_answers"`
	Accuracy          float64 `json:"accuracy"`
	AverageResponseMs float64 `json:"average_response_time_ms"`
	AverageResponse   string  `json:"average_response_time"`
	TotalTimeMs       int64   `json:"total_time_ms"`
}

// DetailRow is one entry of the per-image result list.
type DetailRow struct {
	Position       int    `json:"position"`
	ImageID        string `json:"image_id"`
	Locator        string `json:"locator,omitempty"`
	UserLabel      string `json:"user_label"`
	CorrectLabel   string `json:"correct_label"`
	IsCorrect      bool   `json:"is_correct"`
	Mode           string `json:"mode"`
	ResponseTimeMs int64  `json:"response_time_ms"`
	ResponseTime   string `json:"response_time"`
}

// SummaryResponse holds the statistics shown after the last image.
// @Description Quiz summary statistics
type SummaryResponse struct {
	SessionID            string        `json:"session_id"`
	TotalQuestions       int           `json:"total_questions"`
	CorrectAnswers       int           `json:"correct_answers"`
	Accuracy             float64       `json:"accuracy"`
	AverageResponseMs    float64       `json:"average_response_time_ms"`
	TotalTimeMs          int64         `json:"total_time_ms"`
	TotalTime            string        `json:"total_time"`
	ModeOrder            string        `json:"mode_order"`
	ModeOrderDescription string        `json:"mode_order_description"`
	Halves               []HalfSummary `json:"halves"`
	WithFeedback         HalfSummary   `json:"with_feedback"`
	NoFeedback           HalfSummary   `json:"no_feedback"`
	Details              []DetailRow   `json:"details"`
	PersistenceRequested bool          `json:"persistence_requested"`
}

// ResultListResponse lists stored summary records.
type ResultListResponse struct {
	Results []ResultItem `json:"results"`
}

// ResultItem is a compact view of one stored summary record.
type ResultItem struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Accuracy        float64   `json:"accuracy"`
	WFAccuracy      float64   `json:"wf_accuracy"`
	WOFAccuracy     float64   `json:"wof_accuracy"`
	NoFeedbackFirst bool      `json:"no_feedback_first"`
	CreatedAt       time.Time `json:"created_at"`
}
