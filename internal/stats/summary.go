package stats

import (
	"fmt"

	"image-judge/internal/domain"
)

// DetailRow is one line of the per-question result list.
type DetailRow struct {
	Position       int         `json:"position"`
	ImageID        string      `json:"image_id"`
	Locator        string      `json:"locator,omitempty"`
	UserLabel      bool        `json:"user_label"`
	GroundTruth    bool        `json:"ground_truth"`
	IsCorrect      bool        `json:"is_correct"`
	Mode           domain.Mode `json:"mode"`
	ResponseTimeMs int64       `json:"response_time_ms"`
}

// Summary bundles everything the summary view shows.
type Summary struct {
	Overall              OverallStats `json:"overall"`
	Modes                ModeStats    `json:"modes"`
	ModeOneFirst         bool         `json:"mode_one_first"`
	ModeOrder            string       `json:"mode_order"`
	ModeOrderDescription string       `json:"mode_order_description"`
	Details              []DetailRow  `json:"details"`
}

// Summarize computes the summary of a complete run.
func Summarize(answers []domain.AnswerRecord, modeOneFirst bool) (*Summary, error) {
	if len(answers) != domain.QuestionCount {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrIncompleteAnswers, len(answers), domain.QuestionCount)
	}

	details := make([]DetailRow, len(answers))
	for i, a := range answers {
		mode := domain.ModeNoFeedback
		if a.WithFeedback {
			mode = domain.ModeWithFeedback
		}
		details[i] = DetailRow{
			Position:       i + 1,
			ImageID:        a.ImageID,
			UserLabel:      a.UserLabel,
			GroundTruth:    a.GroundTruth,
			IsCorrect:      a.IsCorrect,
			Mode:           mode,
			ResponseTimeMs: a.ResponseTimeMs,
		}
	}

	return &Summary{
		Overall:              Overall(answers),
		Modes:                ByMode(answers, modeOneFirst),
		ModeOneFirst:         modeOneFirst,
		ModeOrder:            ModeOrderLabel(modeOneFirst),
		ModeOrderDescription: ModeOrderDescription(modeOneFirst),
		Details:              details,
	}, nil
}

// SummarizeCompletion summarizes a finished run and attaches image locators to the rows.
func SummarizeCompletion(c domain.Completion) (*Summary, error) {
	summary, err := Summarize(c.Answers, c.ModeOneFirst)
	if err != nil {
		return nil, err
	}
	pool := domain.ImagePool(c.Images)
	for i := range summary.Details {
		if img, ok := pool.Find(summary.Details[i].ImageID); ok {
			summary.Details[i].Locator = img.Locator
		}
	}
	return summary, nil
}
