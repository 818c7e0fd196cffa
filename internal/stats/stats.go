// Package stats derives the summary statistics of a completed quiz run.
// All functions are pure and safe for concurrent use.
package stats

import (
	"errors"
	"fmt"
	"strconv"

	"image-judge/internal/domain"
)

// ErrIncompleteAnswers is returned by Summarize when a run does not hold exactly one
// answer per question.
var ErrIncompleteAnswers = errors.New("stats: run does not have a full set of answers")

// Mode names as shown to participants.
const (
	NameWithFeedback = "With Feedback"
	NameNoFeedback   = "No Feedback"
)

// OverallStats aggregates the whole run. Averages always divide by the fixed question count.
type OverallStats struct {
	TotalQuestions        int     `json:"total_questions"`
	CorrectAnswers        int     `json:"correct_answers"`
	Accuracy              float64 `json:"accuracy"`
	AverageResponseTimeMs float64 `json:"average_response_time_ms"`
	TotalTimeMs           int64   `json:"total_time_ms"`
}

// HalfStats aggregates one half of the run. Position is 1 for questions 1-10 and 2 for
// questions 11-20.
type HalfStats struct {
	Position              int                   `json:"position"`
	Mode                  domain.Mode           `json:"mode"`
	Name                  string                `json:"name"`
	Answers               []domain.AnswerRecord `json:"-"`
	CorrectAnswers        int                   `json:"correct_answers"`
	Accuracy              float64               `json:"accuracy"`
	AverageResponseTimeMs float64               `json:"average_response_time_ms"`
	TotalTimeMs           int64                 `json:"total_time_ms"`
}

// ModeStats holds both halves in presentation order.
type ModeStats struct {
	First  HalfStats `json:"first"`
	Second HalfStats `json:"second"`
}

// WithFeedback returns the half that ran with feedback.
func (m ModeStats) WithFeedback() HalfStats {
	if m.First.Mode == domain.ModeWithFeedback {
		return m.First
	}
	return m.Second
}

// NoFeedback returns the half that ran without feedback.
func (m ModeStats) NoFeedback() HalfStats {
	if m.First.Mode == domain.ModeNoFeedback {
		return m.First
	}
	return m.Second
}

// Overall computes the run-wide statistics.
func Overall(answers []domain.AnswerRecord) OverallStats {
	correct, total := tally(answers)
	return OverallStats{
		TotalQuestions:        domain.QuestionCount,
		CorrectAnswers:        correct,
		Accuracy:              float64(correct) / domain.QuestionCount * 100,
		AverageResponseTimeMs: float64(total) / domain.QuestionCount,
		TotalTimeMs:           total,
	}
}

// ByMode splits answers into the first and second ten by position and labels each half
// with the mode it ran in.
func ByMode(answers []domain.AnswerRecord, modeOneFirst bool) ModeStats {
	return ModeStats{
		First:  half(answerSet(answers, 1), 1, modeOneFirst),
		Second: half(answerSet(answers, 2), 2, modeOneFirst),
	}
}

// ModeName returns the display name of the mode used for a half.
func ModeName(modeOneFirst bool, position int) string {
	if modeForPosition(modeOneFirst, position) == domain.ModeWithFeedback {
		return NameWithFeedback
	}
	return NameNoFeedback
}

// ModeOrderLabel is the compact order label: "1→2" when the feedback half came first.
func ModeOrderLabel(modeOneFirst bool) string {
	if modeOneFirst {
		return "1→2"
	}
	return "2→1"
}

// ModeOrderDescription spells out the order label.
func ModeOrderDescription(modeOneFirst bool) string {
	if modeOneFirst {
		return "With then No feedback"
	}
	return "No then With feedback"
}

// FormatSeconds renders milliseconds as seconds with the given number of decimals.
func FormatSeconds(ms float64, decimals int) string {
	return strconv.FormatFloat(ms/1000, 'f', decimals, 64)
}

// FormatClock renders milliseconds as m:ss.mmm.
func FormatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	mins := ms / 60000
	secs := (ms / 1000) % 60
	return fmt.Sprintf("%d:%02d.%03d", mins, secs, ms%1000)
}

func answerSet(answers []domain.AnswerRecord, position int) []domain.AnswerRecord {
	lo, hi := 0, domain.HalfSize
	if position == 2 {
		lo, hi = domain.HalfSize, domain.QuestionCount
	}
	if lo > len(answers) {
		lo = len(answers)
	}
	if hi > len(answers) {
		hi = len(answers)
	}
	return answers[lo:hi:hi]
}

func half(answers []domain.AnswerRecord, position int, modeOneFirst bool) HalfStats {
	correct, total := tally(answers)
	return HalfStats{
		Position:              position,
		Mode:                  modeForPosition(modeOneFirst, position),
		Name:                  ModeName(modeOneFirst, position),
		Answers:               answers,
		CorrectAnswers:        correct,
		Accuracy:              float64(correct) / domain.HalfSize * 100,
		AverageResponseTimeMs: float64(total) / domain.HalfSize,
		TotalTimeMs:           total,
	}
}

func modeForPosition(modeOneFirst bool, position int) domain.Mode {
	return domain.ModeForIndex(modeOneFirst, (position-1)*domain.HalfSize)
}

func tally(answers []domain.AnswerRecord) (correct int, totalMs int64) {
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
		totalMs += a.ResponseTimeMs
	}
	return correct, totalMs
}
