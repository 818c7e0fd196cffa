package stats

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-judge/internal/domain"
)

// run builds a full set of answers; correct(i) decides correctness and every answer takes ms.
func run(modeOneFirst bool, ms int64, correct func(i int) bool) []domain.AnswerRecord {
	answers := make([]domain.AnswerRecord, domain.QuestionCount)
	for i := range answers {
		truth := i%2 == 0
		label := truth
		if !correct(i) {
			label = !truth
		}
		answers[i] = domain.AnswerRecord{
			ImageID:        fmt.Sprintf("img%03d", i+1),
			UserLabel:      label,
			GroundTruth:    truth,
			ResponseTimeMs: ms,
			IsCorrect:      label == truth,
			WithFeedback:   domain.ModeForIndex(modeOneFirst, i).ShowsFeedback(),
		}
	}
	return answers
}

func TestOverall_AllCorrect(t *testing.T) {
	got := Overall(run(true, 2000, func(int) bool { return true }))
	want := OverallStats{
		TotalQuestions:        20,
		CorrectAnswers:        20,
		Accuracy:              100,
		AverageResponseTimeMs: 2000,
		TotalTimeMs:           40000,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Overall() mismatch (-want +got):\n%s", diff)
	}
}

func TestOverall_FixedDivisor(t *testing.T) {
	answers := run(true, 1000, func(i int) bool { return i < 5 })[:10]
	got := Overall(answers)
	assert.Equal(t, 20, got.TotalQuestions)
	assert.Equal(t, 5, got.CorrectAnswers)
	assert.InDelta(t, 25.0, got.Accuracy, 1e-9)
	assert.InDelta(t, 500.0, got.AverageResponseTimeMs, 1e-9)
}

func TestByMode_AllCorrect(t *testing.T) {
	m := ByMode(run(true, 2000, func(int) bool { return true }), true)
	for _, h := range []HalfStats{m.First, m.Second} {
		assert.InDelta(t, 100.0, h.Accuracy, 1e-9)
		assert.InDelta(t, 2000.0, h.AverageResponseTimeMs, 1e-9)
		assert.Equal(t, int64(20000), h.TotalTimeMs)
		assert.Len(t, h.Answers, 10)
	}
}

func TestByMode_NoFeedbackFirstScenario(t *testing.T) {
	answers := run(false, 1500, func(i int) bool { return i >= 10 })
	m := ByMode(answers, false)

	assert.Equal(t, 1, m.First.Position)
	assert.Equal(t, domain.ModeNoFeedback, m.First.Mode)
	assert.Equal(t, NameNoFeedback, m.First.Name)
	assert.InDelta(t, 0.0, m.First.Accuracy, 1e-9)

	assert.Equal(t, 2, m.Second.Position)
	assert.Equal(t, domain.ModeWithFeedback, m.Second.Mode)
	assert.Equal(t, NameWithFeedback, m.Second.Name)
	assert.InDelta(t, 100.0, m.Second.Accuracy, 1e-9)

	assert.InDelta(t, 100.0, m.WithFeedback().Accuracy, 1e-9)
	assert.InDelta(t, 0.0, m.NoFeedback().Accuracy, 1e-9)
}

func TestByMode_RecombinesToOverall(t *testing.T) {
	for _, modeOneFirst := range []bool{true, false} {
		answers := run(modeOneFirst, 1234, func(i int) bool { return i%3 != 0 })
		o := Overall(answers)
		m := ByMode(answers, modeOneFirst)
		assert.InDelta(t, o.Accuracy, (m.First.Accuracy+m.Second.Accuracy)/2, 1e-9)
		assert.Equal(t, o.TotalTimeMs, m.First.TotalTimeMs+m.Second.TotalTimeMs)
		assert.GreaterOrEqual(t, o.Accuracy, 0.0)
		assert.LessOrEqual(t, o.Accuracy, 100.0)
	}
}

func TestModeName(t *testing.T) {
	assert.Equal(t, NameWithFeedback, ModeName(true, 1))
	assert.Equal(t, NameNoFeedback, ModeName(true, 2))
	assert.Equal(t, NameNoFeedback, ModeName(false, 1))
	assert.Equal(t, NameWithFeedback, ModeName(false, 2))
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		ms       float64
		decimals int
		want     string
	}{
		{0, 1, "0.0"},
		{1500, 1, "1.5"},
		{1234, 2, "1.23"},
		{2000, 0, "2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSeconds(tt.ms, tt.decimals))
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "1:01.000", FormatClock(61000))
	assert.Equal(t, "0:00.000", FormatClock(0))
	assert.Equal(t, "0:05.042", FormatClock(5042))
	assert.Equal(t, "12:30.999", FormatClock(750999))
	assert.Equal(t, "0:00.000", FormatClock(-5))
}

func TestSummarize(t *testing.T) {
	answers := run(true, 1000, func(i int) bool { return true })
	s, err := Summarize(answers, true)
	require.NoError(t, err)
	assert.Equal(t, "1→2", s.ModeOrder)
	assert.Equal(t, "With then No feedback", s.ModeOrderDescription)
	require.Len(t, s.Details, 20)
	assert.Equal(t, 1, s.Details[0].Position)
	assert.Equal(t, domain.ModeWithFeedback, s.Details[0].Mode)
	assert.Equal(t, domain.ModeNoFeedback, s.Details[19].Mode)

	_, err = Summarize(answers[:19], true)
	assert.ErrorIs(t, err, ErrIncompleteAnswers)
}

func TestSummarizeCompletion_AttachesLocators(t *testing.T) {
	answers := run(false, 1000, func(i int) bool { return true })
	images := make([]domain.ImageItem, len(answers))
	for i, a := range answers {
		images[i] = domain.ImageItem{ID: a.ImageID, Locator: "https://img.test/" + a.ImageID, AIGenerated: a.GroundTruth}
	}
	s, err := SummarizeCompletion(domain.Completion{Answers: answers, Images: images})
	require.NoError(t, err)
	assert.Equal(t, "2→1", s.ModeOrder)
	assert.Equal(t, "https://img.test/img001", s.Details[0].Locator)
}
