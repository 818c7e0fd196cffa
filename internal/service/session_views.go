package service

import (
	"time"

	"image-judge/internal/domain"
	"image-judge/internal/dto"
	"image-judge/internal/stats"
)

func modeLabel(mode domain.Mode) string {
	if mode.ShowsFeedback() {
		return "With feedback"
	}
	return "No feedback"
}

func setNumber(index int) int {
	if index < domain.HalfSize {
		return 1
	}
	return 2
}

func questionView(session *domain.Session, index int) *dto.QuestionView {
	img := session.Images[index]
	mode := domain.ModeForIndex(session.ModeOneFirst, index)
	return &dto.QuestionView{
		Index:     index,
		Number:    index + 1,
		Total:     len(session.Images),
		ImageID:   img.ID,
		Locator:   img.Locator,
		Mode:      string(mode),
		ModeLabel: modeLabel(mode),
		Set:       setNumber(index),
	}
}

func toSessionResponse(session *domain.Session, now time.Time) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:           session.ID,
		Phase:        string(session.Phase),
		Attempt:      session.Attempt,
		Consented:    session.Consented,
		Identified:   session.UserID != "",
		Answered:     len(session.Answers),
		Clock:        stats.FormatClock(0),
		SummaryReady: session.Phase == domain.PhaseSummary,
		UpdatedAt:    session.UpdatedAt,
	}
	if session.Phase == domain.PhaseEvaluation || session.Phase == domain.PhaseSummary {
		modeOneFirst := session.ModeOneFirst
		resp.ModeOneFirst = &modeOneFirst
	}

	switch step := session.Current().(type) {
	case domain.AwaitingAnswer:
		resp.Question = questionView(session, step.Index())
		elapsed := session.Stopwatch.Elapsed(now).Milliseconds()
		resp.ElapsedMs = elapsed
		resp.Clock = stats.FormatClock(elapsed)
	case domain.ShowingFeedback:
		resp.Question = questionView(session, step.Index())
		resp.ElapsedMs = step.Answer.ResponseTimeMs
		resp.Clock = stats.FormatClock(step.Answer.ResponseTimeMs)
		resp.ClockPaused = true
		resp.Feedback = &dto.FeedbackView{
			ImageID:        step.Answer.ImageID,
			IsCorrect:      step.Answer.IsCorrect,
			UserLabel:      domain.LabelFor(step.Answer.UserLabel),
			CorrectLabel:   domain.LabelFor(step.Answer.GroundTruth),
			ResponseTimeMs: step.Answer.ResponseTimeMs,
			ResponseTime:   stats.FormatSeconds(float64(step.Answer.ResponseTimeMs), 2),
		}
	}
	return resp
}

func halfSummary(h stats.HalfStats) dto.HalfSummary {
	rng := "1-10"
	if h.Position == 2 {
		rng = "11-20"
	}
	return dto.HalfSummary{
		Position:          h.Position,
		Range:             rng,
		Mode:              string(h.Mode),
		ModeName:          h.Name,
		CorrectAnswers:    h.CorrectAnswers,
		Accuracy:          h.Accuracy,
		AverageResponseMs: h.AverageResponseTimeMs,
		AverageResponse:   stats.FormatSeconds(h.AverageResponseTimeMs, 1),
		TotalTimeMs:       h.TotalTimeMs,
	}
}

func toSummaryResponse(session *domain.Session, summary *stats.Summary) *dto.SummaryResponse {
	details := make([]dto.DetailRow, len(summary.Details))
	for i, d := range summary.Details {
		details[i] = dto.DetailRow{
			Position:       d.Position,
			ImageID:        d.ImageID,
			Locator:        d.Locator,
			UserLabel:      domain.LabelFor(d.UserLabel),
			CorrectLabel:   domain.LabelFor(d.GroundTruth),
			IsCorrect:      d.IsCorrect,
			Mode:           string(d.Mode),
			ResponseTimeMs: d.ResponseTimeMs,
			ResponseTime:   stats.FormatSeconds(float64(d.ResponseTimeMs), 2),
		}
	}
	return &dto.SummaryResponse{
		SessionID:            session.ID,
		TotalQuestions:       summary.Overall.TotalQuestions,
		CorrectAnswers:       summary.Overall.CorrectAnswers,
		Accuracy:             summary.Overall.Accuracy,
		AverageResponseMs:    summary.Overall.AverageResponseTimeMs,
		TotalTimeMs:          summary.Overall.TotalTimeMs,
		TotalTime:            stats.FormatSeconds(float64(summary.Overall.TotalTimeMs), 1),
		ModeOrder:            summary.ModeOrder,
		ModeOrderDescription: summary.ModeOrderDescription,
		Halves:               []dto.HalfSummary{halfSummary(summary.Modes.First), halfSummary(summary.Modes.Second)},
		WithFeedback:         halfSummary(summary.Modes.WithFeedback()),
		NoFeedback:           halfSummary(summary.Modes.NoFeedback()),
		Details:              details,
		PersistenceRequested: session.PersistenceRequested,
	}
}
