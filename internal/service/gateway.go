package service

import (
	"context"
	"errors"
	"fmt"

	"image-judge/internal/domain"
	"image-judge/internal/logger"
	"image-judge/internal/util"

	"go.uber.org/zap"
)

// SaveOutcome describes what the gateway did with a completed run.
type SaveOutcome string

const (
	OutcomeSaved        SaveOutcome = "saved"
	OutcomeNotConsented SaveOutcome = "not_consented"
	OutcomeNoIdentity   SaveOutcome = "no_identity"
	OutcomeDisabled     SaveOutcome = "disabled"
	OutcomeDuplicate    SaveOutcome = "duplicate"
)

// PersistenceGateway turns a completed run into a summary record and hands it to the
// configured result store.
type PersistenceGateway interface {
	Save(ctx context.Context, completion domain.Completion) (SaveOutcome, error)
}

type persistenceGateway struct {
	store domain.ResultStore
}

// NewPersistenceGateway creates a gateway. A nil store disables persistence.
func NewPersistenceGateway(store domain.ResultStore) PersistenceGateway {
	return &persistenceGateway{store: store}
}

func (g *persistenceGateway) Save(ctx context.Context, completion domain.Completion) (SaveOutcome, error) {
	switch {
	case !completion.Consented:
		return OutcomeNotConsented, nil
	case completion.UserID == "":
		return OutcomeNoIdentity, nil
	case g.store == nil:
		return OutcomeDisabled, nil
	}
	if len(completion.Answers) != domain.QuestionCount {
		return "", domain.NewError(domain.CodeIncomplete,
			fmt.Sprintf("completed run has %d answers, want %d", len(completion.Answers), domain.QuestionCount), nil)
	}

	record := BuildSummaryRecord(completion)
	if err := g.store.SaveResult(ctx, record); err != nil {
		if errors.Is(err, domain.ErrAlreadyPersisted) {
			logger.Get().Info("Summary record already stored", zap.String("recordID", record.ID))
			return OutcomeDuplicate, nil
		}
		return "", fmt.Errorf("failed to save summary record to %s: %w", g.store.Name(), err)
	}

	logger.Get().Info("Summary record stored",
		zap.String("recordID", record.ID),
		zap.String("store", g.store.Name()),
		zap.Float64("accuracy", record.Accuracy))
	return OutcomeSaved, nil
}

// BuildSummaryRecord reshapes a completed run into the stored record. Counts are taken
// over the whole run; accuracies divide by the fixed question and half sizes.
func BuildSummaryRecord(c domain.Completion) *domain.SummaryRecord {
	record := &domain.SummaryRecord{
		ID:              c.Key,
		UserID:          c.UserID,
		Answers:         make([]domain.TransportAnswer, 0, len(c.Answers)),
		NoFeedbackFirst: !c.ModeOneFirst,
	}

	var correct, wfCorrect, wofCorrect int
	var wfMs, wofMs int64
	for _, a := range c.Answers {
		isCorrect := 0
		if a.IsCorrect {
			isCorrect = 1
		}
		record.Answers = append(record.Answers, domain.TransportAnswer{
			ImageID:       a.ImageID,
			UserAnswer:    domain.LabelFor(a.UserLabel),
			CorrectAnswer: domain.LabelFor(a.GroundTruth),
			IsCorrect:     isCorrect,
			ResponseTime:  float64(a.ResponseTimeMs) / 1000,
			Mode:          a.WithFeedback,
		})

		if a.WithFeedback {
			wfMs += a.ResponseTimeMs
		} else {
			wofMs += a.ResponseTimeMs
		}
		if !a.IsCorrect {
			continue
		}
		correct++
		if a.WithFeedback {
			wfCorrect++
		} else {
			wofCorrect++
		}
		switch {
		case a.GroundTruth && a.WithFeedback:
			record.WFTP++
		case a.GroundTruth:
			record.WOFTP++
		case a.WithFeedback:
			record.WFTN++
		default:
			record.WOFTN++
		}
	}

	record.TotalTP = record.WFTP + record.WOFTP
	record.TotalTN = record.WFTN + record.WOFTN
	record.Accuracy = util.RoundTo(util.Percent(correct, domain.QuestionCount), 2)
	record.WFAccuracy = util.RoundTo(util.Percent(wfCorrect, domain.HalfSize), 2)
	record.WOFAccuracy = util.RoundTo(util.Percent(wofCorrect, domain.HalfSize), 2)
	record.WFResponseTime = util.RoundTo(float64(wfMs)/1000, 2)
	record.WOFResponseTime = util.RoundTo(float64(wofMs)/1000, 2)
	return record
}
