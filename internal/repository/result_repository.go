package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"image-judge/internal/domain"
	"image-judge/internal/repository/models"
	"image-judge/internal/util"

	"github.com/jmoiron/sqlx"
)

// ResultStoreName identifies the relational store in logs and configuration.
const ResultStoreName = "sql"

// oracleUniqueViolation is raised by both Oracle drivers when a primary key already exists.
const oracleUniqueViolation = "ORA-00001"

// sqlxResultRepository stores summary records in QUIZ_RESULTS and QUIZ_RESULT_ANSWERS.
type sqlxResultRepository struct {
	db *sqlx.DB
	tm domain.TransactionManager
}

// ResultRepository is a result store that can also list what it stored.
type ResultRepository interface {
	domain.ResultStore
	domain.ResultLister
}

// NewSQLXResultRepository creates a new instance of sqlxResultRepository.
func NewSQLXResultRepository(db *sqlx.DB, tm domain.TransactionManager) ResultRepository {
	return &sqlxResultRepository{db: db, tm: tm}
}

func (r *sqlxResultRepository) Name() string {
	return ResultStoreName
}

func fromDomainSummaryRecord(record *domain.SummaryRecord) (*models.QuizResult, []models.QuizResultAnswer) {
	result := &models.QuizResult{
		ID:              record.ID,
		UserID:          util.StringToNullString(record.UserID),
		Accuracy:        record.Accuracy,
		WFAccuracy:      record.WFAccuracy,
		WOFAccuracy:     record.WOFAccuracy,
		TotalTP:         record.TotalTP,
		TotalTN:         record.TotalTN,
		WFTP:            record.WFTP,
		WFTN:            record.WFTN,
		WOFTP:           record.WOFTP,
		WOFTN:           record.WOFTN,
		WFResponseTime:  record.WFResponseTime,
		WOFResponseTime: record.WOFResponseTime,
		NoFeedbackFirst: models.NumberBool(record.NoFeedbackFirst),
	}
	answers := make([]models.QuizResultAnswer, len(record.Answers))
	for i, a := range record.Answers {
		answers[i] = models.QuizResultAnswer{
			ResultID:         record.ID,
			Position:         i + 1,
			ImageID:          a.ImageID,
			UserAnswer:       a.UserAnswer,
			CorrectAnswer:    a.CorrectAnswer,
			IsCorrect:        a.IsCorrect,
			ResponseTime:     a.ResponseTime,
			ModeWithFeedback: models.NumberBool(a.Mode),
		}
	}
	return result, answers
}

func toDomainSummaryRecord(result *models.QuizResult, answers []models.QuizResultAnswer) *domain.SummaryRecord {
	if result == nil {
		return nil
	}
	record := &domain.SummaryRecord{
		ID:              result.ID,
		UserID:          util.NullStringToString(result.UserID),
		Answers:         make([]domain.TransportAnswer, len(answers)),
		Accuracy:        result.Accuracy,
		WFAccuracy:      result.WFAccuracy,
		WOFAccuracy:     result.WOFAccuracy,
		TotalTP:         result.TotalTP,
		TotalTN:         result.TotalTN,
		WFTP:            result.WFTP,
		WFTN:            result.WFTN,
		WOFTP:           result.WOFTP,
		WOFTN:           result.WOFTN,
		WFResponseTime:  result.WFResponseTime,
		WOFResponseTime: result.WOFResponseTime,
		NoFeedbackFirst: bool(result.NoFeedbackFirst),
		CreatedAt:       result.CreatedAt,
	}
	for i, a := range answers {
		record.Answers[i] = domain.TransportAnswer{
			ImageID:       a.ImageID,
			UserAnswer:    a.UserAnswer,
			CorrectAnswer: a.CorrectAnswer,
			IsCorrect:     a.IsCorrect,
			ResponseTime:  a.ResponseTime,
			Mode:          bool(a.ModeWithFeedback),
		}
	}
	return record
}

// SaveResult inserts the record and its answer rows in one transaction. CREATED_AT is
// filled by the database.
func (r *sqlxResultRepository) SaveResult(ctx context.Context, record *domain.SummaryRecord) error {
	result, answers := fromDomainSummaryRecord(record)

	return r.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, r.db)

		resultQuery := `INSERT INTO QUIZ_RESULTS (ID, USER_ID, ACCURACY, WF_ACCURACY, WOF_ACCURACY, TOTAL_TP, TOTAL_TN, WF_TP, WF_TN, WOF_TP, WOF_TN, WF_RESPONSE_TIME, WOF_RESPONSE_TIME, NO_FEEDBACK_FIRST)
		          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14)`
		_, err := exec.ExecContext(txCtx, resultQuery,
			result.ID,
			result.UserID,
			result.Accuracy,
			result.WFAccuracy,
			result.WOFAccuracy,
			result.TotalTP,
			result.TotalTN,
			result.WFTP,
			result.WFTN,
			result.WOFTP,
			result.WOFTN,
			result.WFResponseTime,
			result.WOFResponseTime,
			result.NoFeedbackFirst,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", domain.ErrAlreadyPersisted, result.ID)
			}
			return fmt.Errorf("failed to insert quiz result: %w", err)
		}

		answerQuery := `INSERT INTO QUIZ_RESULT_ANSWERS (RESULT_ID, POSITION, IMAGE_ID, USER_ANSWER, CORRECT_ANSWER, IS_CORRECT, RESPONSE_TIME, MODE_WITH_FEEDBACK)
		          VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`
		for _, a := range answers {
			_, err := exec.ExecContext(txCtx, answerQuery,
				a.ResultID,
				a.Position,
				a.ImageID,
				a.UserAnswer,
				a.CorrectAnswer,
				a.IsCorrect,
				a.ResponseTime,
				a.ModeWithFeedback,
			)
			if err != nil {
				return fmt.Errorf("failed to insert quiz result answer %d: %w", a.Position, err)
			}
		}
		return nil
	})
}

// ListResults returns the most recent records first.
func (r *sqlxResultRepository) ListResults(ctx context.Context, limit int) ([]*domain.SummaryRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var results []models.QuizResult
	query := `SELECT ID, USER_ID, ACCURACY, WF_ACCURACY, WOF_ACCURACY, TOTAL_TP, TOTAL_TN, WF_TP, WF_TN, WOF_TP, WOF_TN, WF_RESPONSE_TIME, WOF_RESPONSE_TIME, NO_FEEDBACK_FIRST, CREATED_AT
	          FROM QUIZ_RESULTS ORDER BY CREATED_AT DESC FETCH FIRST :1 ROWS ONLY`
	if err := r.db.SelectContext(ctx, &results, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list quiz results: %w", err)
	}

	records := make([]*domain.SummaryRecord, 0, len(results))
	for i := range results {
		var answers []models.QuizResultAnswer
		answerQuery := `SELECT RESULT_ID, POSITION, IMAGE_ID, USER_ANSWER, CORRECT_ANSWER, IS_CORRECT, RESPONSE_TIME, MODE_WITH_FEEDBACK
		          FROM QUIZ_RESULT_ANSWERS WHERE RESULT_ID = :1 ORDER BY POSITION`
		if err := r.db.SelectContext(ctx, &answers, answerQuery, results[i].ID); err != nil {
			return nil, fmt.Errorf("failed to list answers for quiz result %s: %w", results[i].ID, err)
		}
		records = append(records, toDomainSummaryRecord(&results[i], answers))
	}
	return records, nil
}

func isUniqueViolation(err error) bool {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if strings.Contains(e.Error(), oracleUniqueViolation) {
			return true
		}
	}
	return false
}
