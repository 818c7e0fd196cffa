package models

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// NumberBool maps a Go bool to an Oracle NUMBER(1) column.
type NumberBool bool

// Value implements the driver.Valuer interface
func (b NumberBool) Value() (driver.Value, error) {
	if b {
		return int64(1), nil
	}
	return int64(0), nil
}

// Scan implements the sql.Scanner interface
func (b *NumberBool) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*b = false
	case int64:
		*b = v != 0
	case float64:
		*b = v != 0
	case bool:
		*b = NumberBool(v)
	case []byte:
		return b.parse(string(v))
	case string:
		return b.parse(v)
	default:
		return errors.New("NumberBool Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	return nil
}

func (b *NumberBool) parse(s string) error {
	if s == "" {
		*b = false
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("NumberBool Scan: %w", err)
	}
	*b = n != 0
	return nil
}

// QuizResult is one row of QUIZ_RESULTS.
type QuizResult struct {
	ID              string         `db:"ID"`           // "<session ULID>-<attempt>"
	UserID          sql.NullString `db:"USER_ID"`      // anonymous participant ULID
	Accuracy        float64        `db:"ACCURACY"`     // percent, 2 decimals
	WFAccuracy      float64        `db:"WF_ACCURACY"`  // with-feedback half
	WOFAccuracy     float64        `db:"WOF_ACCURACY"` // no-feedback half
	TotalTP         int            `db:"TOTAL_TP"`     // correctly identified AI-generated images
	TotalTN         int            `db:"TOTAL_TN"`     // correctly identified real images
	WFTP            int            `db:"WF_TP"`
	WFTN            int            `db:"WF_TN"`
	WOFTP           int            `db:"WOF_TP"`
	WOFTN           int            `db:"WOF_TN"`
	WFResponseTime  float64        `db:"WF_RESPONSE_TIME"`  // seconds
	WOFResponseTime float64        `db:"WOF_RESPONSE_TIME"` // seconds
	NoFeedbackFirst NumberBool     `db:"NO_FEEDBACK_FIRST"`
	CreatedAt       time.Time      `db:"CREATED_AT"` // set by the database
}

// QuizResultAnswer is one row of QUIZ_RESULT_ANSWERS.
type QuizResultAnswer struct {
	ResultID         string     `db:"RESULT_ID"`
	Position         int        `db:"POSITION"` // 1-based presentation order
	ImageID          string     `db:"IMAGE_ID"`
	UserAnswer       string     `db:"USER_ANSWER"`    // "Fake" or "Real"
	CorrectAnswer    string     `db:"CORRECT_ANSWER"` // "Fake" or "Real"
	IsCorrect        int        `db:"IS_CORRECT"`
	ResponseTime     float64    `db:"RESPONSE_TIME"` // seconds
	ModeWithFeedback NumberBool `db:"MODE_WITH_FEEDBACK"`
}
