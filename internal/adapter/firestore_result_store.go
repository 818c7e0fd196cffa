package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"image-judge/internal/config"
	"image-judge/internal/domain"

	"cloud.google.com/go/firestore"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// FirestoreStoreName identifies the Firestore store in logs and configuration.
	FirestoreStoreName = "firestore"

	firestoreScope          = "https://www.googleapis.com/auth/datastore"
	defaultFirestoreDB      = "(default)"
	defaultFirestoreResults = "quiz_results"
)

// ErrFirestoreNotConfigured is returned when no project id can be determined.
var ErrFirestoreNotConfigured = errors.New("firestore project id is not configured")

// FirestoreResultStore writes summary records as Firestore documents. The document id is
// the record id and documents are created, never overwritten, so a second write of the
// same run fails with AlreadyExists.
type FirestoreResultStore struct {
	client     *firestore.Client
	collection string
}

// firestoreRecord is the document layout read by the research dashboards.
type firestoreRecord struct {
	UserID          string            `firestore:"userId"`
	Answers         []firestoreAnswer `firestore:"answers"`
	Accuracy        float64           `firestore:"Accuracy"`
	WFAccuracy      float64           `firestore:"WFAccuracy"`
	WOFAccuracy     float64           `firestore:"WOFAccuracy"`
	TotalTP         int               `firestore:"totalTP"`
	TotalTN         int               `firestore:"totalTN"`
	WFTP            int               `firestore:"WF_TP"`
	WFTN            int               `firestore:"WF_TN"`
	WOFTP           int               `firestore:"WOF_TP"`
	WOFTN           int               `firestore:"WOF_TN"`
	WFResponseTime  float64           `firestore:"WFResponseTime"`
	WOFResponseTime float64           `firestore:"WOFResponseTime"`
	NoFeedbackFirst bool              `firestore:"noFeedbackFirst"`
	Timestamp       time.Time         `firestore:"timestamp,serverTimestamp"`
}

type firestoreAnswer struct {
	ImageID       string  `firestore:"imageId"`
	UserAnswer    string  `firestore:"userAnswer"`
	CorrectAnswer string  `firestore:"correctAnswer"`
	IsCorrect     int     `firestore:"isCorrect"`
	ResponseTime  float64 `firestore:"responseTime"`
	Mode          bool    `firestore:"mode"`
}

// NewFirestoreResultStore creates a store authenticated with the configured service
// account file, or with application default credentials when no file is set. With
// FIRESTORE_EMULATOR_HOST set the client talks to the emulator without credentials.
func NewFirestoreResultStore(ctx context.Context, cfg config.FirestoreConfig) (*FirestoreResultStore, error) {
	var opts []option.ClientOption
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		creds, err := firestoreCredentials(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		if cfg.ProjectID == "" {
			cfg.ProjectID = creds.ProjectID
		}
		opts = append(opts, option.WithCredentials(creds))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	return NewFirestoreResultStoreWithOptions(ctx, cfg, opts...)
}

func firestoreCredentials(ctx context.Context, file string) (*google.Credentials, error) {
	var creds *google.Credentials
	var err error
	if file != "" {
		data, readErr := os.ReadFile(file)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read firestore credentials: %w", readErr)
		}
		creds, err = google.CredentialsFromJSON(ctx, data, firestoreScope)
	} else {
		creds, err = google.FindDefaultCredentials(ctx, firestoreScope)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load firestore credentials: %w", err)
	}
	return creds, nil
}

// NewFirestoreResultStoreWithOptions creates a store with explicit client options.
func NewFirestoreResultStoreWithOptions(ctx context.Context, cfg config.FirestoreConfig, opts ...option.ClientOption) (*FirestoreResultStore, error) {
	if cfg.ProjectID == "" {
		return nil, ErrFirestoreNotConfigured
	}
	databaseID := cfg.DatabaseID
	if databaseID == "" {
		databaseID = defaultFirestoreDB
	}
	collection := cfg.Collection
	if collection == "" {
		collection = defaultFirestoreResults
	}

	client, err := firestore.NewClientWithDatabase(ctx, cfg.ProjectID, databaseID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &FirestoreResultStore{client: client, collection: collection}, nil
}

func (s *FirestoreResultStore) Name() string {
	return FirestoreStoreName
}

// Close releases the underlying client.
func (s *FirestoreResultStore) Close() error {
	return s.client.Close()
}

// DocumentName is the full resource name of the document holding a record.
func (s *FirestoreResultStore) DocumentName(recordID string) string {
	return s.client.Collection(s.collection).Doc(recordID).Path
}

// SaveResult creates the record's document with a server-side timestamp.
func (s *FirestoreResultStore) SaveResult(ctx context.Context, record *domain.SummaryRecord) error {
	doc := s.client.Collection(s.collection).Doc(record.ID)
	if _, err := doc.Create(ctx, toFirestoreRecord(record)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyPersisted, record.ID)
		}
		return fmt.Errorf("firestore create %s failed: %w", record.ID, err)
	}
	return nil
}

func toFirestoreRecord(r *domain.SummaryRecord) firestoreRecord {
	answers := make([]firestoreAnswer, len(r.Answers))
	for i, a := range r.Answers {
		answers[i] = firestoreAnswer{
			ImageID:       a.ImageID,
			UserAnswer:    a.UserAnswer,
			CorrectAnswer: a.CorrectAnswer,
			IsCorrect:     a.IsCorrect,
			ResponseTime:  a.ResponseTime,
			Mode:          a.Mode,
		}
	}
	return firestoreRecord{
		UserID:          r.UserID,
		Answers:         answers,
		Accuracy:        r.Accuracy,
		WFAccuracy:      r.WFAccuracy,
		WOFAccuracy:     r.WOFAccuracy,
		TotalTP:         r.TotalTP,
		TotalTN:         r.TotalTN,
		WFTP:            r.WFTP,
		WFTN:            r.WFTN,
		WOFTP:           r.WOFTP,
		WOFTN:           r.WOFTN,
		WFResponseTime:  r.WFResponseTime,
		WOFResponseTime: r.WOFResponseTime,
		NoFeedbackFirst: r.NoFeedbackFirst,
	}
}
