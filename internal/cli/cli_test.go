package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"image-judge/internal/domain"
	"image-judge/internal/dto"
	"image-judge/internal/pool"
	"image-judge/internal/repository"
	"image-judge/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type memoryStore struct {
	mu      sync.Mutex
	records []*domain.SummaryRecord
}

func (s *memoryStore) Name() string { return "memory" }

func (s *memoryStore) SaveResult(ctx context.Context, record *domain.SummaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *memoryStore) ListResults(ctx context.Context, limit int) ([]*domain.SummaryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit > len(s.records) {
		limit = len(s.records)
	}
	return s.records[:limit], nil
}

func newPlayService(t *testing.T, store domain.ResultStore) service.SessionService {
	t.Helper()
	images, err := pool.Default()
	require.NoError(t, err)
	return service.NewSessionService(repository.NewMemorySessionRepository(0), images, service.NewPersistenceGateway(store), time.Second)
}

// answerAll answers every image as AI-generated. The blank line after each answer
// leaves the feedback screen, or is ignored as an invalid answer without feedback.
func answerAll(consent string) string {
	return consent + "\n\n" + strings.Repeat("a\n\n", domain.QuestionCount)
}

func TestPlay_ConsentedRunIsStored(t *testing.T) {
	store := &memoryStore{}
	var out bytes.Buffer

	err := play(context.Background(), newPlayService(t, store), "01HXUSER", strings.NewReader(answerAll("y")), &out, time.Hour)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Image 1/20")
	assert.Contains(t, text, "Image 20/20")
	assert.Contains(t, text, "You identified 10 of 20 images correctly (50.0%).")
	assert.Regexp(t, `(Correct|Wrong)! The image is (AI|real)\. You answered AI in \d+\.\d{2} s\.`, text)

	require.Len(t, store.records, 1)
	assert.Equal(t, "01HXUSER", store.records[0].UserID)
	assert.Len(t, store.records[0].Answers, domain.QuestionCount)
	assert.Equal(t, 50.0, store.records[0].Accuracy)
}

func TestPlay_DeclinedRunIsNotStored(t *testing.T) {
	store := &memoryStore{}
	var out bytes.Buffer

	err := play(context.Background(), newPlayService(t, store), "01HXUSER", strings.NewReader(answerAll("n")), &out, time.Hour)
	require.NoError(t, err)
	assert.Empty(t, store.records)
}

func TestPlay_InputClosedEarly(t *testing.T) {
	var out bytes.Buffer
	err := play(context.Background(), newPlayService(t, nil), "", strings.NewReader("y\n\na\n"), &out, time.Hour)
	assert.ErrorIs(t, err, errInputClosed)
}

// unavailableService fails every session call.
type unavailableService struct {
	service.SessionService
}

func (unavailableService) Create(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	return nil, errors.New("session store unavailable")
}

func TestPlay_ServiceErrorReleasesInput(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var out bytes.Buffer
	err := play(context.Background(), unavailableService{}, "", strings.NewReader(answerAll("y")), &out, time.Hour)
	assert.EqualError(t, err, "session store unavailable")
}

func TestReadLines_StopsWhenCancelled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	lines := readLines(ctx, strings.NewReader("first\nsecond\nthird\n"))
	assert.Equal(t, "first", <-lines)
	cancel()
}

func TestPlay_ClockTicks(t *testing.T) {
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()

	var mu sync.Mutex
	var out bytes.Buffer
	w := writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return out.Write(p)
	})

	svc := newPlayService(t, nil)
	done := make(chan error, 1)
	go func() {
		done <- play(context.Background(), svc, "", pr, w, 5*time.Millisecond)
	}()

	_, _ = pw.WriteString("y\n\n")
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return strings.Contains(out.String(), "\r[a] AI-generated  [r] real:  0:00.")
	}, 2*time.Second, 10*time.Millisecond)

	_, _ = pw.WriteString(strings.Repeat("a\n\n", domain.QuestionCount))
	pw.Close()
	require.NoError(t, <-done)
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func TestListResults(t *testing.T) {
	store := &memoryStore{records: []*domain.SummaryRecord{{
		ID:              "01HXSESSION-1",
		UserID:          "01HXUSER",
		Accuracy:        75,
		WFAccuracy:      80,
		WOFAccuracy:     70,
		NoFeedbackFirst: true,
		CreatedAt:       time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}}}

	var table bytes.Buffer
	require.NoError(t, listResults(context.Background(), store, 10, false, &table))
	assert.Contains(t, table.String(), "01HXSESSION-1")
	assert.Contains(t, table.String(), "75.00%")
	assert.Contains(t, table.String(), "no feedback first")
	assert.Contains(t, table.String(), "2024-05-01 09:30:00")

	var js bytes.Buffer
	require.NoError(t, listResults(context.Background(), store, 10, true, &js))
	assert.Contains(t, js.String(), `"wf_accuracy": 80`)
}

type failingLister struct{}

func (failingLister) ListResults(ctx context.Context, limit int) ([]*domain.SummaryRecord, error) {
	return nil, errors.New("ORA-12541: no listener")
}

func TestListResults_Error(t *testing.T) {
	err := listResults(context.Background(), failingLister{}, 10, false, &bytes.Buffer{})
	assert.ErrorContains(t, err, "failed to list results")
}

func writePool(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("images:\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "  - id: p%02d\n    locator: https://example.com/%02d.jpg\n    ai_generated: %t\n", i, i, i%4 == 0)
	}
	path := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPoolValidateCmd(t *testing.T) {
	out, err := runRoot(t, "pool", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "embedded pool: 20 images OK (10 AI-generated, 10 real)")

	path := writePool(t, 24)
	out, err = runRoot(t, "pool", "validate", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "24 images OK (6 AI-generated, 18 real)")

	_, err = runRoot(t, "pool", "validate", "--file", writePool(t, 5))
	assert.Error(t, err)
}

func TestResultsListCmd_RejectsLimit(t *testing.T) {
	_, err := runRoot(t, "results", "list", "--limit", "0")
	var verrs domain.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
