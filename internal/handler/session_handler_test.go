package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"image-judge/internal/config"
	"image-judge/internal/domain"
	"image-judge/internal/dto"
	"image-judge/internal/handler"
	"image-judge/internal/middleware"
	"image-judge/internal/pool"
	"image-judge/internal/repository"
	"image-judge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	mu      sync.Mutex
	records []*domain.SummaryRecord
}

func (s *recordingStore) Name() string { return "recording" }

func (s *recordingStore) SaveResult(ctx context.Context, record *domain.SummaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == record.ID {
			return domain.ErrAlreadyPersisted
		}
	}
	s.records = append(s.records, record)
	return nil
}

func (s *recordingStore) saved() []*domain.SummaryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.SummaryRecord(nil), s.records...)
}

type testServer struct {
	app     *fiber.App
	store   *recordingStore
	service service.SessionService
}

func newTestServer(t *testing.T, secret string) *testServer {
	t.Helper()
	images, err := pool.Default()
	require.NoError(t, err)

	store := &recordingStore{}
	sessionService := service.NewSessionService(
		repository.NewMemorySessionRepository(time.Hour),
		images,
		service.NewPersistenceGateway(store),
		time.Second,
	)
	authService := service.NewAuthService(config.JWTConfig{SecretKey: secret, AccessTokenTTL: time.Hour})

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.RegisterRoutes(app, sessionService, authService)
	return &testServer{app: app, store: store, service: sessionService}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func (s *testServer) session(t *testing.T, method, path, token string, body interface{}) dto.SessionResponse {
	t.Helper()
	status, data := s.do(t, method, path, token, body)
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, status, string(data))
	var resp dto.SessionResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}

func boolPtr(b bool) *bool { return &b }

// playToSummary answers every image as AI-generated.
func (s *testServer) playToSummary(t *testing.T, id string) dto.SessionResponse {
	t.Helper()
	resp := s.session(t, "POST", "/api/sessions/"+id+"/begin", "", nil)
	for resp.Phase == string(domain.PhaseEvaluation) {
		if resp.Feedback != nil {
			resp = s.session(t, "POST", "/api/sessions/"+id+"/advance", "", nil)
			continue
		}
		resp = s.session(t, "POST", "/api/sessions/"+id+"/answer", "", dto.AnswerRequest{AIGenerated: boolPtr(true)})
	}
	return resp
}

func TestSessionFlow_Consented(t *testing.T) {
	srv := newTestServer(t, "test-secret")

	status, data := srv.do(t, "POST", "/api/auth/anonymous", "", nil)
	require.Equal(t, http.StatusCreated, status)
	var identity dto.AnonymousTokenResponse
	require.NoError(t, json.Unmarshal(data, &identity))
	require.NotEmpty(t, identity.AccessToken)

	created := srv.session(t, "POST", "/api/sessions", identity.AccessToken, nil)
	assert.Equal(t, "start", created.Phase)
	assert.True(t, created.Identified)

	consented := srv.session(t, "POST", "/api/sessions/"+created.ID+"/consent", "", dto.ConsentRequest{Consented: boolPtr(true)})
	assert.Equal(t, "instructions", consented.Phase)

	done := srv.playToSummary(t, created.ID)
	assert.Equal(t, "summary", done.Phase)
	assert.Equal(t, domain.QuestionCount, done.Answered)
	assert.True(t, done.SummaryReady)

	status, data = srv.do(t, "GET", "/api/sessions/"+created.ID+"/summary", "", nil)
	require.Equal(t, http.StatusOK, status)
	var summary dto.SummaryResponse
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, domain.QuestionCount, summary.TotalQuestions)
	assert.Len(t, summary.Details, domain.QuestionCount)
	assert.Len(t, summary.Halves, 2)
	assert.True(t, summary.PersistenceRequested)
	// The default pool holds ten AI-generated images.
	assert.Equal(t, 10, summary.CorrectAnswers)
	assert.Equal(t, 50.0, summary.Accuracy)

	require.NoError(t, srv.service.Drain(context.Background()))
	records := srv.store.saved()
	require.Len(t, records, 1)
	assert.Equal(t, created.ID+"-1", records[0].ID)
	assert.Equal(t, identity.UserID, records[0].UserID)
	assert.Len(t, records[0].Answers, domain.QuestionCount)

	// A second summary request never writes again.
	srv.do(t, "GET", "/api/sessions/"+created.ID+"/summary", "", nil)
	require.NoError(t, srv.service.Drain(context.Background()))
	assert.Len(t, srv.store.saved(), 1)

	restarted := srv.session(t, "POST", "/api/sessions/"+created.ID+"/restart", "", nil)
	assert.Equal(t, "start", restarted.Phase)
	assert.Equal(t, 2, restarted.Attempt)
}

func TestSessionFlow_DeclinedConsentIsNotStored(t *testing.T) {
	srv := newTestServer(t, "test-secret")

	_, data := srv.do(t, "POST", "/api/auth/anonymous", "", nil)
	var identity dto.AnonymousTokenResponse
	require.NoError(t, json.Unmarshal(data, &identity))

	created := srv.session(t, "POST", "/api/sessions", identity.AccessToken, nil)
	srv.session(t, "POST", "/api/sessions/"+created.ID+"/consent", "", dto.ConsentRequest{Consented: boolPtr(false)})
	done := srv.playToSummary(t, created.ID)
	assert.Equal(t, "summary", done.Phase)

	require.NoError(t, srv.service.Drain(context.Background()))
	assert.Empty(t, srv.store.saved())
}

func TestSessionFlow_AnonymousWithoutToken(t *testing.T) {
	srv := newTestServer(t, "")

	status, data := srv.do(t, "POST", "/api/auth/anonymous", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, string(data), "IDENTITY_DISABLED")

	created := srv.session(t, "POST", "/api/sessions", "", nil)
	assert.False(t, created.Identified)
	srv.session(t, "POST", "/api/sessions/"+created.ID+"/consent", "", dto.ConsentRequest{Consented: boolPtr(true)})
	srv.playToSummary(t, created.ID)

	require.NoError(t, srv.service.Drain(context.Background()))
	assert.Empty(t, srv.store.saved())
}

func TestSessionHandler_Errors(t *testing.T) {
	srv := newTestServer(t, "test-secret")
	created := srv.session(t, "POST", "/api/sessions", "", nil)

	t.Run("InvalidID", func(t *testing.T) {
		status, _ := srv.do(t, "GET", "/api/sessions/not-a-ulid", "", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("UnknownSession", func(t *testing.T) {
		status, data := srv.do(t, "GET", "/api/sessions/01HXZ5J3Q4N8R6V2W9Y7K1M0PA", "", nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Contains(t, string(data), "SESSION_NOT_FOUND")
	})

	t.Run("MissingConsentField", func(t *testing.T) {
		status, data := srv.do(t, "POST", "/api/sessions/"+created.ID+"/consent", "", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, string(data), "consented")
	})

	t.Run("BeginBeforeConsent", func(t *testing.T) {
		status, data := srv.do(t, "POST", "/api/sessions/"+created.ID+"/begin", "", nil)
		assert.Equal(t, http.StatusConflict, status)
		assert.Contains(t, string(data), "INVALID_TRANSITION")
	})

	t.Run("AnswerBeforeBegin", func(t *testing.T) {
		status, _ := srv.do(t, "POST", "/api/sessions/"+created.ID+"/answer", "", dto.AnswerRequest{AIGenerated: boolPtr(false)})
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("SummaryBeforeFinish", func(t *testing.T) {
		status, _ := srv.do(t, "GET", "/api/sessions/"+created.ID+"/summary", "", nil)
		assert.Equal(t, http.StatusConflict, status)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	srv := newTestServer(t, "test-secret")

	status, _ := srv.do(t, "GET", "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	_, data := srv.do(t, "POST", "/api/auth/anonymous", "", nil)
	var identity dto.AnonymousTokenResponse
	require.NoError(t, json.Unmarshal(data, &identity))

	status, data = srv.do(t, "GET", "/api/auth/me", identity.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	var me dto.IdentityResponse
	require.NoError(t, json.Unmarshal(data, &me))
	assert.Equal(t, identity.UserID, me.UserID)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, "")
	status, data := srv.do(t, "GET", "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(data))
}
