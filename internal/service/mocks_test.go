package service

import (
	"context"
	"encoding/json"
	"sync"

	"image-judge/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockSessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockResultStore ---
type MockResultStore struct {
	mock.Mock
}

func (m *MockResultStore) Name() string {
	return "mock"
}

func (m *MockResultStore) SaveResult(ctx context.Context, record *domain.SummaryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- MockPersistenceGateway ---
type MockPersistenceGateway struct {
	mock.Mock
}

func (m *MockPersistenceGateway) Save(ctx context.Context, completion domain.Completion) (SaveOutcome, error) {
	args := m.Called(ctx, completion)
	return args.Get(0).(SaveOutcome), args.Error(1)
}

// fakeSessionRepository round-trips snapshots through JSON like the Redis store does.
type fakeSessionRepository struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{data: make(map[string][]byte)}
}

func (f *fakeSessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[id]
	if !ok {
		return nil, domain.ErrSessionMissing
	}
	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (f *fakeSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[session.ID] = raw
	return nil
}

func (f *fakeSessionRepository) Ping(ctx context.Context) error {
	return nil
}
