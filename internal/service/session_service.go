package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sync"
	"time"

	"image-judge/internal/domain"
	"image-judge/internal/dto"
	"image-judge/internal/logger"
	"image-judge/internal/stats"
	"image-judge/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	sessionLockStripes        = 64
	defaultPersistenceTimeout = 10 * time.Second
)

// SessionService drives quiz sessions on behalf of the transport layer.
type SessionService interface {
	Create(ctx context.Context, userID string) (*dto.SessionResponse, error)
	Get(ctx context.Context, id string) (*dto.SessionResponse, error)
	Consent(ctx context.Context, id string, consented bool) (*dto.SessionResponse, error)
	Begin(ctx context.Context, id string) (*dto.SessionResponse, error)
	Answer(ctx context.Context, id string, aiGenerated bool) (*dto.SessionResponse, error)
	Advance(ctx context.Context, id string) (*dto.SessionResponse, error)
	Summary(ctx context.Context, id string) (*dto.SummaryResponse, error)
	Restart(ctx context.Context, id string) (*dto.SessionResponse, error)
	// Ping checks the session store.
	Ping(ctx context.Context) error
	// Drain waits for in-flight persistence writes.
	Drain(ctx context.Context) error
}

type sessionService struct {
	repo    domain.SessionRepository
	pool    domain.ImagePool
	gateway PersistenceGateway
	timeout time.Duration

	locks     [sessionLockStripes]sync.Mutex
	inflight  sync.WaitGroup
	summaries singleflight.Group

	now   func() time.Time
	rng   domain.Random
	newID func() string
}

// NewSessionService creates a new instance of SessionService. persistTimeout bounds each
// background summary write; zero uses the default.
func NewSessionService(repo domain.SessionRepository, pool domain.ImagePool, gateway PersistenceGateway, persistTimeout time.Duration) SessionService {
	if persistTimeout <= 0 {
		persistTimeout = defaultPersistenceTimeout
	}
	if gateway == nil {
		gateway = NewPersistenceGateway(nil)
	}
	return &sessionService{
		repo:    repo,
		pool:    pool,
		gateway: gateway,
		timeout: persistTimeout,
		now:     time.Now,
		rng:     newLockedRandom(time.Now().UnixNano()),
		newID:   util.NewULID,
	}
}

func (s *sessionService) Create(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	now := s.now()
	session := domain.NewSession(s.newID(), userID, now)
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, domain.NewInternalError("Failed to store session", err)
	}
	logger.Get().Info("Quiz session created",
		zap.String("sessionID", session.ID),
		zap.Bool("identified", userID != ""))
	return toSessionResponse(session, now), nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session, s.now()), nil
}

func (s *sessionService) Consent(ctx context.Context, id string, consented bool) (*dto.SessionResponse, error) {
	return s.mutate(ctx, id, func(session *domain.Session, now time.Time) error {
		return session.Consent(consented, now)
	})
}

func (s *sessionService) Begin(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.mutate(ctx, id, func(session *domain.Session, now time.Time) error {
		if err := session.Begin(s.pool, s.rng, now); err != nil {
			if errors.Is(err, domain.ErrNotEnoughImages) {
				return domain.NewInternalError("Image pool cannot fill a session", err)
			}
			return err
		}
		logger.Get().Info("Quiz session started",
			zap.String("sessionID", session.ID),
			zap.Bool("modeOneFirst", session.ModeOneFirst))
		return nil
	})
}

func (s *sessionService) Answer(ctx context.Context, id string, aiGenerated bool) (*dto.SessionResponse, error) {
	return s.mutate(ctx, id, func(session *domain.Session, now time.Time) error {
		step, ok := session.Current().(domain.AwaitingAnswer)
		if !ok {
			return noPendingQuestion(session, "submit answer")
		}
		_, err := step.Submit(aiGenerated, now)
		return err
	})
}

func (s *sessionService) Advance(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.mutate(ctx, id, func(session *domain.Session, now time.Time) error {
		step, ok := session.Current().(domain.ShowingFeedback)
		if !ok {
			return noPendingQuestion(session, "advance")
		}
		_, err := step.Advance(now)
		return err
	})
}

// Summary collapses concurrent requests for the same session into one load. A finished run
// is immutable until restart, so callers may share the result.
func (s *sessionService) Summary(ctx context.Context, id string) (*dto.SummaryResponse, error) {
	res, err, _ := s.summaries.Do(id, func() (interface{}, error) {
		return s.summarize(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return res.(*dto.SummaryResponse), nil
}

func (s *sessionService) summarize(ctx context.Context, id string) (*dto.SummaryResponse, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	completion, ok := session.Completion()
	if !ok {
		return nil, domain.NewInvalidTransitionError("view summary", session.Phase)
	}
	summary, err := stats.SummarizeCompletion(completion)
	if err != nil {
		return nil, domain.NewError(domain.CodeIncomplete, "Session does not hold a full set of answers", err)
	}
	return toSummaryResponse(session, summary), nil
}

func (s *sessionService) Restart(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.mutate(ctx, id, func(session *domain.Session, now time.Time) error {
		return session.Restart(now)
	})
}

func (s *sessionService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *sessionService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("persistence drain interrupted: %w", ctx.Err())
	}
}

func (s *sessionService) load(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionMissing) {
			return nil, domain.NewSessionNotFoundError(id)
		}
		return nil, domain.NewInternalError("Failed to load session", err)
	}
	return session, nil
}

// mutate runs fn under the session's stripe lock and stores the result. A run that reaches
// the summary inside fn is handed to the persistence gateway once the snapshot is saved.
func (s *sessionService) mutate(ctx context.Context, id string, fn func(*domain.Session, time.Time) error) (*dto.SessionResponse, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := fn(session, now); err != nil {
		return nil, err
	}

	persist := session.RequestPersistence()
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, domain.NewInternalError("Failed to store session", err)
	}
	if persist {
		if completion, ok := session.Completion(); ok {
			s.persistAsync(completion)
		}
	}
	return toSessionResponse(session, now), nil
}

func (s *sessionService) persistAsync(completion domain.Completion) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		outcome, err := s.gateway.Save(ctx, completion)
		if err != nil {
			logger.Get().Error("Failed to persist quiz summary",
				zap.Error(err),
				zap.String("sessionID", completion.SessionID),
				zap.String("recordID", completion.Key))
			return
		}
		logger.Get().Debug("Quiz summary persistence finished",
			zap.String("sessionID", completion.SessionID),
			zap.String("outcome", string(outcome)))
	}()
}

func (s *sessionService) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%sessionLockStripes]
}

func noPendingQuestion(session *domain.Session, action string) error {
	if session.Phase != domain.PhaseEvaluation {
		return domain.NewInvalidTransitionError(action, session.Phase)
	}
	return domain.NewStaleStepError(action)
}

// lockedRandom makes a *rand.Rand safe for concurrent sessions.
type lockedRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newLockedRandom(seed int64) *lockedRandom {
	return &lockedRandom{rng: rand.New(rand.NewSource(seed))}
}

func (r *lockedRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func (r *lockedRandom) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}
