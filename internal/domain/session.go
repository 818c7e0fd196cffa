package domain

import (
	"strconv"
	"time"
)

// Phase is the coarse stage of a quiz session.
type Phase string

const (
	PhaseStart        Phase = "start"
	PhaseInstructions Phase = "instructions"
	PhaseEvaluation   Phase = "evaluation"
	PhaseSummary      Phase = "summary"
)

// Session is the full state of one participant's quiz. Only the methods below mutate it;
// every other component works on a Completion snapshot.
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"user_id,omitempty"`
	// Attempt increments on every restart so each run has its own persistence key.
	Attempt int   `json:"attempt"`
	Phase   Phase `json:"phase"`

	Consented    bool           `json:"consented"`
	Images       []ImageItem    `json:"images,omitempty"`
	ModeOneFirst bool           `json:"mode_one_first"`
	Answers      []AnswerRecord `json:"answers,omitempty"`
	CurrentIndex int            `json:"current_index"`

	Stopwatch     Stopwatch `json:"stopwatch"`
	FeedbackShown bool      `json:"feedback_shown"`

	PersistenceRequested bool `json:"persistence_requested"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a session in the start phase. userID may be empty when no
// anonymous identity is available, in which case the session is never persisted.
func NewSession(id, userID string, now time.Time) *Session {
	return &Session{
		ID:        id,
		UserID:    userID,
		Attempt:   1,
		Phase:     PhaseStart,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Consent records the participant's choice and moves to the instructions phase.
func (s *Session) Consent(consented bool, now time.Time) error {
	if s.Phase != PhaseStart {
		return NewInvalidTransitionError("record consent", s.Phase)
	}
	s.Consented = consented
	s.Phase = PhaseInstructions
	s.UpdatedAt = now
	return nil
}

// Begin samples the session's images, flips the mode-order coin and starts the first
// question. Images and mode order are fixed from here until restart.
func (s *Session) Begin(pool []ImageItem, rng Random, now time.Time) error {
	if s.Phase != PhaseInstructions {
		return NewInvalidTransitionError("begin", s.Phase)
	}
	images, err := SampleImages(pool, QuestionCount, rng)
	if err != nil {
		return err
	}
	s.Images = images
	s.ModeOneFirst = AssignModeOrder(rng)
	s.Answers = make([]AnswerRecord, 0, len(images))
	s.CurrentIndex = 0
	s.FeedbackShown = false
	s.Stopwatch = StartStopwatch(now)
	s.Phase = PhaseEvaluation
	s.UpdatedAt = now
	return nil
}

// Restart discards the finished run and returns to the start phase.
func (s *Session) Restart(now time.Time) error {
	if s.Phase != PhaseSummary {
		return NewInvalidTransitionError("restart", s.Phase)
	}
	s.Attempt++
	s.Phase = PhaseStart
	s.Consented = false
	s.Images = nil
	s.ModeOneFirst = false
	s.Answers = nil
	s.CurrentIndex = 0
	s.Stopwatch = Stopwatch{}
	s.FeedbackShown = false
	s.PersistenceRequested = false
	s.UpdatedAt = now
	return nil
}

// CurrentMode is the feedback mode of the current question.
func (s *Session) CurrentMode() Mode {
	return ModeForIndex(s.ModeOneFirst, s.CurrentIndex)
}

// PersistenceKey identifies one completed run of the session.
func (s *Session) PersistenceKey() string {
	return s.ID + "-" + strconv.Itoa(s.Attempt)
}

// RequestPersistence flips the once-per-run persistence flag. It reports false when the
// run is not finished or a write was already requested.
func (s *Session) RequestPersistence() bool {
	if s.Phase != PhaseSummary || s.PersistenceRequested {
		return false
	}
	s.PersistenceRequested = true
	return true
}

// Completion returns a frozen copy of a finished run.
func (s *Session) Completion() (Completion, bool) {
	if s.Phase != PhaseSummary {
		return Completion{}, false
	}
	return Completion{
		SessionID:    s.ID,
		Key:          s.PersistenceKey(),
		UserID:       s.UserID,
		Answers:      append([]AnswerRecord(nil), s.Answers...),
		Images:       append([]ImageItem(nil), s.Images...),
		Consented:    s.Consented,
		ModeOneFirst: s.ModeOneFirst,
	}, true
}

// Current returns the typed step of the session. It is nil before evaluation begins.
func (s *Session) Current() Step {
	switch s.Phase {
	case PhaseEvaluation:
		if s.FeedbackShown && len(s.Answers) > 0 {
			return ShowingFeedback{session: s, index: s.CurrentIndex, Answer: s.Answers[len(s.Answers)-1]}
		}
		return s.awaiting()
	case PhaseSummary:
		c, _ := s.Completion()
		return Done{Completion: c}
	default:
		return nil
	}
}

func (s *Session) awaiting() AwaitingAnswer {
	return AwaitingAnswer{
		session: s,
		index:   s.CurrentIndex,
		Image:   s.Images[s.CurrentIndex],
		Mode:    s.CurrentMode(),
	}
}

// advance leaves the current question: next question or summary.
func (s *Session) advance(now time.Time) Step {
	s.FeedbackShown = false
	s.UpdatedAt = now
	if s.CurrentIndex < len(s.Images)-1 {
		s.CurrentIndex++
		s.Stopwatch = StartStopwatch(now)
		return s.awaiting()
	}
	s.CurrentIndex = len(s.Images)
	s.Phase = PhaseSummary
	c, _ := s.Completion()
	return Done{Completion: c}
}

// Step is the state of the evaluation phase: AwaitingAnswer, ShowingFeedback or Done.
// Only AwaitingAnswer can submit and only ShowingFeedback can advance.
type Step interface {
	isStep()
}

// AwaitingAnswer is a question that has been shown and not yet answered.
type AwaitingAnswer struct {
	session *Session
	index   int

	Image ImageItem
	Mode  Mode
}

func (AwaitingAnswer) isStep() {}

// Index is the zero-based position of the question.
func (a AwaitingAnswer) Index() int { return a.index }

// Submit records the participant's label. The stopwatch is paused before the response
// time is read. With feedback the session waits in ShowingFeedback; without feedback it
// moves on immediately.
func (a AwaitingAnswer) Submit(userLabel bool, now time.Time) (Step, error) {
	s := a.session
	if s == nil || s.Phase != PhaseEvaluation || s.FeedbackShown ||
		s.CurrentIndex != a.index || len(s.Answers) != a.index {
		return nil, NewStaleStepError("submit answer")
	}

	responseTime := s.Stopwatch.Pause(now)
	record := NewAnswerRecord(a.Image, userLabel, responseTime, a.Mode)
	s.Answers = append(s.Answers, record)
	s.UpdatedAt = now

	if a.Mode.ShowsFeedback() {
		s.FeedbackShown = true
		return ShowingFeedback{session: s, index: a.index, Answer: record}, nil
	}
	return s.advance(now), nil
}

// ShowingFeedback is an answered question whose result is on screen.
type ShowingFeedback struct {
	session *Session
	index   int

	Answer AnswerRecord
}

func (ShowingFeedback) isStep() {}

// Index is the zero-based position of the answered question.
func (f ShowingFeedback) Index() int { return f.index }

// Advance moves to the next question, or to the summary after the last one.
func (f ShowingFeedback) Advance(now time.Time) (Step, error) {
	s := f.session
	if s == nil || s.Phase != PhaseEvaluation || !s.FeedbackShown ||
		s.CurrentIndex != f.index || len(s.Answers) != f.index+1 {
		return nil, NewStaleStepError("advance")
	}
	return s.advance(now), nil
}

// Done is the terminal step of a run.
type Done struct {
	Completion Completion
}

func (Done) isStep() {}

// Completion is the frozen result of a finished run handed to statistics and persistence.
type Completion struct {
	SessionID    string
	Key          string
	UserID       string
	Answers      []AnswerRecord
	Images       []ImageItem
	Consented    bool
	ModeOneFirst bool
}
