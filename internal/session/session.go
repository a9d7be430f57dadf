package session

import (
	"errors"
	"sync"
	"time"

	"github.com/ieltslab/practice-service/internal/catalog"
	"github.com/ieltslab/practice-service/internal/explain"
	"github.com/ieltslab/practice-service/internal/scoring"
)

// Phase is the lifecycle stage of a test session. Transitions are
// one-directional: tutorial -> in_progress -> submitted.
type Phase string

const (
	PhaseTutorial   Phase = "tutorial"
	PhaseInProgress Phase = "in_progress"
	PhaseSubmitted  Phase = "submitted"
)

// SubmitTrigger records which path finalized the session.
type SubmitTrigger string

const (
	TriggerManual  SubmitTrigger = "manual"
	TriggerTimeout SubmitTrigger = "timeout"
)

var (
	ErrNotStarted       = errors.New("session has not been started")
	ErrAlreadyStarted   = errors.New("session is already in progress")
	ErrAlreadySubmitted = errors.New("session already submitted")
	ErrNotSubmitted     = errors.New("session has not been submitted")
	ErrQuestionNotFound = errors.New("question not found in catalog")
	ErrDragSlot         = errors.New("drag questions are answered by assigning a token")
)

// Outcome is the frozen snapshot handed to the after-submit hook.
type Outcome struct {
	SessionID     string
	UserID        string
	Catalog       *catalog.Catalog
	Trigger       SubmitTrigger
	Score         scoring.Result
	Answers       []AnswerEntry
	AnsweredCount int
	SubmittedAt   time.Time
}

// Config describes a new session.
type Config struct {
	ID      string
	UserID  string
	Catalog *catalog.Catalog

	// TimerInterval overrides the one-second tick for tests.
	TimerInterval time.Duration

	// AfterSubmit runs once in its own goroutine after either submission
	// path completes. Its failures must never reach back into the session.
	AfterSubmit func(Outcome)
}

// Session owns all mutable state of one test run: answers, token board,
// navigation, timer and phase. Every mutation goes through its lock, which
// stands in for the original's single-threaded event loop — mutators run to
// completion before the next one is admitted.
type Session struct {
	mu sync.Mutex

	id     string
	userID string
	cat    *catalog.Catalog

	answers *AnswerStore
	board   *TokenBoard // nil when the catalog has no token pool
	nav     *Navigator
	timer   *Countdown

	phase       Phase
	score       scoring.Result
	trigger     SubmitTrigger
	submittedAt time.Time
	frozenTime  int

	explanations map[int]explain.Explanation
	explainDone  bool

	afterSubmit func(Outcome)
}

// New creates a session in the tutorial phase. The timer is armed but not
// running until Begin.
func New(cfg Config) *Session {
	answers := NewAnswerStore(cfg.Catalog.Order())

	var board *TokenBoard
	if len(cfg.Catalog.Tokens) > 0 {
		board = NewTokenBoard(cfg.Catalog.Tokens)
	}

	var timerOpts []CountdownOption
	if cfg.TimerInterval > 0 {
		timerOpts = append(timerOpts, WithInterval(cfg.TimerInterval))
	}

	return &Session{
		id:           cfg.ID,
		userID:       cfg.UserID,
		cat:          cfg.Catalog,
		answers:      answers,
		board:        board,
		nav:          NewNavigator(cfg.Catalog.Order(), answers.IsAnswered),
		timer:        NewCountdown(cfg.Catalog.DurationSeconds, timerOpts...),
		phase:        PhaseTutorial,
		explanations: make(map[int]explain.Explanation),
		afterSubmit:  cfg.AfterSubmit,
	}
}

func (s *Session) ID() string                { return s.id }
func (s *Session) UserID() string            { return s.userID }
func (s *Session) Catalog() *catalog.Catalog { return s.cat }

// Phase returns the current lifecycle stage.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Begin dismisses the tutorial and starts the countdown. The timer's expiry
// converges on the same submission routine as a manual submit.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.phase {
	case PhaseInProgress:
		return ErrAlreadyStarted
	case PhaseSubmitted:
		return ErrAlreadySubmitted
	}
	s.phase = PhaseInProgress
	s.timer.Start(nil, func() { s.submit(TriggerTimeout) })
	return nil
}

// SetAnswer records a response. Only valid while in progress; drag slots are
// mutated through AssignToken so the token invariant cannot be bypassed.
func (s *Session) SetAnswer(questionID int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInProgress(); err != nil {
		return err
	}
	q, ok := s.cat.Question(questionID)
	if !ok {
		return ErrQuestionNotFound
	}
	if q.Type == catalog.Drag {
		return ErrDragSlot
	}
	s.answers.Set(questionID, value)
	return nil
}

// Answer returns the recorded response for a question, "" when unanswered.
func (s *Session) Answer(questionID int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Get(questionID)
}

// Answers returns all entries in catalog order.
func (s *Session) Answers() []AnswerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Snapshot()
}

// AssignToken drops a token onto a drag slot, vacating the token's previous
// slot and releasing the slot's previous token.
func (s *Session) AssignToken(tokenID string, questionID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInProgress(); err != nil {
		return err
	}
	q, ok := s.cat.Question(questionID)
	if !ok {
		return ErrQuestionNotFound
	}
	if q.Type != catalog.Drag || s.board == nil {
		return ErrSlotNotDraggable
	}

	res, err := s.board.Assign(tokenID, questionID)
	if err != nil {
		return err
	}
	for _, slot := range res.VacatedSlots {
		s.answers.Set(slot, "")
	}
	s.answers.Set(questionID, res.Value)
	return nil
}

// UnassignToken removes a token from its slot and clears that answer.
func (s *Session) UnassignToken(tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if s.board == nil {
		return ErrTokenNotFound
	}
	slot, err := s.board.Unassign(tokenID)
	if err != nil {
		return err
	}
	s.answers.Set(slot, "")
	return nil
}

// Tokens returns the token pool with assignment states; nil when the catalog
// has no drag questions.
func (s *Session) Tokens() []Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return nil
	}
	return s.board.Tokens()
}

// GoTo moves the current position to the given question.
func (s *Session) GoTo(questionID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInProgress(); err != nil {
		return err
	}
	s.nav.GoTo(questionID)
	return nil
}

// Next advances to the adjacent question, clamped at the last.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInProgress(); err != nil {
		return err
	}
	s.nav.Next()
	return nil
}

// Prev moves to the previous question, clamped at the first.
func (s *Session) Prev() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInProgress(); err != nil {
		return err
	}
	s.nav.Prev()
	return nil
}

// Current returns the question id at the current position.
func (s *Session) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Current()
}

// ToggleReview flips the review flag for a question.
func (s *Session) ToggleReview(questionID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInProgress(); err != nil {
		return err
	}
	s.nav.ToggleReview(questionID)
	return nil
}

// MarkState derives the navigator state of a question: current > review >
// answered > unanswered.
func (s *Session) MarkState(questionID int) MarkState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.MarkState(questionID)
}

// Flagged returns the flagged-for-review question ids.
func (s *Session) Flagged() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Flagged()
}

// TimeRemaining reports whole seconds left: the full duration before the
// test starts, the live countdown while in progress, and the frozen value
// after submission.
func (s *Session) TimeRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.phase {
	case PhaseTutorial:
		return s.cat.DurationSeconds
	case PhaseSubmitted:
		return s.frozenTime
	default:
		return s.timer.Remaining()
	}
}

// Submit finalizes the session on the user's explicit action.
func (s *Session) Submit() error {
	switch s.Phase() {
	case PhaseTutorial:
		return ErrNotStarted
	case PhaseSubmitted:
		return ErrAlreadySubmitted
	}
	s.submit(TriggerManual)
	return nil
}

// submit is the single submission routine both triggers converge on: freeze
// answers, stop the clock, compute the score, then hand the outcome to the
// after-submit hook. Once here, the phase never leaves submitted.
func (s *Session) submit(trigger SubmitTrigger) {
	s.mu.Lock()
	if s.phase != PhaseInProgress {
		s.mu.Unlock()
		return
	}
	s.phase = PhaseSubmitted
	s.trigger = trigger
	s.frozenTime = s.timer.Remaining()
	s.submittedAt = time.Now()
	s.timer.Stop()
	s.score = scoring.Score(s.cat, s.answers.Values())

	outcome := Outcome{
		SessionID:     s.id,
		UserID:        s.userID,
		Catalog:       s.cat,
		Trigger:       trigger,
		Score:         s.score,
		Answers:       s.answers.Snapshot(),
		AnsweredCount: s.answers.AnsweredCount(),
		SubmittedAt:   s.submittedAt,
	}
	hook := s.afterSubmit
	s.mu.Unlock()

	if hook != nil {
		go hook(outcome)
	}
}

// SetExplanation stores one generated explanation; called by the pipeline
// sink as results arrive.
func (s *Session) SetExplanation(questionID int, ex explain.Explanation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSubmitted {
		return
	}
	s.explanations[questionID] = ex
}

// FinishExplanations marks the pipeline as drained.
func (s *Session) FinishExplanations() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.explainDone = true
}

// ReviewRow is one question of the results view.
type ReviewRow struct {
	QuestionID    int                  `json:"question_id"`
	Type          catalog.QuestionType `json:"type"`
	Prompt        string               `json:"prompt"`
	UserAnswer    string               `json:"user_answer"`
	CorrectAnswer string               `json:"correct_answer"`
	Correct       bool                 `json:"correct"`
	Flagged       bool                 `json:"flagged"`
	Explanation   *explain.Explanation `json:"explanation,omitempty"`
}

// Results is the submitted session's outcome view.
type Results struct {
	Score             scoring.Result `json:"score"`
	Trigger           SubmitTrigger  `json:"trigger"`
	SubmittedAt       time.Time      `json:"submitted_at"`
	Rows              []ReviewRow    `json:"rows"`
	ExplanationsReady bool           `json:"explanations_ready"`
}

// Results returns the score and per-question review, including whichever
// explanations have been generated so far.
func (s *Session) Results() (Results, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSubmitted {
		return Results{}, ErrNotSubmitted
	}

	rows := make([]ReviewRow, 0, len(s.cat.Questions))
	for _, q := range s.cat.Questions {
		row := ReviewRow{
			QuestionID:    q.ID,
			Type:          q.Type,
			Prompt:        q.Prompt,
			UserAnswer:    s.answers.Get(q.ID),
			CorrectAnswer: q.CorrectAnswer,
			Correct:       scoring.IsCorrect(q, s.answers.Get(q.ID)),
			Flagged:       s.nav.IsFlagged(q.ID),
		}
		if ex, ok := s.explanations[q.ID]; ok {
			copied := ex
			row.Explanation = &copied
		}
		rows = append(rows, row)
	}

	return Results{
		Score:             s.score,
		Trigger:           s.trigger,
		SubmittedAt:       s.submittedAt,
		Rows:              rows,
		ExplanationsReady: s.explainDone,
	}, nil
}

// Close stops the timer. Must be called on teardown so an abandoned session
// cannot keep ticking.
func (s *Session) Close() {
	s.timer.Stop()
}

func (s *Session) requireInProgress() error {
	switch s.phase {
	case PhaseTutorial:
		return ErrNotStarted
	case PhaseSubmitted:
		return ErrAlreadySubmitted
	}
	return nil
}
