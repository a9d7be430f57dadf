package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"gorm.io/datatypes"

	"github.com/ieltslab/practice-service/internal/catalog"
	"github.com/ieltslab/practice-service/internal/events"
	"github.com/ieltslab/practice-service/internal/explain"
	"github.com/ieltslab/practice-service/internal/models"
	"github.com/ieltslab/practice-service/internal/repositories"
	"github.com/ieltslab/practice-service/internal/scoring"
	"github.com/ieltslab/practice-service/internal/session"
)

// QuestionMark is the palette state of one navigator cell.
type QuestionMark struct {
	QuestionID int               `json:"question_id"`
	State      session.MarkState `json:"state"`
}

// SessionState is the live snapshot returned to clients while a session is
// open.
type SessionState struct {
	SessionID     string                `json:"session_id"`
	CatalogID     string                `json:"catalog_id"`
	TestKind      catalog.TestKind      `json:"test_kind"`
	Phase         session.Phase         `json:"phase"`
	Current       int                   `json:"current"`
	TimeRemaining int                   `json:"time_remaining"`
	AnsweredCount int                   `json:"answered_count"`
	TotalCount    int                   `json:"total_count"`
	Answers       []session.AnswerEntry `json:"answers"`
	Marks         []QuestionMark        `json:"marks"`
	Flagged       []int                 `json:"flagged"`
	Tokens        []session.Token       `json:"tokens,omitempty"`
}

// SessionService orchestrates the exam session lifecycle: creation, the
// in-test operations, both submission paths, and everything that runs after
// submission (events, persistence, stats, explanations).
type SessionService interface {
	Start(ctx context.Context, userID, catalogID string) (*SessionState, error)
	Begin(ctx context.Context, userID, sessionID string) error
	State(ctx context.Context, userID, sessionID string) (*SessionState, error)

	SetAnswer(ctx context.Context, userID, sessionID string, questionID int, value string) error
	AssignToken(ctx context.Context, userID, sessionID, tokenID string, questionID int) error
	UnassignToken(ctx context.Context, userID, sessionID, tokenID string) error

	GoTo(ctx context.Context, userID, sessionID string, questionID int) error
	Next(ctx context.Context, userID, sessionID string) error
	Prev(ctx context.Context, userID, sessionID string) error
	ToggleReview(ctx context.Context, userID, sessionID string, questionID int) error

	Submit(ctx context.Context, userID, sessionID string) error
	Results(ctx context.Context, userID, sessionID string) (*session.Results, error)
	Close(ctx context.Context, userID, sessionID string) error
}

type sessionService struct {
	catalogs  *catalog.Store
	sessions  *session.Manager
	repo      repositories.Repository
	publisher events.EventPublisher
	pipeline  *explain.Pipeline
	logger    *slog.Logger
}

func NewSessionService(
	catalogs *catalog.Store,
	sessions *session.Manager,
	repo repositories.Repository,
	publisher events.EventPublisher,
	pipeline *explain.Pipeline,
	logger *slog.Logger,
) SessionService {
	return &sessionService{
		catalogs:  catalogs,
		sessions:  sessions,
		repo:      repo,
		publisher: publisher,
		pipeline:  pipeline,
		logger:    logger,
	}
}

func (s *sessionService) Start(ctx context.Context, userID, catalogID string) (*SessionState, error) {
	cat, err := s.catalogs.Get(catalogID)
	if err != nil {
		return nil, err
	}

	sess := s.sessions.Create(session.Config{
		UserID:      userID,
		Catalog:     cat,
		AfterSubmit: s.afterSubmit,
	})

	s.logger.Info("session created",
		"session_id", sess.ID(),
		"user_id", userID,
		"catalog_id", catalogID)

	return snapshot(sess), nil
}

func (s *sessionService) Begin(ctx context.Context, userID, sessionID string) error {
	sess, err := s.owned(userID, sessionID)
	if err != nil {
		return err
	}
	if err := sess.Begin(); err != nil {
		return err
	}

	cat := sess.Catalog()
	event := events.NewSessionEvent(events.EventSessionStarted, events.SessionStartedEvent{
		SessionID:       sess.ID(),
		UserID:          userID,
		CatalogID:       cat.ID,
		TestKind:        string(cat.Kind),
		DurationSeconds: cat.DurationSeconds,
	})
	if err := s.publisher.PublishSessionEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish session started event",
			"session_id", sess.ID(),
			"error", err)
	}
	return nil
}

func (s *sessionService) State(ctx context.Context, userID, sessionID string) (*SessionState, error) {
	sess, err := s.owned(userID, sessionID)
	if err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

func (s *sessionService) SetAnswer(ctx context.Context, userID, sessionID string, questionID int, value string) error {
	sess, err := s.owned(userID, sessionID)
	if err != nil {
		return err
	}
	return sess.SetAnswer(questionID, value)
}

func (s *sessionService) AssignToken(ctx context.Context, userID, sessionID, tokenID string, questionID int) error {
	sess, err := s.owned(userID, sessionID)
	if err != nil {
		return err
	}
	return sess.AssignToken(tokenID, questionID)
}

func (s *sessionService) UnassignToken(ctx context.Context, userID, sessionID, tokenID string) error {
	sess, err := s.owned(userID, sessionID)
	if err != nil {
		return err
	}
	return sess.UnassignToken(tokenID)
}

func (s *sessionService) GoTo(ctx context.Context, userID, sessionID string, questionID int) error {
	sess, err := s.owned(userID, sessionID)
	if err != nil {
		return err
	}
	return sess.GoTo(questionID)
}

func (s *sessionService) Next(ctx context.Context, userID, sessionID string) error {
	sess, err := s.owned(userID, sessionID)
	if err != nil {
		return err
	}
	return sess.Next()
}

func (s *sessionService) Prev(ctx context.Context, userID, sessionID string) error {
	sess, err := s.owned(userID, sessionID)
	if err != nil {
		return err
	}
	return sess.Prev()
}

func (s *sessionService) ToggleReview(ctx context.Context, userID, sessionID string, questionID int) error {
	sess, err := s.owned(userID, sessionID)
	if err != nil {
		return err
	}
	return sess.ToggleReview(questionID)
}

func (s *sessionService) Submit(ctx context.Context, userID, sessionID string) error {
	sess, err := s.owned(userID, sessionID)
	if err != nil {
		return err
	}
	return sess.Submit()
}

func (s *sessionService) Results(ctx context.Context, userID, sessionID string) (*session.Results, error) {
	sess, err := s.owned(userID, sessionID)
	if err != nil {
		return nil, err
	}
	results, err := sess.Results()
	if err != nil {
		return nil, err
	}
	return &results, nil
}

func (s *sessionService) Close(ctx context.Context, userID, sessionID string) error {
	if _, err := s.owned(userID, sessionID); err != nil {
		return err
	}
	return s.sessions.Remove(sessionID)
}

func (s *sessionService) owned(userID, sessionID string) (*session.Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID() != userID {
		return nil, ErrSessionAccessDenied
	}
	return sess, nil
}

// afterSubmit runs once per submission, on its own goroutine: publish the
// lifecycle event, persist the result snapshot, fold it into the user's
// stats, then generate explanations. Each step logs and continues on
// failure; nothing here reaches back into the session state machine.
func (s *sessionService) afterSubmit(outcome session.Outcome) {
	ctx := context.Background()

	s.publishSubmitted(ctx, outcome)
	s.persistResult(ctx, outcome)
	s.updateStats(ctx, outcome)
	s.generateExplanations(ctx, outcome)
}

func (s *sessionService) publishSubmitted(ctx context.Context, outcome session.Outcome) {
	eventType := events.EventSessionSubmitted
	if outcome.Trigger == session.TriggerTimeout {
		eventType = events.EventSessionExpired
	}

	event := events.NewSessionEvent(eventType, events.SessionSubmittedEvent{
		SessionID:       outcome.SessionID,
		UserID:          outcome.UserID,
		CatalogID:       outcome.Catalog.ID,
		TestKind:        string(outcome.Catalog.Kind),
		Trigger:         string(outcome.Trigger),
		CorrectCount:    outcome.Score.CorrectCount,
		TotalCount:      outcome.Score.TotalCount,
		AccuracyPercent: outcome.Score.AccuracyPercent,
		BandEstimate:    outcome.Score.BandEstimate,
		AnsweredCount:   outcome.AnsweredCount,
	})
	if err := s.publisher.PublishSessionEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish session submitted event",
			"session_id", outcome.SessionID,
			"error", err)
	}
}

func (s *sessionService) persistResult(ctx context.Context, outcome session.Outcome) {
	answers := make(map[int]string, len(outcome.Answers))
	for _, entry := range outcome.Answers {
		if entry.Value != "" {
			answers[entry.QuestionID] = entry.Value
		}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		s.logger.Error("failed to marshal answer snapshot",
			"session_id", outcome.SessionID,
			"error", err)
		return
	}

	result := &models.TestResult{
		UserID:          outcome.UserID,
		SessionID:       outcome.SessionID,
		CatalogID:       outcome.Catalog.ID,
		TestKind:        string(outcome.Catalog.Kind),
		CorrectCount:    outcome.Score.CorrectCount,
		TotalCount:      outcome.Score.TotalCount,
		AccuracyPercent: outcome.Score.AccuracyPercent,
		BandEstimate:    outcome.Score.BandEstimate,
		Answers:         datatypes.JSON(raw),
		SubmittedAt:     outcome.SubmittedAt,
	}
	if err := s.repo.TestResults().Create(ctx, result); err != nil {
		s.logger.Error("failed to persist test result",
			"session_id", outcome.SessionID,
			"error", err)
	}
}

func (s *sessionService) updateStats(ctx context.Context, outcome session.Outcome) {
	stat, err := s.repo.UserStats().Get(ctx, outcome.UserID)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			s.logger.Error("failed to load user stats",
				"user_id", outcome.UserID,
				"error", err)
			return
		}
		stat = &models.UserStat{UserID: outcome.UserID}
	}

	completion := 0.0
	if outcome.Score.TotalCount > 0 {
		completion = float64(outcome.AnsweredCount) / float64(outcome.Score.TotalCount) * 100
	}

	// Rolling averages over quizzes taken
	n := float64(stat.QuizzesTaken)
	stat.CompletionRate = (stat.CompletionRate*n + completion) / (n + 1)
	stat.AverageScore = (stat.AverageScore*n + outcome.Score.AccuracyPercent) / (n + 1)
	stat.QuizzesTaken++
	submittedAt := outcome.SubmittedAt
	stat.LastQuizDate = &submittedAt

	if err := s.repo.UserStats().Upsert(ctx, stat); err != nil {
		s.logger.Error("failed to update user stats",
			"user_id", outcome.UserID,
			"error", err)
	}
}

func (s *sessionService) generateExplanations(ctx context.Context, outcome session.Outcome) {
	sess, err := s.sessions.Get(outcome.SessionID)
	if err != nil {
		// Session was closed before the pipeline ran; nothing to deliver to.
		return
	}

	answers := make(map[int]string, len(outcome.Answers))
	for _, entry := range outcome.Answers {
		answers[entry.QuestionID] = entry.Value
	}

	// Only answered questions go to the generator.
	cat := outcome.Catalog
	items := make([]explain.Item, 0, len(cat.Questions))
	for _, q := range cat.Questions {
		user := answers[q.ID]
		if strings.TrimSpace(user) == "" {
			continue
		}
		excerpt := ""
		if p, ok := cat.Passage(q.GroupID); ok {
			excerpt = p.Content
		}
		items = append(items, explain.Item{
			CatalogID: cat.ID,
			Request: explain.Request{
				QuestionID:     q.ID,
				QuestionText:   q.Prompt,
				PassageExcerpt: excerpt,
				CorrectAnswer:  q.CorrectAnswer,
				UserAnswer:     user,
				Correct:        scoring.IsCorrect(q, user),
			},
		})
	}

	s.pipeline.Run(ctx, items, sess.SetExplanation)
	sess.FinishExplanations()

	s.logger.Info("explanations generated",
		"session_id", outcome.SessionID,
		"count", len(items))
}

func snapshot(sess *session.Session) *SessionState {
	cat := sess.Catalog()
	order := cat.Order()

	marks := make([]QuestionMark, 0, len(order))
	for _, id := range order {
		marks = append(marks, QuestionMark{QuestionID: id, State: sess.MarkState(id)})
	}

	return &SessionState{
		SessionID:     sess.ID(),
		CatalogID:     cat.ID,
		TestKind:      cat.Kind,
		Phase:         sess.Phase(),
		Current:       sess.Current(),
		TimeRemaining: sess.TimeRemaining(),
		AnsweredCount: answeredCount(sess),
		TotalCount:    len(order),
		Answers:       sess.Answers(),
		Marks:         marks,
		Flagged:       sess.Flagged(),
		Tokens:        sess.Tokens(),
	}
}

func answeredCount(sess *session.Session) int {
	count := 0
	for _, entry := range sess.Answers() {
		if entry.Value != "" {
			count++
		}
	}
	return count
}
