package services

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieltslab/practice-service/internal/catalog"
	"github.com/ieltslab/practice-service/internal/events"
	"github.com/ieltslab/practice-service/internal/explain"
	"github.com/ieltslab/practice-service/internal/models"
	"github.com/ieltslab/practice-service/internal/repositories"
	"github.com/ieltslab/practice-service/internal/session"
)

// ===== IN-MEMORY REPOSITORY FAKES =====

type fakeRepo struct {
	mu      sync.Mutex
	users   map[string]*models.User
	stats   map[string]*models.UserStat
	results []models.TestResult
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users: make(map[string]*models.User),
		stats: make(map[string]*models.UserStat),
	}
}

func (r *fakeRepo) Users() repositories.UserRepository             { return (*fakeUsers)(r) }
func (r *fakeRepo) UserStats() repositories.UserStatsRepository    { return (*fakeStats)(r) }
func (r *fakeRepo) TestResults() repositories.TestResultRepository { return (*fakeResults)(r) }

type fakeUsers fakeRepo

func (r *fakeUsers) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return u, nil
}

func (r *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUsers) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeStats fakeRepo

func (r *fakeStats) Get(ctx context.Context, userID string) (*models.UserStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stats[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeStats) Upsert(ctx context.Context, stat *models.UserStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *stat
	r.stats[stat.UserID] = &copied
	return nil
}

type fakeResults fakeRepo

func (r *fakeResults) Create(ctx context.Context, result *models.TestResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, *result)
	return nil
}

func (r *fakeResults) GetBySessionID(ctx context.Context, sessionID string) (*models.TestResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.results {
		if r.results[i].SessionID == sessionID {
			copied := r.results[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeResults) List(ctx context.Context, filters repositories.ResultFilters) ([]models.TestResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TestResult
	for _, res := range r.results {
		if res.UserID == filters.UserID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeRepo) resultCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func (r *fakeRepo) statFor(userID string) (models.UserStat, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stats[userID]
	if !ok {
		return models.UserStat{}, false
	}
	return *s, true
}

// ===== STUB GENERATOR =====

type stubGenerator struct {
	mu    sync.Mutex
	calls []int
}

func (g *stubGenerator) Generate(ctx context.Context, req explain.Request) (explain.Explanation, error) {
	g.mu.Lock()
	g.calls = append(g.calls, req.QuestionID)
	g.mu.Unlock()
	return explain.Explanation{Explanation: "stub analysis"}, nil
}

func (g *stubGenerator) questionIDs() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]int(nil), g.calls...)
}

// ===== TESTS =====

func newTestSessionService(t *testing.T) (SessionService, *fakeRepo, *events.MockEventPublisher, *stubGenerator) {
	t.Helper()
	logger := slog.Default()
	repo := newFakeRepo()
	publisher := events.NewMockEventPublisher(logger)
	gen := &stubGenerator{}
	pipeline := explain.NewPipeline(gen, nil, logger, time.Second)
	store := catalog.NewStore(catalog.SeedCatalogs()...)

	svc := NewSessionService(store, session.NewManager(), repo, publisher, pipeline, logger)
	return svc, repo, publisher, gen
}

func TestSessionServiceStartUnknownCatalog(t *testing.T) {
	svc, _, _, _ := newTestSessionService(t)

	_, err := svc.Start(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, catalog.ErrCatalogNotFound)
}

func TestSessionServiceOwnership(t *testing.T) {
	svc, _, _, _ := newTestSessionService(t)
	ctx := context.Background()

	state, err := svc.Start(ctx, "user-1", "listening-1")
	require.NoError(t, err)

	_, err = svc.State(ctx, "intruder", state.SessionID)
	assert.ErrorIs(t, err, ErrSessionAccessDenied)
	assert.ErrorIs(t, svc.Submit(ctx, "intruder", state.SessionID), ErrSessionAccessDenied)

	_, err = svc.State(ctx, "user-1", "no-such-session")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSessionServiceFullLifecycle(t *testing.T) {
	svc, repo, publisher, gen := newTestSessionService(t)
	ctx := context.Background()

	state, err := svc.Start(ctx, "user-1", "listening-1")
	require.NoError(t, err)
	assert.Equal(t, session.PhaseTutorial, state.Phase)
	assert.Equal(t, 58*60, state.TimeRemaining)
	assert.NotEmpty(t, state.Tokens)

	require.NoError(t, svc.Begin(ctx, "user-1", state.SessionID))

	require.NoError(t, svc.SetAnswer(ctx, "user-1", state.SessionID, 1, "round"))
	require.NoError(t, svc.AssignToken(ctx, "user-1", state.SessionID, "t1", 16))
	require.NoError(t, svc.GoTo(ctx, "user-1", state.SessionID, 16))
	require.NoError(t, svc.ToggleReview(ctx, "user-1", state.SessionID, 21))

	mid, err := svc.State(ctx, "user-1", state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 16, mid.Current)
	assert.Equal(t, 2, mid.AnsweredCount)
	assert.Equal(t, []int{21}, mid.Flagged)

	require.NoError(t, svc.Submit(ctx, "user-1", state.SessionID))

	// The after-submit hook runs asynchronously: event, snapshot row, stats
	// and explanations all land shortly after.
	require.Eventually(t, func() bool {
		return repo.resultCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		results, err := svc.Results(ctx, "user-1", state.SessionID)
		return err == nil && results.ExplanationsReady
	}, 2*time.Second, 10*time.Millisecond)

	results, err := svc.Results(ctx, "user-1", state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, session.TriggerManual, results.Trigger)
	// "round" for Q1 and token t1 ("Cookery Room") on slot 16 are correct.
	assert.Equal(t, 2, results.Score.CorrectCount)
	// Only the two answered questions were sent to the generator; the rest
	// stay unexplained.
	assert.ElementsMatch(t, []int{1, 16}, gen.questionIDs())
	for _, row := range results.Rows {
		if row.QuestionID == 1 || row.QuestionID == 16 {
			require.NotNil(t, row.Explanation, "question %d missing explanation", row.QuestionID)
		} else {
			assert.Nil(t, row.Explanation, "question %d should not be explained", row.QuestionID)
		}
	}

	stat, ok := repo.statFor("user-1")
	require.True(t, ok)
	assert.Equal(t, 1, stat.QuizzesTaken)
	assert.Greater(t, stat.CompletionRate, 0.0)
	assert.NotNil(t, stat.LastQuizDate)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, events.EventSessionStarted, published[0].Type)
	assert.Equal(t, events.EventSessionSubmitted, published[1].Type)

	// Close tears the session down.
	require.NoError(t, svc.Close(ctx, "user-1", state.SessionID))
	_, err = svc.Results(ctx, "user-1", state.SessionID)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSessionServiceRejectsMutationsBeforeBegin(t *testing.T) {
	svc, _, _, _ := newTestSessionService(t)
	ctx := context.Background()

	state, err := svc.Start(ctx, "user-1", "reading-academic-1")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SetAnswer(ctx, "user-1", state.SessionID, 1, "x"), session.ErrNotStarted)
	assert.ErrorIs(t, svc.Submit(ctx, "user-1", state.SessionID), session.ErrNotStarted)
}

func TestSessionServiceSkipsUnansweredExplanations(t *testing.T) {
	svc, _, _, gen := newTestSessionService(t)
	ctx := context.Background()

	state, err := svc.Start(ctx, "user-1", "reading-academic-1")
	require.NoError(t, err)
	require.NoError(t, svc.Begin(ctx, "user-1", state.SessionID))

	require.NoError(t, svc.SetAnswer(ctx, "user-1", state.SessionID, 1, "TRUE"))
	// Whitespace-only input counts as unanswered.
	require.NoError(t, svc.SetAnswer(ctx, "user-1", state.SessionID, 2, "   "))
	require.NoError(t, svc.Submit(ctx, "user-1", state.SessionID))

	var results *session.Results
	require.Eventually(t, func() bool {
		r, err := svc.Results(ctx, "user-1", state.SessionID)
		if err != nil || !r.ExplanationsReady {
			return false
		}
		results = r
		return true
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, []int{1}, gen.questionIDs())
	for _, row := range results.Rows {
		if row.QuestionID == 1 {
			assert.NotNil(t, row.Explanation)
		} else {
			assert.Nil(t, row.Explanation, "question %d should not be explained", row.QuestionID)
		}
	}
}
