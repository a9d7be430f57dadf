package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieltslab/practice-service/internal/identity"
	"github.com/ieltslab/practice-service/internal/repositories"
	"github.com/ieltslab/practice-service/internal/utils"
)

func newTestAuthService(t *testing.T) (AuthService, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	provider := identity.NewPasswordProvider(repo.Users(), nil)
	svc := NewAuthService(provider, provider, repo, slog.Default(), utils.NewValidator())
	return svc, repo
}

func TestAuthServiceSignUpValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpRequest{Name: "A", Email: "not-an-email", Password: "short"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var ve ValidationErrors
	require.ErrorAs(t, err, &ve)
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestAuthServiceSignUpAndSignIn(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	sess, err := svc.SignUp(ctx, SignUpRequest{
		Name:     "Linh",
		Email:    "linh@example.com",
		Password: "a long password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)

	_, err = svc.SignUp(ctx, SignUpRequest{
		Name:     "Linh",
		Email:    "linh@example.com",
		Password: "a long password",
	})
	assert.True(t, IsConflict(err))

	_, err = svc.SignIn(ctx, SignInRequest{Email: "linh@example.com", Password: "wrong password"})
	assert.True(t, IsUnauthorized(err))

	signedIn, err := svc.SignIn(ctx, SignInRequest{Email: "linh@example.com", Password: "a long password"})
	require.NoError(t, err)

	id, err := svc.Verify(ctx, signedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.Identity.UserID, id.UserID)
}

func TestAuthServiceStatsDefaultsToZeroRow(t *testing.T) {
	svc, _ := newTestAuthService(t)

	stat, err := svc.Stats(context.Background(), "fresh-user")
	require.NoError(t, err)
	assert.Equal(t, "fresh-user", stat.UserID)
	assert.Zero(t, stat.QuizzesTaken)
	assert.Nil(t, stat.LastQuizDate)
}

func TestAuthServiceHistoryClampsLimit(t *testing.T) {
	svc, _ := newTestAuthService(t)

	results, err := svc.History(context.Background(), repositories.ResultFilters{
		UserID: "user-1",
		Limit:  -5,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}
