package services

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/ieltslab/practice-service/internal/errors"
	"github.com/ieltslab/practice-service/internal/identity"
	"github.com/ieltslab/practice-service/internal/models"
	"github.com/ieltslab/practice-service/internal/repositories"
)

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthService fronts the identity provider and the per-user aggregates.
type AuthService interface {
	SignUp(ctx context.Context, req SignUpRequest) (identity.Session, error)
	SignIn(ctx context.Context, req SignInRequest) (identity.Session, error)
	SignOut(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (identity.Identity, error)

	Stats(ctx context.Context, userID string) (*models.UserStat, error)
	History(ctx context.Context, filters repositories.ResultFilters) ([]models.TestResult, error)
}

type authService struct {
	provider identity.Provider
	verifier identity.Verifier
	repo     repositories.Repository
	logger   *slog.Logger
	validate *validator.Validate
}

func NewAuthService(
	provider identity.Provider,
	verifier identity.Verifier,
	repo repositories.Repository,
	logger *slog.Logger,
	validate *validator.Validate,
) AuthService {
	return &authService{
		provider: provider,
		verifier: verifier,
		repo:     repo,
		logger:   logger,
		validate: validate,
	}
}

func (s *authService) SignUp(ctx context.Context, req SignUpRequest) (identity.Session, error) {
	if err := s.validate.Struct(req); err != nil {
		return identity.Session{}, apperrors.ToValidationErrors(err)
	}

	sess, err := s.provider.SignUp(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return identity.Session{}, err
	}

	s.logger.Info("user registered",
		"user_id", sess.Identity.UserID,
		"email", sess.Identity.Email)
	return sess, nil
}

func (s *authService) SignIn(ctx context.Context, req SignInRequest) (identity.Session, error) {
	if err := s.validate.Struct(req); err != nil {
		return identity.Session{}, apperrors.ToValidationErrors(err)
	}

	sess, err := s.provider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return identity.Session{}, err
	}

	s.logger.Info("user signed in", "user_id", sess.Identity.UserID)
	return sess, nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	return s.provider.SignOut(ctx, token)
}

func (s *authService) Verify(ctx context.Context, token string) (identity.Identity, error) {
	return s.verifier.Verify(ctx, token)
}

// Stats returns the user's aggregate row; a user with no submissions yet
// gets a zero-valued row rather than an error.
func (s *authService) Stats(ctx context.Context, userID string) (*models.UserStat, error) {
	stat, err := s.repo.UserStats().Get(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return &models.UserStat{UserID: userID}, nil
		}
		return nil, err
	}
	return stat, nil
}

func (s *authService) History(ctx context.Context, filters repositories.ResultFilters) ([]models.TestResult, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}
	return s.repo.TestResults().List(ctx, filters)
}
