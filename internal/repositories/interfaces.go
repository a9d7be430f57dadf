package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ieltslab/practice-service/internal/models"
)

var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err is a missing-record error from either
// this package or gorm.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// ===== FILTER STRUCTS =====

type ResultFilters struct {
	UserID    string     `json:"user_id"`
	CatalogID *string    `json:"catalog_id"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type UserStatsRepository interface {
	Get(ctx context.Context, userID string) (*models.UserStat, error)
	Upsert(ctx context.Context, stat *models.UserStat) error
}

type TestResultRepository interface {
	Create(ctx context.Context, result *models.TestResult) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.TestResult, error)
	List(ctx context.Context, filters ResultFilters) ([]models.TestResult, error)
}

// Repository aggregates all repositories behind one dependency
type Repository interface {
	Users() UserRepository
	UserStats() UserStatsRepository
	TestResults() TestResultRepository
}
