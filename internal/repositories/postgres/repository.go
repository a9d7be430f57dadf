package postgres

import (
	"gorm.io/gorm"

	"github.com/ieltslab/practice-service/internal/repositories"
)

type Repository struct {
	users       repositories.UserRepository
	userStats   repositories.UserStatsRepository
	testResults repositories.TestResultRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		users:       NewUserPostgreSQL(db),
		userStats:   NewUserStatsPostgreSQL(db),
		testResults: NewTestResultPostgreSQL(db),
	}
}

func (r *Repository) Users() repositories.UserRepository             { return r.users }
func (r *Repository) UserStats() repositories.UserStatsRepository    { return r.userStats }
func (r *Repository) TestResults() repositories.TestResultRepository { return r.testResults }
