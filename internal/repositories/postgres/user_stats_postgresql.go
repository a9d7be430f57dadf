package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ieltslab/practice-service/internal/models"
	"github.com/ieltslab/practice-service/internal/repositories"
)

type UserStatsPostgreSQL struct {
	db *gorm.DB
}

func NewUserStatsPostgreSQL(db *gorm.DB) repositories.UserStatsRepository {
	return &UserStatsPostgreSQL{db: db}
}

func (s *UserStatsPostgreSQL) Get(ctx context.Context, userID string) (*models.UserStat, error) {
	var stat models.UserStat
	err := s.db.WithContext(ctx).First(&stat, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &stat, nil
}

// Upsert writes the aggregate row, replacing the tracked columns when the
// user already has one.
func (s *UserStatsPostgreSQL) Upsert(ctx context.Context, stat *models.UserStat) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"quizzes_taken",
			"completion_rate",
			"average_score",
			"last_quiz_date",
			"updated_at",
		}),
	}).Create(stat).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user stats: %w", err)
	}
	return nil
}
