package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ieltslab/practice-service/internal/models"
	"github.com/ieltslab/practice-service/internal/repositories"
)

type TestResultPostgreSQL struct {
	db *gorm.DB
}

func NewTestResultPostgreSQL(db *gorm.DB) repositories.TestResultRepository {
	return &TestResultPostgreSQL{db: db}
}

func (r *TestResultPostgreSQL) Create(ctx context.Context, result *models.TestResult) error {
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("failed to create test result: %w", err)
	}
	return nil
}

func (r *TestResultPostgreSQL) GetBySessionID(ctx context.Context, sessionID string) (*models.TestResult, error) {
	var result models.TestResult
	err := r.db.WithContext(ctx).First(&result, "session_id = ?", sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *TestResultPostgreSQL) List(ctx context.Context, filters repositories.ResultFilters) ([]models.TestResult, error) {
	query := r.db.WithContext(ctx).Model(&models.TestResult{}).
		Where("user_id = ?", filters.UserID).
		Order("submitted_at DESC")

	if filters.CatalogID != nil {
		query = query.Where("catalog_id = ?", *filters.CatalogID)
	}
	if filters.DateFrom != nil {
		query = query.Where("submitted_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("submitted_at <= ?", *filters.DateTo)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var results []models.TestResult
	if err := query.Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to list test results: %w", err)
	}
	return results, nil
}
