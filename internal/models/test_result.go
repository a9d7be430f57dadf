package models

import (
	"time"

	"gorm.io/datatypes"
)

// TestResult is an immutable snapshot of a submitted practice session. The
// session core never reads it back; it exists for history and stats views.
type TestResult struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UserID    string `json:"user_id" gorm:"not null;size:255;index"`
	SessionID string `json:"session_id" gorm:"not null;size:64;uniqueIndex"`
	CatalogID string `json:"catalog_id" gorm:"not null;size:64;index"`
	TestKind  string `json:"test_kind" gorm:"not null;size:20"`

	CorrectCount    int     `json:"correct_count" gorm:"not null"`
	TotalCount      int     `json:"total_count" gorm:"not null"`
	AccuracyPercent float64 `json:"accuracy_percent" gorm:"not null"`
	BandEstimate    float64 `json:"band_estimate" gorm:"not null"`

	// Answers holds the frozen question_id -> value map at submission time.
	Answers datatypes.JSON `json:"answers" gorm:"type:jsonb"`

	SubmittedAt time.Time `json:"submitted_at" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (TestResult) TableName() string {
	return "test_results"
}
