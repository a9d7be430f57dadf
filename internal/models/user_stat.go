package models

import "time"

// UserStat is the per-user practice summary row maintained by the scoring
// pipeline after each submission.
type UserStat struct {
	UserID         string     `json:"user_id" gorm:"primaryKey;size:255"`
	QuizzesTaken   int        `json:"quizzes_taken" gorm:"default:0"`
	CompletionRate float64    `json:"completion_rate" gorm:"default:0"` // percent of questions answered, averaged
	AverageScore   float64    `json:"average_score" gorm:"default:0"`   // accuracy percent, averaged
	LastQuizDate   *time.Time `json:"last_quiz_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserStat) TableName() string {
	return "user_stats"
}
