package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID    string `json:"id" gorm:"primaryKey;size:255"`
	Name  string `json:"name" gorm:"not null;size:100" validate:"required,min=2,max=100"`
	Email string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`

	// Never serialized; bcrypt hash, maintained by the identity provider only.
	PasswordHash string `json:"-" gorm:"not null;size:100"`

	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
