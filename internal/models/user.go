package models

import (
	"time"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash

	// Karma is denormalized: it always equals the sum of vote_type over every
	// vote on this user's posts and comments. It is rewritten inside the same
	// transaction as each vote transition, so reads never see a stale value.
	Karma int `gorm:"default:0;not null" json:"karma"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
