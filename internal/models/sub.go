package models

import (
	"time"
)

// ReservedSubTitles are claimed by the pseudo-subs on the front page
// ("popular", "new", ...). Creating a real sub with one of these names
// would shadow those listings, so creation rejects them.
var ReservedSubTitles = []string{"popular", "new", "hot", "home"}

type Sub struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"uniqueIndex;size:40;not null" json:"title"`
	Description string    `gorm:"size:1000" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubMembership links a user to a sub they subscribed to.
// One row per (user, sub); moderators are members with the flag set.
type SubMembership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_sub_member" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	SubID     uint      `gorm:"not null;uniqueIndex:idx_sub_member;index" json:"sub_id"`
	Sub       Sub       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Moderator bool      `gorm:"default:false" json:"moderator"`
	CreatedAt time.Time `json:"created_at"`
}
