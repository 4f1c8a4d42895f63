package models

import (
	"time"
)

// DeletedBody replaces a comment's body when it is soft-deleted.
const DeletedBody = "deleted"

type Comment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// PostID is set on every comment. Replies copy it down from their parent
	// at creation, so a whole discussion is one flat query by post_id.
	// ParentID nil-ness is what distinguishes a root comment from a reply.
	PostID   uint     `gorm:"not null;index" json:"post_id"`
	Post     Post     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ParentID *uint    `gorm:"index" json:"parent_id"`
	Parent   *Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// UserID is cleared when the comment is soft-deleted; the row, its
	// children and its votes all stay.
	UserID *uint `gorm:"index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Body      string    `gorm:"type:text;not null" json:"body"`
	Deleted   bool      `gorm:"default:false;not null" json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
}
