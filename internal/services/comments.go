package services

import (
	"errors"
	"strings"

	"rereddit/internal/db"
	"rereddit/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment does not exist")
	ErrPostNotFound    = errors.New("post does not exist")
	ErrEmptyBody       = errors.New("comment body must not be empty")
	ErrNotPoster       = errors.New("only the poster can delete a comment")
)

// CreateComment adds a root comment on a post.
func CreateComment(userID, postID uint, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyBody
	}
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		PostID: post.ID,
		UserID: &userID,
		Body:   body,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// CreateReply adds a child comment under an existing one. The reply's
// post_id is copied from the parent, never taken from the client, so a
// reply can only ever land on its parent's post.
func CreateReply(userID, parentID uint, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyBody
	}
	var parent models.Comment
	if err := db.DB.First(&parent, parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		PostID:   parent.PostID,
		ParentID: &parent.ID,
		UserID:   &userID,
		Body:     body,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// SoftDeleteComment scrubs a comment the way reddit does: the body becomes a
// fixed marker and the poster reference is dropped, while the row, its
// creation time, its replies and its votes all stay in place.
func SoftDeleteComment(userID, commentID uint) error {
	var comment models.Comment
	if err := db.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.UserID == nil || *comment.UserID != userID {
		return ErrNotPoster
	}

	return db.DB.Model(&comment).Updates(map[string]interface{}{
		"body":    models.DeletedBody,
		"user_id": nil,
		"deleted": true,
	}).Error
}
