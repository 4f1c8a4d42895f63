package services

import (
	"fmt"
	"testing"
	"time"

	"rereddit/internal/db"
	"rereddit/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global db.DB at a fresh in-memory database. Each
// test gets its own named shared-cache db so the pool's connections all see
// the same tables.
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	db.DB = gdb
}

func createUser(t *testing.T, username string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return user
}

func createSub(t *testing.T, title string) models.Sub {
	t.Helper()
	sub := models.Sub{Title: title}
	require.NoError(t, db.DB.Create(&sub).Error)
	return sub
}

func createPost(t *testing.T, userID, subID uint) models.Post {
	t.Helper()
	post := models.Post{
		UserID: userID,
		SubID:  subID,
		Title:  "test post title",
		Body:   "test post body",
	}
	require.NoError(t, db.DB.Create(&post).Error)
	return post
}

func createComment(t *testing.T, userID, postID uint, parentID *uint) models.Comment {
	t.Helper()
	comment := models.Comment{
		PostID:   postID,
		ParentID: parentID,
		UserID:   &userID,
		Body:     "test comment",
	}
	require.NoError(t, db.DB.Create(&comment).Error)
	return comment
}

func createCommentAt(t *testing.T, userID, postID uint, parentID *uint, created time.Time) models.Comment {
	t.Helper()
	comment := models.Comment{
		PostID:    postID,
		ParentID:  parentID,
		UserID:    &userID,
		Body:      "test comment",
		CreatedAt: created,
	}
	require.NoError(t, db.DB.Create(&comment).Error)
	return comment
}

// voteOnComment inserts a vote row directly, bypassing the ledger, for
// score/tree fixtures.
func voteOnComment(t *testing.T, userID, commentID uint, voteType int) {
	t.Helper()
	require.NoError(t, db.DB.Create(&models.CommentVote{
		UserID:    userID,
		CommentID: commentID,
		VoteType:  voteType,
	}).Error)
}

func voteOnPost(t *testing.T, userID, postID uint, voteType int) {
	t.Helper()
	require.NoError(t, db.DB.Create(&models.PostVote{
		UserID:   userID,
		PostID:   postID,
		VoteType: voteType,
	}).Error)
}

func userKarma(t *testing.T, userID uint) int {
	t.Helper()
	var user models.User
	require.NoError(t, db.DB.First(&user, userID).Error)
	return user.Karma
}
