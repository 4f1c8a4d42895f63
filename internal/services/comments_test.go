package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentAndReplyCopyPostDown(t *testing.T) {
	setupTestDB(t)
	poster := createUser(t, "poster")
	sub := createSub(t, "testsub")
	post := createPost(t, poster.ID, sub.ID)

	root, err := CreateComment(poster.ID, post.ID, "root comment")
	require.NoError(t, err)
	assert.Equal(t, post.ID, root.PostID)
	assert.Nil(t, root.ParentID)

	reply, err := CreateReply(poster.ID, root.ID, "first reply")
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, root.ID, *reply.ParentID)
	assert.Equal(t, post.ID, reply.PostID, "reply inherits its parent's post")

	deep, err := CreateReply(poster.ID, reply.ID, "nested reply")
	require.NoError(t, err)
	assert.Equal(t, post.ID, deep.PostID, "post reference propagates to any depth")
}

func TestCreateCommentValidation(t *testing.T) {
	setupTestDB(t)
	poster := createUser(t, "poster")
	sub := createSub(t, "testsub")
	post := createPost(t, poster.ID, sub.ID)

	_, err := CreateComment(poster.ID, post.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyBody)

	_, err = CreateComment(poster.ID, 9999, "hello")
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = CreateReply(poster.ID, 9999, "hello")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestSoftDeleteOnlyByPoster(t *testing.T) {
	setupTestDB(t)
	poster := createUser(t, "poster")
	other := createUser(t, "other")
	sub := createSub(t, "testsub")
	post := createPost(t, poster.ID, sub.ID)
	comment := createComment(t, poster.ID, post.ID, nil)

	assert.ErrorIs(t, SoftDeleteComment(other.ID, comment.ID), ErrNotPoster)
	assert.ErrorIs(t, SoftDeleteComment(poster.ID, 9999), ErrCommentNotFound)

	require.NoError(t, SoftDeleteComment(poster.ID, comment.ID))

	// deleting twice is also refused: the scrubbed comment has no poster
	assert.ErrorIs(t, SoftDeleteComment(poster.ID, comment.ID), ErrNotPoster)
}
