package services

import (
	"rereddit/internal/models"

	"gorm.io/gorm"
)

// Scores are never stored. Every function here sums vote_type rows at call
// time, so a score read always reflects every committed vote.

// CommentScore returns the current score of one comment.
func CommentScore(db *gorm.DB, commentID uint) (int, error) {
	return sumVotes(db.Model(&models.CommentVote{}).Where("comment_id = ?", commentID))
}

// PostScore returns the current score of one post.
func PostScore(db *gorm.DB, postID uint) (int, error) {
	return sumVotes(db.Model(&models.PostVote{}).Where("post_id = ?", postID))
}

func sumVotes(q *gorm.DB) (int, error) {
	var sum int64
	if err := q.Select("COALESCE(SUM(vote_type), 0)").Scan(&sum).Error; err != nil {
		return 0, err
	}
	return int(sum), nil
}

// CommentScores 批量查询评论分数，一次 GROUP BY 拿到整棵树的分数
func CommentScores(db *gorm.DB, commentIDs []uint) (map[uint]int, error) {
	scores := make(map[uint]int, len(commentIDs))
	if len(commentIDs) == 0 {
		return scores, nil
	}

	type scoreRow struct {
		CommentID uint
		Score     int64
	}
	var rows []scoreRow
	if err := db.Model(&models.CommentVote{}).
		Select("comment_id, COALESCE(SUM(vote_type), 0) as score").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		scores[r.CommentID] = int(r.Score)
	}
	return scores, nil
}

// PostScores 批量查询帖子分数
func PostScores(db *gorm.DB, postIDs []uint) (map[uint]int, error) {
	scores := make(map[uint]int, len(postIDs))
	if len(postIDs) == 0 {
		return scores, nil
	}

	type scoreRow struct {
		PostID uint
		Score  int64
	}
	var rows []scoreRow
	if err := db.Model(&models.PostVote{}).
		Select("post_id, COALESCE(SUM(vote_type), 0) as score").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		scores[r.PostID] = int(r.Score)
	}
	return scores, nil
}

// KarmaOf sums the scores of everything the user authored. Soft-deleted
// comments have their user_id cleared, so their votes drop out of the joins
// on their own.
func KarmaOf(db *gorm.DB, userID uint) (int, error) {
	commentKarma, err := sumVotes(db.Model(&models.CommentVote{}).
		Joins("JOIN comments ON comments.id = comment_votes.comment_id").
		Where("comments.user_id = ?", userID))
	if err != nil {
		return 0, err
	}
	postKarma, err := sumVotes(db.Model(&models.PostVote{}).
		Joins("JOIN posts ON posts.id = post_votes.post_id").
		Where("posts.user_id = ?", userID))
	if err != nil {
		return 0, err
	}
	return commentKarma + postKarma, nil
}

// RecomputeKarma rewrites users.karma from the vote tables. Callers run this
// inside the same transaction as the vote transition so the ledger and the
// cached karma can never disagree.
func RecomputeKarma(tx *gorm.DB, userID uint) error {
	karma, err := KarmaOf(tx, userID)
	if err != nil {
		return err
	}
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("karma", karma).
		Error
}
