package services

import (
	"errors"

	"rereddit/internal/db"
	"rereddit/internal/models"
	"rereddit/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TargetKind says which table a vote lands in. Comments and posts share the
// exact same transition logic, only the row lookup differs.
type TargetKind string

const (
	TargetComment TargetKind = "comment"
	TargetPost    TargetKind = "post"
)

var (
	ErrTargetNotFound = errors.New("vote target does not exist")
	ErrBadVoteType    = errors.New("vote_type must be 1, -1 or 0")
	ErrBadTargetKind  = errors.New("unknown vote target kind")
)

// KindFromPrefix maps a full-name prefix ("t1"/"t2") onto a target kind.
func KindFromPrefix(prefix string) (TargetKind, error) {
	switch prefix {
	case utils.FullNameComment:
		return TargetComment, nil
	case utils.FullNamePost:
		return TargetPost, nil
	}
	return "", ErrBadTargetKind
}

// NextVoteType is the toggle transition table. Repeating the same nonzero
// direction cancels the vote; everything else becomes the requested value.
//
//	current=1, requested=1  -> 0
//	current=1, requested=-1 -> -1
//	current=*, requested=0  -> 0
func NextVoteType(current, requested int) int {
	if requested != models.NoVote && current == requested {
		return models.NoVote
	}
	return requested
}

// ApplyVote runs one vote transition for (voter, target) and synchronously
// recomputes the content owner's karma. Both writes share one transaction:
// either the new vote state and the matching karma are committed together or
// neither is.
func ApplyVote(voterID uint, kind TargetKind, targetID uint, requested int) (int, error) {
	if requested != models.Upvote && requested != models.Downvote && requested != models.NoVote {
		return 0, ErrBadVoteType
	}
	if kind != TargetComment && kind != TargetPost {
		return 0, ErrBadTargetKind
	}

	var next int
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		authorID, err := targetAuthor(tx, kind, targetID)
		if err != nil {
			return err
		}

		current, err := currentVote(tx, voterID, kind, targetID)
		if err != nil {
			return err
		}
		next = NextVoteType(current, requested)

		if err := upsertVote(tx, voterID, kind, targetID, next); err != nil {
			return err
		}

		// A soft-deleted comment has no owner left; its votes count for
		// nobody's karma.
		if authorID != nil {
			return RecomputeKarma(tx, *authorID)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

func targetAuthor(tx *gorm.DB, kind TargetKind, targetID uint) (*uint, error) {
	if kind == TargetComment {
		var comment models.Comment
		if err := tx.First(&comment, targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTargetNotFound
			}
			return nil, err
		}
		return comment.UserID, nil
	}

	var post models.Post
	if err := tx.First(&post, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}
	return &post.UserID, nil
}

func currentVote(tx *gorm.DB, voterID uint, kind TargetKind, targetID uint) (int, error) {
	var err error
	if kind == TargetComment {
		var vote models.CommentVote
		err = tx.Where("user_id = ? AND comment_id = ?", voterID, targetID).First(&vote).Error
		if err == nil {
			return vote.VoteType, nil
		}
	} else {
		var vote models.PostVote
		err = tx.Where("user_id = ? AND post_id = ?", voterID, targetID).First(&vote).Error
		if err == nil {
			return vote.VoteType, nil
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NoVote, nil
	}
	return 0, err
}

// upsertVote writes the decided vote state. ON CONFLICT on the (user,
// target) unique index turns the loser of a concurrent first-vote race into
// an update, so two racing requests end up with one row and the later write
// wins; the constraint never surfaces to the caller.
func upsertVote(tx *gorm.DB, voterID uint, kind TargetKind, targetID uint, voteType int) error {
	if kind == TargetComment {
		vote := models.CommentVote{UserID: voterID, CommentID: targetID, VoteType: voteType}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "comment_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"vote_type", "updated_at"}),
		}).Create(&vote).Error
	}

	vote := models.PostVote{UserID: voterID, PostID: targetID, VoteType: voteType}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"vote_type", "updated_at"}),
	}).Create(&vote).Error
}

// ViewerVote returns the requesting user's own vote on a target, NoVote when
// logged out or not yet voted.
func ViewerVote(viewerID uint, kind TargetKind, targetID uint) int {
	if viewerID == 0 {
		return models.NoVote
	}
	vote, err := currentVote(db.DB, viewerID, kind, targetID)
	if err != nil {
		return models.NoVote
	}
	return vote
}
