package services

import (
	"sort"

	"rereddit/internal/db"
	"rereddit/internal/models"
)

// OrderBy selects how sibling comments are ranked. The policy picked for a
// request is applied to the root list and to every nested reply list alike.
type OrderBy string

const (
	OrderPopular OrderBy = "popular" // score descending
	OrderNew     OrderBy = "new"     // newest first
)

// OrderByFrom maps the orderby query parameter onto a policy. Unknown values
// fall back to popular.
func OrderByFrom(param string) OrderBy {
	if OrderBy(param) == OrderNew {
		return OrderNew
	}
	return OrderPopular
}

// CommentNode is one comment with its ordered replies. Score is the live sum
// of the comment's votes; ViewerVote is the requesting user's own vote on it
// (0 when logged out or not voted).
type CommentNode struct {
	Comment    models.Comment
	Score      int
	ViewerVote int
	Children   []*CommentNode
}

// BuildCommentTrees assembles the ordered comment forest of a post.
//
// Every comment of the post comes back in one flat query (replies carry
// their root's post_id, so depth doesn't matter), scores and viewer votes
// come from two batch queries, and the forest is rebuilt through a transient
// parent_id index over a flat node map. No locks are taken: the result is a
// point-in-time snapshot with freshly summed scores.
func BuildCommentTrees(postID uint, order OrderBy, viewerID uint) ([]*CommentNode, error) {
	var comments []models.Comment
	if err := db.DB.Preload("User").
		Where("post_id = ?", postID).
		Order("id").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return []*CommentNode{}, nil
	}

	ids := make([]uint, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}
	scores, err := CommentScores(db.DB, ids)
	if err != nil {
		return nil, err
	}
	viewerVotes, err := viewerCommentVotes(viewerID, ids)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uint]*CommentNode, len(comments))
	for i := range comments {
		c := comments[i]
		nodes[c.ID] = &CommentNode{
			Comment:    c,
			Score:      scores[c.ID],
			ViewerVote: viewerVotes[c.ID],
		}
	}

	// 按 parent_id 分组，根评论按 id 顺序进入 roots
	roots := make([]*CommentNode, 0)
	for i := range comments {
		c := comments[i]
		if c.ParentID == nil {
			roots = append(roots, nodes[c.ID])
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok {
			// Parent row is gone; keep the orphan visible at the root.
			roots = append(roots, nodes[c.ID])
			continue
		}
		parent.Children = append(parent.Children, nodes[c.ID])
	}

	sortSiblings(roots, order)
	for _, node := range nodes {
		sortSiblings(node.Children, order)
	}
	return roots, nil
}

// sortSiblings orders one sibling group. The sort is stable, so equal keys
// keep the creation (id) order of the flat query.
func sortSiblings(siblings []*CommentNode, order OrderBy) {
	if order == OrderNew {
		sort.SliceStable(siblings, func(i, j int) bool {
			return siblings[i].Comment.CreatedAt.After(siblings[j].Comment.CreatedAt)
		})
		return
	}
	sort.SliceStable(siblings, func(i, j int) bool {
		return siblings[i].Score > siblings[j].Score
	})
}

func viewerCommentVotes(viewerID uint, commentIDs []uint) (map[uint]int, error) {
	votes := make(map[uint]int, len(commentIDs))
	if viewerID == 0 || len(commentIDs) == 0 {
		return votes, nil
	}
	var rows []models.CommentVote
	if err := db.DB.
		Where("user_id = ? AND comment_id IN ?", viewerID, commentIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, v := range rows {
		votes[v.CommentID] = v.VoteType
	}
	return votes, nil
}
