package handlers

import (
	"errors"
	"net/http"
	"time"

	"rereddit/internal/db"
	"rereddit/internal/middleware"
	"rereddit/internal/models"
	"rereddit/internal/services"
	"rereddit/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// commentJSON is the wire shape of one tree node. Children are included
// recursively in the order the policy produced.
type commentJSON struct {
	ID        uint           `json:"id"`
	FullName  string         `json:"full_name"`
	PostID    uint           `json:"post_id"`
	ParentID  *uint          `json:"parent_id"`
	Poster    *string        `json:"poster"`
	Body      string         `json:"body"`
	BodyHTML  string         `json:"body_html"`
	Score     int            `json:"score"`
	UserVote  int            `json:"user_vote"`
	Deleted   bool           `json:"deleted"`
	CreatedAt time.Time      `json:"created_at"`
	Children  []*commentJSON `json:"children"`
}

func renderCommentNode(node *services.CommentNode) *commentJSON {
	c := node.Comment
	out := &commentJSON{
		ID:        c.ID,
		FullName:  utils.FullName(utils.FullNameComment, c.ID),
		PostID:    c.PostID,
		ParentID:  c.ParentID,
		Body:      c.Body,
		BodyHTML:  utils.RenderMarkdown(c.Body),
		Score:     node.Score,
		UserVote:  node.ViewerVote,
		Deleted:   c.Deleted,
		CreatedAt: c.CreatedAt,
		Children:  make([]*commentJSON, 0, len(node.Children)),
	}
	if c.User != nil {
		name := c.User.Username
		out.Poster = &name
	}
	for _, child := range node.Children {
		out.Children = append(out.Children, renderCommentNode(child))
	}
	return out
}

// Tree 返回帖子的评论树，orderby=popular|new，默认 popular
func (h *CommentHandler) Tree(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))

	// The post must exist before any tree work starts.
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		JSONError(c, http.StatusNotFound, "post does not exist")
		return
	}

	order := services.OrderByFrom(c.Query("orderby"))
	roots, err := services.BuildCommentTrees(post.ID, order, currentUserID(c))
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "could not load comments")
		return
	}

	trees := make([]*commentJSON, 0, len(roots))
	for _, root := range roots {
		trees = append(trees, renderCommentNode(root))
	}
	c.JSON(http.StatusOK, trees)
}

type commentRequest struct {
	Body string `json:"body" binding:"required"`
}

// Create 发表根评论
func (h *CommentHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "body is required")
		return
	}

	comment, err := services.CreateComment(user.ID, utils.StringToUint(c.Param("id")), req.Body)
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		JSONError(c, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, services.ErrEmptyBody):
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		JSONError(c, http.StatusInternalServerError, "could not create comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Reply 回复评论，post 引用从父评论复制，由不得客户端
func (h *CommentHandler) Reply(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "body is required")
		return
	}

	comment, err := services.CreateReply(user.ID, utils.StringToUint(c.Param("id")), req.Body)
	switch {
	case errors.Is(err, services.ErrCommentNotFound):
		JSONError(c, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, services.ErrEmptyBody):
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		JSONError(c, http.StatusInternalServerError, "could not create reply")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Delete 软删除评论（只清空内容和作者，保留楼层、子评论和投票记录）
func (h *CommentHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	err := services.SoftDeleteComment(user.ID, utils.StringToUint(c.Param("id")))
	switch {
	case errors.Is(err, services.ErrCommentNotFound):
		JSONError(c, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, services.ErrNotPoster):
		JSONError(c, http.StatusForbidden, err.Error())
		return
	case err != nil:
		JSONError(c, http.StatusInternalServerError, "could not delete comment")
		return
	}

	c.Status(http.StatusNoContent)
}
