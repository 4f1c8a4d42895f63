package handlers

import (
	"errors"
	"net/http"

	"rereddit/internal/middleware"
	"rereddit/internal/models"
	"rereddit/internal/services"
	"rereddit/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

type voteRequest struct {
	// "t1_<id>" votes on a comment, "t2_<id>" on a post.
	ItemFn string `json:"item_fn" binding:"required"`
	// Pointer so an explicit 0 (unvote) still binds.
	VoteType *int `json:"vote_type" binding:"required"`
}

// Vote 处理投票逻辑（toggle 语义，见 services.ApplyVote）
func (h *VoteHandler) Vote(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "item_fn and vote_type are required")
		return
	}

	prefix, targetID, err := utils.ParseFullName(req.ItemFn)
	if err != nil {
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	kind, err := services.KindFromPrefix(prefix)
	if err != nil {
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := services.ApplyVote(user.ID, kind, targetID, *req.VoteType)
	switch {
	case errors.Is(err, services.ErrTargetNotFound):
		JSONError(c, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, services.ErrBadVoteType):
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		JSONError(c, http.StatusInternalServerError, "could not record vote")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item_fn":   req.ItemFn,
		"vote_type": result,
	})
}
