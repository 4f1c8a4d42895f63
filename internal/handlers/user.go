package handlers

import (
	"net/http"

	"rereddit/internal/db"
	"rereddit/internal/models"
	"rereddit/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := db.DB.Order("id").Find(&users).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "could not load users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// Profile 用户主页：基本信息、karma 和发帖/评论数量
func (h *UserHandler) Profile(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, utils.StringToUint(c.Param("id"))).Error; err != nil {
		JSONError(c, http.StatusNotFound, "user does not exist")
		return
	}

	var postCount, commentCount int64
	db.DB.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&postCount)
	db.DB.Model(&models.Comment{}).Where("user_id = ?", user.ID).Count(&commentCount)

	var subs []models.Sub
	db.DB.Joins("JOIN sub_memberships ON sub_memberships.sub_id = subs.id").
		Where("sub_memberships.user_id = ?", user.ID).
		Order("subs.title").
		Find(&subs)

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"post_count":    postCount,
		"comment_count": commentCount,
		"subs":          subs,
	})
}
