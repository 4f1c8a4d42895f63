package handlers

import (
	"net/http"
	"strings"

	"rereddit/internal/db"
	"rereddit/internal/middleware"
	"rereddit/internal/models"

	"github.com/gin-gonic/gin"
)

type SubHandler struct{}

func NewSubHandler() *SubHandler {
	return &SubHandler{}
}

func (h *SubHandler) List(c *gin.Context) {
	var subs []models.Sub
	if err := db.DB.Order("title").Find(&subs).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "could not load subs")
		return
	}
	c.JSON(http.StatusOK, subs)
}

type subRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (h *SubHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var req subRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "title is required")
		return
	}

	title := strings.ToLower(strings.TrimSpace(req.Title))
	if title == "" || len(title) > 40 {
		JSONError(c, http.StatusBadRequest, "title must be 1-40 characters")
		return
	}
	// 保留名称留给伪社区（popular/new/...）
	for _, reserved := range models.ReservedSubTitles {
		if title == reserved {
			JSONError(c, http.StatusBadRequest, "the sub title '"+title+"' is reserved")
			return
		}
	}

	sub := models.Sub{Title: title, Description: req.Description}
	if err := db.DB.Create(&sub).Error; err != nil {
		JSONError(c, http.StatusConflict, "sub already exists")
		return
	}

	// 创建者自动成为版主
	membership := models.SubMembership{UserID: user.ID, SubID: sub.ID, Moderator: true}
	db.DB.Create(&membership)

	c.JSON(http.StatusCreated, sub)
}

func (h *SubHandler) Detail(c *gin.Context) {
	var sub models.Sub
	if err := db.DB.Where("title = ?", c.Param("title")).First(&sub).Error; err != nil {
		JSONError(c, http.StatusNotFound, "sub does not exist")
		return
	}

	var members int64
	db.DB.Model(&models.SubMembership{}).Where("sub_id = ?", sub.ID).Count(&members)

	subscribed := false
	if userID := currentUserID(c); userID > 0 {
		var membership models.SubMembership
		if err := db.DB.Where("user_id = ? AND sub_id = ?", userID, sub.ID).
			First(&membership).Error; err == nil {
			subscribed = true
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"sub":        sub,
		"members":    members,
		"subscribed": subscribed,
	})
}

type subUpdateRequest struct {
	Description *string `json:"description"`
}

func (h *SubHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var sub models.Sub
	if err := db.DB.Where("title = ?", c.Param("title")).First(&sub).Error; err != nil {
		JSONError(c, http.StatusNotFound, "sub does not exist")
		return
	}
	if !isModerator(user.ID, sub.ID) {
		JSONError(c, http.StatusForbidden, "only a moderator can edit a sub")
		return
	}

	var req subUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Description != nil {
		sub.Description = *req.Description
	}
	if err := db.DB.Save(&sub).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "could not update sub")
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *SubHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var sub models.Sub
	if err := db.DB.Where("title = ?", c.Param("title")).First(&sub).Error; err != nil {
		JSONError(c, http.StatusNotFound, "sub does not exist")
		return
	}
	if !isModerator(user.ID, sub.ID) {
		JSONError(c, http.StatusForbidden, "only a moderator can delete a sub")
		return
	}

	if err := db.DB.Delete(&sub).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "could not delete sub")
		return
	}
	c.Status(http.StatusNoContent)
}

// Subscribe 订阅/退订开关
func (h *SubHandler) Subscribe(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var sub models.Sub
	if err := db.DB.Where("title = ?", c.Param("title")).First(&sub).Error; err != nil {
		JSONError(c, http.StatusNotFound, "sub does not exist")
		return
	}

	var membership models.SubMembership
	err := db.DB.Where("user_id = ? AND sub_id = ?", user.ID, sub.ID).
		First(&membership).Error
	if err == nil {
		// 已订阅，取消
		if err := db.DB.Delete(&membership).Error; err != nil {
			JSONError(c, http.StatusInternalServerError, "could not unsubscribe")
			return
		}
		c.JSON(http.StatusOK, gin.H{"subscribed": false})
		return
	}

	membership = models.SubMembership{UserID: user.ID, SubID: sub.ID}
	if err := db.DB.Create(&membership).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "could not subscribe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribed": true})
}

func isModerator(userID, subID uint) bool {
	var membership models.SubMembership
	err := db.DB.Where("user_id = ? AND sub_id = ? AND moderator = ?", userID, subID, true).
		First(&membership).Error
	return err == nil
}
