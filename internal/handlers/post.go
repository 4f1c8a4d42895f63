package handlers

import (
	"net/http"
	"os"
	"sort"

	"rereddit/internal/db"
	"rereddit/internal/middleware"
	"rereddit/internal/models"
	"rereddit/internal/services"
	"rereddit/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

// popularThreshold is the minimum score for the "popular" pseudo-sub.
// Presentation policy, not core algorithm, so it is configurable.
func popularThreshold() int {
	if v := os.Getenv("POPULAR_THRESHOLD"); v != "" {
		return utils.StringToInt(v)
	}
	return 1
}

// fillPostAggregates 批量填充帖子的分数和评论数量
func fillPostAggregates(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	scores, err := services.PostScores(db.DB, postIDs)
	if err != nil {
		return err
	}

	type countRow struct {
		PostID uint
		Count  int
	}
	var counts []countRow
	if err := db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&counts).Error; err != nil {
		return err
	}
	countMap := make(map[uint]int, len(counts))
	for _, r := range counts {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].Score = scores[posts[i].ID]
		posts[i].CommentCount = countMap[posts[i].ID]
	}
	return nil
}

// List returns posts, newest first. sub=<title> narrows to one sub;
// the pseudo-subs sub=new and sub=popular are list filters, not rows in the
// subs table ("popular" keeps posts scoring above the configured threshold,
// ranked by score).
func (h *PostHandler) List(c *gin.Context) {
	subTitle := c.Query("sub")

	query := db.DB.Model(&models.Post{}).Order("created_at DESC").Limit(200)

	popular := false
	switch subTitle {
	case "", "new", "home":
		// 默认按时间倒序
	case "popular", "hot":
		popular = true
	default:
		var sub models.Sub
		if err := db.DB.Where("title = ?", subTitle).First(&sub).Error; err != nil {
			JSONError(c, http.StatusNotFound, "sub does not exist")
			return
		}
		query = query.Where("sub_id = ?", sub.ID)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "could not load posts")
		return
	}
	if err := fillPostAggregates(posts); err != nil {
		JSONError(c, http.StatusInternalServerError, "could not load posts")
		return
	}

	if popular {
		threshold := popularThreshold()
		filtered := posts[:0]
		for _, p := range posts {
			if p.Score > threshold {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Score > posts[j].Score
		})
	}

	c.JSON(http.StatusOK, posts)
}

type postRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
	Sub   string `json:"sub" binding:"required"`
}

func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "title and sub are required")
		return
	}

	var sub models.Sub
	if err := db.DB.Where("title = ?", req.Sub).First(&sub).Error; err != nil {
		JSONError(c, http.StatusNotFound, "sub does not exist")
		return
	}

	post := models.Post{
		UserID: user.ID,
		SubID:  sub.ID,
		Title:  req.Title,
		Body:   req.Body,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "could not create post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Detail(c *gin.Context) {
	var post models.Post
	if err := db.DB.Preload("User").Preload("Sub").
		First(&post, utils.StringToUint(c.Param("id"))).Error; err != nil {
		JSONError(c, http.StatusNotFound, "post does not exist")
		return
	}

	score, err := services.PostScore(db.DB, post.ID)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "could not load post")
		return
	}
	post.Score = score

	var commentCount int64
	db.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount)
	post.CommentCount = int(commentCount)

	c.JSON(http.StatusOK, gin.H{
		"post":      post,
		"full_name": utils.FullName(utils.FullNamePost, post.ID),
		"body_html": utils.RenderMarkdown(post.Body),
		"poster":    post.User.Username,
		"sub":       post.Sub.Title,
		"user_vote": services.ViewerVote(currentUserID(c), services.TargetPost, post.ID),
	})
}

type postUpdateRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

func (h *PostHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var post models.Post
	if err := db.DB.First(&post, utils.StringToUint(c.Param("id"))).Error; err != nil {
		JSONError(c, http.StatusNotFound, "post does not exist")
		return
	}
	if post.UserID != user.ID {
		JSONError(c, http.StatusForbidden, "only the poster can edit a post")
		return
	}

	var req postUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if err := db.DB.Save(&post).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "could not update post")
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var post models.Post
	if err := db.DB.First(&post, utils.StringToUint(c.Param("id"))).Error; err != nil {
		JSONError(c, http.StatusNotFound, "post does not exist")
		return
	}
	if post.UserID != user.ID {
		JSONError(c, http.StatusForbidden, "only the poster can delete a post")
		return
	}

	if err := db.DB.Delete(&post).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "could not delete post")
		return
	}
	c.Status(http.StatusNoContent)
}
