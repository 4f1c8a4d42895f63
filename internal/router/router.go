package router

import (
	"rereddit/internal/handlers"
	"rereddit/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	userHandler := handlers.NewUserHandler()
	subHandler := handlers.NewSubHandler()
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler()
	voteHandler := handlers.NewVoteHandler()

	api := r.Group("/api")

	// 公共路由 (Public Routes)
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.GET("/logout", authHandler.Logout)

	api.GET("/users", userHandler.List)
	api.GET("/users/:id", userHandler.Profile) // 用户主页，含 karma

	api.GET("/subs", subHandler.List)
	api.GET("/subs/:title", subHandler.Detail)

	api.GET("/posts", postHandler.List)              // ?sub=<title>，伪社区 popular/new
	api.GET("/posts/:id", postHandler.Detail)        // 帖子详情，含实时分数
	api.GET("/posts/:id/comments", commentHandler.Tree) // 评论树 ?orderby=popular|new

	// 受保护路由 (Protected Routes)
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/subs", subHandler.Create)
		authorized.PATCH("/subs/:title", subHandler.Update)
		authorized.DELETE("/subs/:title", subHandler.Delete)
		authorized.POST("/subs/:title/subscribe", subHandler.Subscribe) // 订阅/退订开关

		authorized.POST("/posts", postHandler.Create)
		authorized.PATCH("/posts/:id", postHandler.Update)
		authorized.DELETE("/posts/:id", postHandler.Delete)

		authorized.POST("/posts/:id/comments", commentHandler.Create) // 发表根评论
		authorized.POST("/comments/:id/replies", commentHandler.Reply)
		authorized.DELETE("/comments/:id", commentHandler.Delete) // 软删除

		authorized.POST("/vote", voteHandler.Vote) // item_fn + vote_type
	}
}
