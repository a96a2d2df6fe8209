package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vidstream/vidstream-backend/internal/container"
	handlers "github.com/vidstream/vidstream-backend/internal/interface/http"
	"github.com/vidstream/vidstream-backend/internal/interface/middleware"
)

// VideoModule wires the video catalogue, the like/dislike toggles and the
// comment routes.
type VideoModule struct {
	Videos     *handlers.VideoHandler
	Engagement *handlers.EngagementHandler
	Comments   *handlers.CommentHandler
}

func NewVideoModule(v *handlers.VideoHandler, e *handlers.EngagementHandler, c *handlers.CommentHandler) *VideoModule {
	return &VideoModule{Videos: v, Engagement: e, Comments: c}
}

func (m *VideoModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	publicLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	searchLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	// Public catalogue
	pub := rg.Group("/videos")
	pub.Use(publicLimiter)
	{
		pub.GET("", m.Videos.List)
		pub.GET("/trending", m.Videos.Trending)
		pub.GET("/search", searchLimiter, m.Videos.Search)
		pub.GET("/:id", m.Videos.Watch)
		pub.GET("/:id/stats", m.Videos.Stats)
		pub.GET("/:id/comments", m.Comments.List)
	}

	// Protected
	auth := rg.Group("/videos")
	auth.Use(
		middleware.Auth(rdb, container.GetJWT()),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.POST("", m.Videos.Upload)
		auth.GET("/mine", m.Videos.Mine)

		auth.POST("/:id/like", m.Engagement.ToggleLike)
		auth.POST("/:id/dislike", m.Engagement.ToggleDislike)
		auth.GET("/:id/like-status", m.Engagement.LikeStatus)

		auth.POST("/:id/comments", m.Comments.Add)
		auth.PUT("/:id/comments/:commentId", m.Comments.Update)
		auth.DELETE("/:id/comments/:commentId", m.Comments.Delete)
	}
}
