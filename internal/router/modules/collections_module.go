package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vidstream/vidstream-backend/internal/container"
	handlers "github.com/vidstream/vidstream-backend/internal/interface/http"
	"github.com/vidstream/vidstream-backend/internal/interface/middleware"
)

// CollectionsModule registers the three per-user reference sets under
// /liked-videos, /disliked-videos and /watch-later. Each group carries the
// same operation surface: list, add, remove, check, clear.
type CollectionsModule struct {
	Liked      *handlers.CollectionHandler
	Disliked   *handlers.CollectionHandler
	WatchLater *handlers.CollectionHandler
}

func NewCollectionsModule(liked, disliked, watchLater *handlers.CollectionHandler) *CollectionsModule {
	return &CollectionsModule{Liked: liked, Disliked: disliked, WatchLater: watchLater}
}

func (m *CollectionsModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	auth := middleware.Auth(rdb, container.GetJWT())
	limiter := middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil)

	register := func(path string, h *handlers.CollectionHandler) {
		g := rg.Group(path, auth, limiter)
		g.GET("", h.List)
		g.POST("", h.Add)
		g.DELETE("", h.Clear)
		g.GET("/:videoId/check", h.Check)
		g.DELETE("/:videoId", h.Remove)
	}

	register("/liked-videos", m.Liked)
	register("/disliked-videos", m.Disliked)
	register("/watch-later", m.WatchLater)
}
