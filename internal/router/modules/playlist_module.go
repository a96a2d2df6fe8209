package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vidstream/vidstream-backend/internal/container"
	handlers "github.com/vidstream/vidstream-backend/internal/interface/http"
	"github.com/vidstream/vidstream-backend/internal/interface/middleware"
)

// PlaylistModule wires the playlist routes, all protected.
type PlaylistModule struct {
	Handler *handlers.PlaylistHandler
}

func NewPlaylistModule(h *handlers.PlaylistHandler) *PlaylistModule {
	return &PlaylistModule{Handler: h}
}

func (m *PlaylistModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	g := rg.Group("/playlists",
		middleware.Auth(rdb, container.GetJWT()),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		g.DELETE("", m.Handler.DeleteAll)
		g.GET("/:playlistId", m.Handler.Get)
		g.PUT("/:playlistId", m.Handler.Update)
		g.DELETE("/:playlistId", m.Handler.Delete)
		g.PATCH("/:playlistId/videos", m.Handler.AddVideo)
		g.DELETE("/:playlistId/videos/:videoId", m.Handler.RemoveVideo)
	}
}
