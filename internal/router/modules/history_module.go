package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vidstream/vidstream-backend/internal/container"
	handlers "github.com/vidstream/vidstream-backend/internal/interface/http"
	"github.com/vidstream/vidstream-backend/internal/interface/middleware"
)

// HistoryModule wires the watch history routes, all protected.
type HistoryModule struct {
	Handler *handlers.HistoryHandler
}

func NewHistoryModule(h *handlers.HistoryHandler) *HistoryModule {
	return &HistoryModule{Handler: h}
}

func (m *HistoryModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	g := rg.Group("/history",
		middleware.Auth(rdb, container.GetJWT()),
		middleware.RateLimit(rdb, 240, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Record)
		g.DELETE("", m.Handler.Clear)
		g.DELETE("/:videoId", m.Handler.Remove)
	}
}
