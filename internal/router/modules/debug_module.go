package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vidstream/vidstream-backend/internal/container"
	"github.com/vidstream/vidstream-backend/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
