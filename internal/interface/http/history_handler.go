package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidstream/vidstream-backend/internal/application"
	"github.com/vidstream/vidstream-backend/pkg/response"
	"github.com/vidstream/vidstream-backend/pkg/validation"
)

type HistoryHandler struct {
	Svc *application.HistoryService
}

func NewHistoryHandler(svc *application.HistoryService) *HistoryHandler {
	return &HistoryHandler{Svc: svc}
}

func (h *HistoryHandler) List(c *gin.Context) {
	_, username := actor(c)
	items, err := h.Svc.List(c.Request.Context(), username)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, items, "watch history", gin.H{"count": len(items)})
}

func (h *HistoryHandler) Record(c *gin.Context) {
	var req addVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	_, username := actor(c)
	if err := h.Svc.Record(c.Request.Context(), username, req.VideoID); err != nil {
		fail(c, err)
		return
	}
	response.OK[any](c, http.StatusOK, gin.H{"video_id": req.VideoID, "recorded": true}, "watch recorded", nil)
}

func (h *HistoryHandler) Remove(c *gin.Context) {
	_, username := actor(c)
	videoID := c.Param("videoId")
	if err := h.Svc.Remove(c.Request.Context(), username, videoID); err != nil {
		fail(c, err)
		return
	}
	response.OK[any](c, http.StatusOK, gin.H{"video_id": videoID, "removed": true}, "history entry removed", nil)
}

func (h *HistoryHandler) Clear(c *gin.Context) {
	_, username := actor(c)
	n, err := h.Svc.Clear(c.Request.Context(), username)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK[any](c, http.StatusOK, gin.H{"removed": n}, "history cleared", nil)
}
