package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidstream/vidstream-backend/internal/application"
	"github.com/vidstream/vidstream-backend/pkg/response"
	"github.com/vidstream/vidstream-backend/pkg/validation"
)

type PlaylistHandler struct {
	Svc *application.PlaylistService
}

func NewPlaylistHandler(svc *application.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{Svc: svc}
}

type createPlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updatePlaylistRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *PlaylistHandler) List(c *gin.Context) {
	_, username := actor(c)
	ps, err := h.Svc.List(c.Request.Context(), username)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, ps, "playlists", gin.H{"count": len(ps)})
}

func (h *PlaylistHandler) Get(c *gin.Context) {
	_, username := actor(c)
	detail, err := h.Svc.Get(c.Request.Context(), username, c.Param("playlistId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, detail, "playlist", nil)
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	var req createPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	_, username := actor(c)
	p, err := h.Svc.Create(c.Request.Context(), username, req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, p, "playlist created", nil)
}

func (h *PlaylistHandler) Update(c *gin.Context) {
	var req updatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	_, username := actor(c)
	p, err := h.Svc.Update(c.Request.Context(), username, c.Param("playlistId"), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, p, "playlist updated", nil)
}

func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	var req addVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	_, username := actor(c)
	p, err := h.Svc.AddVideo(c.Request.Context(), username, c.Param("playlistId"), req.VideoID)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, p, "video added to playlist", nil)
}

func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	_, username := actor(c)
	p, err := h.Svc.RemoveVideo(c.Request.Context(), username, c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, p, "video removed from playlist", nil)
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	_, username := actor(c)
	p, err := h.Svc.Delete(c.Request.Context(), username, c.Param("playlistId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, p, "playlist deleted", nil)
}

func (h *PlaylistHandler) DeleteAll(c *gin.Context) {
	_, username := actor(c)
	n, err := h.Svc.DeleteAll(c.Request.Context(), username)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK[any](c, http.StatusOK, gin.H{"removed": n}, "playlists cleared", nil)
}
