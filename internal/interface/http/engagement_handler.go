package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidstream/vidstream-backend/internal/application"
	"github.com/vidstream/vidstream-backend/internal/domain/relation"
	"github.com/vidstream/vidstream-backend/pkg/response"
	"github.com/vidstream/vidstream-backend/pkg/validation"
)

// EngagementHandler serves the like/dislike toggles and like-status.
type EngagementHandler struct {
	Svc *application.EngagementService
}

func NewEngagementHandler(svc *application.EngagementService) *EngagementHandler {
	return &EngagementHandler{Svc: svc}
}

type toggleResponse struct {
	Liked    bool  `json:"liked"`
	Disliked bool  `json:"disliked"`
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

func toggleOf(r relation.ToggleResult) toggleResponse {
	return toggleResponse{Liked: r.Liked, Disliked: r.Disliked, Likes: r.Likes, Dislikes: r.Dislikes}
}

func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	_, username := actor(c)
	res, err := h.Svc.ToggleLike(c.Request.Context(), username, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, toggleOf(res), "like toggled", nil)
}

func (h *EngagementHandler) ToggleDislike(c *gin.Context) {
	_, username := actor(c)
	res, err := h.Svc.ToggleDislike(c.Request.Context(), username, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, toggleOf(res), "dislike toggled", nil)
}

func (h *EngagementHandler) LikeStatus(c *gin.Context) {
	_, username := actor(c)
	res, err := h.Svc.LikeStatus(c.Request.Context(), username, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, toggleOf(res), "like status", nil)
}

// CollectionHandler serves one of the liked/disliked/watch-later sets; the
// same handler shape is registered three times with different kinds.
type CollectionHandler struct {
	Svc  *application.EngagementService
	Kind relation.Kind
	Name string
}

func NewCollectionHandler(svc *application.EngagementService, kind relation.Kind, name string) *CollectionHandler {
	return &CollectionHandler{Svc: svc, Kind: kind, Name: name}
}

type addVideoRequest struct {
	VideoID string `json:"video_id" binding:"required,uuid"`
}

func (h *CollectionHandler) List(c *gin.Context) {
	_, username := actor(c)
	vs, err := h.Svc.ListVideos(c.Request.Context(), username, h.Kind)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, vs, h.Name, gin.H{"count": len(vs)})
}

func (h *CollectionHandler) Add(c *gin.Context) {
	var req addVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	_, username := actor(c)
	if err := h.Svc.Add(c.Request.Context(), username, req.VideoID, h.Kind); err != nil {
		fail(c, err)
		return
	}
	response.OK[any](c, http.StatusOK, gin.H{"video_id": req.VideoID, "added": true}, "video added to "+h.Name, nil)
}

func (h *CollectionHandler) Remove(c *gin.Context) {
	_, username := actor(c)
	videoID := c.Param("videoId")
	if err := h.Svc.Remove(c.Request.Context(), username, videoID, h.Kind); err != nil {
		fail(c, err)
		return
	}
	response.OK[any](c, http.StatusOK, gin.H{"video_id": videoID, "removed": true}, "video removed from "+h.Name, nil)
}

func (h *CollectionHandler) Check(c *gin.Context) {
	_, username := actor(c)
	videoID := c.Param("videoId")
	ok, err := h.Svc.Check(c.Request.Context(), username, videoID, h.Kind)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK[any](c, http.StatusOK, gin.H{"video_id": videoID, "present": ok}, "membership", nil)
}

func (h *CollectionHandler) Clear(c *gin.Context) {
	_, username := actor(c)
	n, err := h.Svc.Clear(c.Request.Context(), username, h.Kind)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK[any](c, http.StatusOK, gin.H{"removed": n}, h.Name+" cleared", nil)
}
