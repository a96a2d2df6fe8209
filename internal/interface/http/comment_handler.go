package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidstream/vidstream-backend/internal/application"
	"github.com/vidstream/vidstream-backend/pkg/response"
	"github.com/vidstream/vidstream-backend/pkg/validation"
)

type CommentHandler struct {
	Svc *application.CommentService
}

func NewCommentHandler(svc *application.CommentService) *CommentHandler {
	return &CommentHandler{Svc: svc}
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *CommentHandler) List(c *gin.Context) {
	cs, err := h.Svc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, cs, "comments", gin.H{"count": len(cs)})
}

func (h *CommentHandler) Add(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid, username := actor(c)
	created, err := h.Svc.Add(c.Request.Context(), c.Param("id"), uid, username, req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, created, "comment added", nil)
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid, _ := actor(c)
	updated, err := h.Svc.Update(c.Request.Context(), c.Param("id"), c.Param("commentId"), uid, req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, updated, "comment updated", nil)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	uid, _ := actor(c)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.Param("commentId"), uid); err != nil {
		fail(c, err)
		return
	}
	response.OK[any](c, http.StatusOK, gin.H{"deleted": true}, "comment deleted", nil)
}
