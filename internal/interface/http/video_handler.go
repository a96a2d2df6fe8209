package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vidstream/vidstream-backend/internal/application"
	"github.com/vidstream/vidstream-backend/pkg/response"
	"github.com/vidstream/vidstream-backend/pkg/validation"
)

type VideoHandler struct {
	Svc            *application.VideoService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewVideoHandler(svc *application.VideoService, logger *logrus.Logger, maxUploadBytes int64) *VideoHandler {
	return &VideoHandler{Svc: svc, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

type uploadForm struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	Category    string `form:"category" binding:"omitempty,category"`
}

// Upload handles the multipart form: fields title/description/category plus
// the "video" file and an optional "thumbnail" file.
func (h *VideoHandler) Upload(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	var form uploadForm
	if err := c.ShouldBind(&form); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	file, header, err := c.Request.FormFile("video")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "video file is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	uid, _ := actor(c)
	in := application.UploadVideoInput{
		UserID:      uid,
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		File:        file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}

	if thumb, thumbHeader, tErr := c.Request.FormFile("thumbnail"); tErr == nil {
		defer func() { _ = thumb.Close() }()
		in.Thumb = thumb
		in.ThumbName = thumbHeader.Filename
		in.ThumbContent = thumbHeader.Header.Get("Content-Type")
	}

	v, err := h.Svc.Upload(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, application.SummaryOf(v), "video uploaded", nil)
}

func (h *VideoHandler) List(c *gin.Context) {
	vs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, vs, "videos", gin.H{"count": len(vs)})
}

func (h *VideoHandler) Trending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	vs, err := h.Svc.Trending(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, vs, "trending videos", gin.H{"count": len(vs)})
}

func (h *VideoHandler) Mine(c *gin.Context) {
	uid, _ := actor(c)
	vs, err := h.Svc.Mine(c.Request.Context(), uid)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, vs, "my videos", gin.H{"count": len(vs)})
}

// Watch returns the video detail; the view counter is incremented as a side
// effect of the read.
func (h *VideoHandler) Watch(c *gin.Context) {
	v, err := h.Svc.Watch(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, application.SummaryOf(v), "video", nil)
}

func (h *VideoHandler) Stats(c *gin.Context) {
	st, err := h.Svc.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, st, "video stats", nil)
}

func (h *VideoHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	vs, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, vs, "search results", gin.H{"count": len(vs), "query": q})
}
