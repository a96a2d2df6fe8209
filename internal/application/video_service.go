package application

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
	repo "github.com/vidstream/vidstream-backend/internal/domain/repository"
	"github.com/vidstream/vidstream-backend/pkg/apperr"
	"github.com/vidstream/vidstream-backend/pkg/helpers"
)

// VideoService owns the video aggregate: uploads, listings and search.
type VideoService struct {
	Videos        repo.VideoRepository
	GCS           *storage.Client
	GCSBucket     string
	ES            *elasticsearch.Client
	ESVideosIndex string
	Logger        *logrus.Logger
}

func NewVideoService(videos repo.VideoRepository, gcs *storage.Client, bucket string, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *VideoService {
	return &VideoService{Videos: videos, GCS: gcs, GCSBucket: bucket, ES: es, ESVideosIndex: esIndex, Logger: logger}
}

// VideoSummary is the read shape for listings and collection views.
type VideoSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category"`
	SrcURL       string    `json:"src_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Uploader     string    `json:"uploader"`
	UploadedAt   time.Time `json:"uploaded_at"`
	Views        int64     `json:"views"`
	Likes        int64     `json:"likes"`
	Dislikes     int64     `json:"dislikes"`
}

func SummaryOf(v *entity.Video) VideoSummary {
	return VideoSummary{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		Category:     v.Category,
		SrcURL:       v.SrcURL,
		ThumbnailURL: v.ThumbnailURL,
		Uploader:     v.UploaderName,
		UploadedAt:   v.UploadedAt,
		Views:        v.Views,
		Likes:        v.Likes,
		Dislikes:     v.Dislikes,
	}
}

func Summaries(vs []entity.Video) []VideoSummary {
	out := make([]VideoSummary, 0, len(vs))
	for i := range vs {
		out = append(out, SummaryOf(&vs[i]))
	}
	return out
}

type UploadVideoInput struct {
	UserID      string
	Title       string
	Description string
	Category    string

	File         io.Reader
	Filename     string
	ContentType  string
	Thumb        io.Reader
	ThumbName    string
	ThumbContent string
}

// Upload stores the media in GCS, creates the video row and indexes it for
// search. Object keys use a fresh uuid so a retried upload never overwrites
// an earlier object.
func (s *VideoService) Upload(ctx context.Context, in UploadVideoInput) (*entity.Video, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, apperr.Fault(nil, "media storage not configured")
	}
	mediaKey := uuid.NewString()
	srcURL, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket,
		helpers.VideoObjectPath(mediaKey, in.Filename), in.ContentType, in.File)
	if err != nil {
		return nil, apperr.Fault(err, "upload video object")
	}

	thumbURL := ""
	if in.Thumb != nil {
		thumbURL, err = helpers.UploadObject(ctx, s.GCS, s.GCSBucket,
			helpers.ThumbnailObjectPath(mediaKey, in.ThumbName), in.ThumbContent, in.Thumb)
		if err != nil {
			return nil, apperr.Fault(err, "upload thumbnail object")
		}
	}

	v := &entity.Video{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Category:     in.Category,
		SrcURL:       srcURL,
		ThumbnailURL: thumbURL,
		UploadedBy:   in.UserID,
	}
	if v.Title == "" {
		return nil, apperr.Validation("title_required", "video title is required")
	}
	if err := s.Videos.Create(ctx, v); err != nil {
		return nil, err
	}
	s.indexVideo(ctx, v)
	return v, nil
}

func (s *VideoService) List(ctx context.Context) ([]VideoSummary, error) {
	vs, err := s.Videos.List(ctx)
	if err != nil {
		return nil, err
	}
	return Summaries(vs), nil
}

func (s *VideoService) Trending(ctx context.Context, limit int) ([]VideoSummary, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	vs, err := s.Videos.ListTrending(ctx, limit)
	if err != nil {
		return nil, err
	}
	return Summaries(vs), nil
}

func (s *VideoService) Mine(ctx context.Context, userID string) ([]VideoSummary, error) {
	vs, err := s.Videos.ListByUploader(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Summaries(vs), nil
}

// Watch returns the video detail with the view counter already incremented.
func (s *VideoService) Watch(ctx context.Context, id string) (*entity.Video, error) {
	return s.Videos.CountView(ctx, id)
}

type VideoStats struct {
	Views        int64 `json:"views"`
	Likes        int64 `json:"likes"`
	Dislikes     int64 `json:"dislikes"`
	CommentCount int   `json:"comment_count"`
}

func (s *VideoService) Stats(ctx context.Context, id string) (*VideoStats, error) {
	v, err := s.Videos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &VideoStats{Views: v.Views, Likes: v.Likes, Dislikes: v.Dislikes, CommentCount: len(v.Comments)}, nil
}

func (s *VideoService) indexVideo(ctx context.Context, v *entity.Video) {
	if s.ES == nil || s.ESVideosIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          v.ID,
		"title":       v.Title,
		"description": v.Description,
		"category":    v.Category,
		"uploaded_by": v.UploadedBy,
		"uploaded_at": v.UploadedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESVideosIndex, DocumentID: v.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("video_id", v.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("video_id", v.ID).Warn("es index response error")
	}
}

// Search runs a multi_match over title, description and category, then
// resolves the hits against Postgres so results carry live counters. Ids that
// no longer resolve are dropped.
func (s *VideoService) Search(ctx context.Context, q string, size int) ([]VideoSummary, error) {
	if s.ES == nil || s.ESVideosIndex == "" {
		return []VideoSummary{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "category"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESVideosIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, apperr.Fault(err, "search videos")
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperr.Fault(err, "decode search response")
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	vs, err := s.Videos.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return Summaries(vs), nil
}
