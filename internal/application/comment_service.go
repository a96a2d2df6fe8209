package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
	repo "github.com/vidstream/vidstream-backend/internal/domain/repository"
	"github.com/vidstream/vidstream-backend/pkg/apperr"
)

// CommentService manages the comments owned by a video. Edit and delete are
// restricted to the comment author or the video uploader.
type CommentService struct {
	Videos repo.VideoRepository
}

func NewCommentService(videos repo.VideoRepository) *CommentService {
	return &CommentService{Videos: videos}
}

func (s *CommentService) List(ctx context.Context, videoID string) ([]entity.Comment, error) {
	v, err := s.Videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if v.Comments == nil {
		return []entity.Comment{}, nil
	}
	return v.Comments, nil
}

// Add appends a comment. IsUploader is computed once here against the video's
// current uploader and never recomputed.
func (s *CommentService) Add(ctx context.Context, videoID, userID, username, text string) (*entity.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("text_required", "comment text is required")
	}
	var created entity.Comment
	_, err := s.Videos.MutateComments(ctx, videoID, func(v *entity.Video) error {
		created = entity.Comment{
			ID:         uuid.NewString(),
			Text:       text,
			UserID:     userID,
			Username:   username,
			IsUploader: userID == v.UploadedBy,
			CreatedAt:  time.Now().UTC(),
		}
		v.Comments = append(v.Comments, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *CommentService) Update(ctx context.Context, videoID, commentID, actorID, text string) (*entity.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("text_required", "comment text is required")
	}
	var updated entity.Comment
	_, err := s.Videos.MutateComments(ctx, videoID, func(v *entity.Video) error {
		c := v.CommentByID(commentID)
		if c == nil {
			return apperr.NotFound("comment_not_found", "comment not found")
		}
		if err := authorizeCommentActor(v, c, actorID); err != nil {
			return err
		}
		c.Text = text
		updated = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *CommentService) Delete(ctx context.Context, videoID, commentID, actorID string) error {
	_, err := s.Videos.MutateComments(ctx, videoID, func(v *entity.Video) error {
		for i := range v.Comments {
			if v.Comments[i].ID != commentID {
				continue
			}
			if err := authorizeCommentActor(v, &v.Comments[i], actorID); err != nil {
				return err
			}
			v.Comments = append(v.Comments[:i], v.Comments[i+1:]...)
			return nil
		}
		return apperr.NotFound("comment_not_found", "comment not found")
	})
	return err
}

func authorizeCommentActor(v *entity.Video, c *entity.Comment, actorID string) error {
	if actorID != c.UserID && actorID != v.UploadedBy {
		return apperr.Authorization("not_comment_owner", "only the comment author or the video uploader may do this")
	}
	return nil
}
