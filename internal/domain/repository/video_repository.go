package repository

import (
	"context"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
)

// VideoRepository defines video aggregate persistence. Reads fill
// entity.Video.UploaderName by joining the uploader; GetByIDs silently skips
// ids that no longer resolve, so dangling references are filtered rather than
// surfaced as errors.
type VideoRepository interface {
	Create(ctx context.Context, v *entity.Video) error
	GetByID(ctx context.Context, id string) (*entity.Video, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Video, error)
	List(ctx context.Context) ([]entity.Video, error)
	ListTrending(ctx context.Context, limit int) ([]entity.Video, error)
	ListByUploader(ctx context.Context, userID string) ([]entity.Video, error)

	// CountView atomically increments the view counter and returns the
	// video with the new count.
	CountView(ctx context.Context, id string) (*entity.Video, error)

	// MutateComments runs a read-modify-write cycle over the comments of one
	// video under lock.
	MutateComments(ctx context.Context, id string, fn func(v *entity.Video) error) (*entity.Video, error)
}
