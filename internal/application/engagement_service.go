package application

import (
	"context"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
	"github.com/vidstream/vidstream-backend/internal/domain/relation"
	repo "github.com/vidstream/vidstream-backend/internal/domain/repository"
	"github.com/vidstream/vidstream-backend/pkg/apperr"
)

// EngagementService applies the liked/disliked/watch-later rules. Every
// mutation runs inside one repository transaction so the user-side membership
// and the video-side counters can never drift apart.
type EngagementService struct {
	Users  repo.UserRepository
	Videos repo.VideoRepository
}

func NewEngagementService(users repo.UserRepository, videos repo.VideoRepository) *EngagementService {
	return &EngagementService{Users: users, Videos: videos}
}

// columnsFor names the collections a mutation of the given kind may touch.
// Liked and disliked include each other because of mutual exclusion eviction.
func columnsFor(kind relation.Kind) []repo.Collection {
	switch kind {
	case relation.Liked:
		return []repo.Collection{repo.ColLiked, repo.ColDisliked}
	case relation.Disliked:
		return []repo.Collection{repo.ColDisliked, repo.ColLiked}
	default:
		return []repo.Collection{repo.ColWatchLater}
	}
}

func (s *EngagementService) ToggleLike(ctx context.Context, username, videoID string) (relation.ToggleResult, error) {
	return s.toggle(ctx, username, videoID, relation.ToggleLike)
}

func (s *EngagementService) ToggleDislike(ctx context.Context, username, videoID string) (relation.ToggleResult, error) {
	return s.toggle(ctx, username, videoID, relation.ToggleDislike)
}

func (s *EngagementService) toggle(ctx context.Context, username, videoID string, fn func(*entity.User, *entity.Video) relation.ToggleResult) (relation.ToggleResult, error) {
	var res relation.ToggleResult
	_, _, err := s.Users.MutateWithVideo(ctx, username, videoID,
		[]repo.Collection{repo.ColLiked, repo.ColDisliked},
		func(u *entity.User, v *entity.Video) error {
			if v == nil {
				return apperr.NotFound("video_not_found", "video not found")
			}
			res = fn(u, v)
			return nil
		})
	if err != nil {
		return relation.ToggleResult{}, err
	}
	return res, nil
}

// LikeStatus reports membership and counters without mutating.
func (s *EngagementService) LikeStatus(ctx context.Context, username, videoID string) (relation.ToggleResult, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return relation.ToggleResult{}, err
	}
	v, err := s.Videos.GetByID(ctx, videoID)
	if err != nil {
		return relation.ToggleResult{}, err
	}
	return relation.Status(u, v), nil
}

// Add inserts the video into the user's set. The video must still exist;
// adding a reference to a deleted video is rejected.
func (s *EngagementService) Add(ctx context.Context, username, videoID string, kind relation.Kind) error {
	_, _, err := s.Users.MutateWithVideo(ctx, username, videoID, columnsFor(kind),
		func(u *entity.User, v *entity.Video) error {
			if v == nil {
				return apperr.NotFound("video_not_found", "video not found")
			}
			return relation.Add(u, v, kind)
		})
	return err
}

// Remove drops the video id from the set. The video may already be deleted;
// membership removal still lands, only the counter adjustment is skipped.
func (s *EngagementService) Remove(ctx context.Context, username, videoID string, kind relation.Kind) error {
	_, _, err := s.Users.MutateWithVideo(ctx, username, videoID, columnsFor(kind),
		func(u *entity.User, v *entity.Video) error {
			return relation.Remove(u, v, videoID, kind)
		})
	return err
}

// Check reports membership. Absence of the video itself is not an error.
func (s *EngagementService) Check(ctx context.Context, username, videoID string, kind relation.Kind) (bool, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return relation.Contains(u, videoID, kind), nil
}

// ListVideos resolves the set against the video store, dropping dangling ids.
func (s *EngagementService) ListVideos(ctx context.Context, username string, kind relation.Kind) ([]VideoSummary, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	var ids []string
	switch kind {
	case relation.Liked:
		ids = u.LikedVideos
	case relation.Disliked:
		ids = u.DislikedVideos
	default:
		ids = u.WatchLater
	}
	vs, err := s.Videos.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return Summaries(vs), nil
}

// Clear empties the set and returns the prior count. Counters are not
// adjusted on this path.
func (s *EngagementService) Clear(ctx context.Context, username string, kind relation.Kind) (int, error) {
	var n int
	_, err := s.Users.Mutate(ctx, username, columnsFor(kind)[:1],
		func(u *entity.User) error {
			n = relation.Clear(u, kind)
			return nil
		})
	if err != nil {
		return 0, err
	}
	return n, nil
}
